package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"securedata/internal/domain"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session with login lockout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := &shell{
				sess: wire.NewSession(),
				p:    newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				out:  cmd.OutOrStdout(),
			}
			return sh.run()
		},
	}
}

// shell is a read-eval-print loop over one session. The login guard and
// the authenticated user live as long as the loop.
type shell struct {
	sess domain.SessionService
	p    *prompter
	out  io.Writer
}

// run reads commands until EOF, "exit" or "quit". Command failures are
// printed and the loop continues.
func (sh *shell) run() error {
	sh.help()
	for {
		line, err := sh.p.line(sh.prompt())
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(sh.out)
			return nil
		}
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help", "?":
			sh.help()
		case "register":
			err = sh.register()
		case "login":
			err = sh.login()
		case "logout":
			sh.sess.Logout()
			fmt.Fprintln(sh.out, "Logged out.")
		case "whoami":
			if u, ok := sh.sess.Authenticated(); ok {
				fmt.Fprintln(sh.out, u)
			} else {
				fmt.Fprintln(sh.out, "Not logged in.")
			}
		case "store":
			err = sh.store()
		case "list", "l":
			err = sh.list()
		case "decrypt":
			err = sh.decrypt()
		case "exit", "quit":
			fmt.Fprintln(sh.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(sh.out, "Unknown command:", fields[0])
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintln(sh.out, "Error:", err)
		}
	}
}

func (sh *shell) prompt() string {
	if u, ok := sh.sess.Authenticated(); ok {
		return fmt.Sprintf("securedata [%s]> ", u)
	}
	return "securedata> "
}

func (sh *shell) help() {
	if _, ok := sh.sess.Authenticated(); ok {
		fmt.Fprintln(sh.out, "Commands: store, list, decrypt, whoami, logout, help, exit")
		return
	}
	fmt.Fprintln(sh.out, "Commands: register, login, help, exit")
}

func (sh *shell) register() error {
	u, err := sh.p.line("Username: ")
	if err != nil {
		return err
	}
	pw, err := sh.p.secret("Password: ")
	if err != nil {
		return err
	}
	if err := sh.sess.Register(u, pw); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "User registered successfully.")
	return nil
}

func (sh *shell) login() error {
	u, err := sh.p.line("Username: ")
	if err != nil {
		return err
	}
	pw, err := sh.p.secret("Password: ")
	if err != nil {
		return err
	}
	if err := sh.sess.Login(u, pw); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Welcome, %s!\n", u)
	return nil
}

func (sh *shell) store() error {
	if _, ok := sh.sess.Authenticated(); !ok {
		return domain.ErrNotAuthenticated
	}
	data, err := sh.p.raw("Data: ")
	if err != nil {
		return err
	}
	key, err := sh.p.secret("Passkey: ")
	if err != nil {
		return err
	}
	if _, err := sh.sess.StoreSecret(key, data); err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Data encrypted and stored successfully.")
	return nil
}

func (sh *shell) list() error {
	blobs, err := sh.sess.ListSecrets()
	if err != nil {
		return err
	}
	printBlobs(sh.out, blobs)
	return nil
}

func (sh *shell) decrypt() error {
	blobs, err := sh.sess.ListSecrets()
	if err != nil {
		return err
	}
	entry, err := sh.p.line("Entry number or token: ")
	if err != nil {
		return err
	}
	key, err := sh.p.secret("Passkey: ")
	if err != nil {
		return err
	}
	pt, err := sh.sess.DecryptSecret(resolveEntry(entry, blobs), key)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Decrypted data: %s\n", pt)
	return nil
}
