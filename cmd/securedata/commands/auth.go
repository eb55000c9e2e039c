package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"securedata/internal/services/session"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			u, err := p.orPrompt(username, "Username: ", false)
			if err != nil {
				return err
			}
			pw, err := p.orPrompt(password, "Password: ", true)
			if err != nil {
				return err
			}
			if err := wire.NewSession().Register(u, pw); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User registered successfully.")
			return nil
		},
	}
}

// login starts a session for a one-shot command and authenticates it from
// the --username/--password flags or prompts.
func login(p *prompter) (*session.Session, error) {
	u, err := p.orPrompt(username, "Username: ", false)
	if err != nil {
		return nil, err
	}
	pw, err := p.orPrompt(password, "Password: ", true)
	if err != nil {
		return nil, err
	}
	s := wire.NewSession()
	if err := s.Login(u, pw); err != nil {
		return nil, err
	}
	return s, nil
}
