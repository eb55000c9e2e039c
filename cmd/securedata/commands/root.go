package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"securedata/internal/app"
	"securedata/internal/logging"
)

var (
	home       string
	configPath string
	logLevel   string
	logFormat  string

	iterations  int
	maxAttempts int
	lockoutSecs int
	perUserSalt bool

	username string
	password string
	passkey  string

	wire *app.Wire
)

// Execute runs the root command against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	home, configPath, logLevel, logFormat = "", "", "", ""
	iterations, maxAttempts, lockoutSecs, perUserSalt = 0, 0, 0, false
	username, password, passkey = "", "", ""
	wire = nil

	root := &cobra.Command{
		Use:          "securedata",
		Short:        "Store and retrieve passkey-encrypted text",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".securedata")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			cfg := app.DefaultConfig(home)
			if configPath != "" {
				if err := cfg.LoadFile(configPath); err != nil {
					return err
				}
			}
			applyFlagOverrides(cmd, &cfg)

			log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			wire, err = app.NewWire(cfg, log)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "data dir (default ~/.securedata)")
	pf.StringVarP(&configPath, "config", "c", "", "JSON config file")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, disabled")
	pf.StringVar(&logFormat, "log-format", "", "log format: console or json")
	pf.IntVar(&iterations, "iterations", 0, "PBKDF2 iterations")
	pf.IntVar(&maxAttempts, "max-attempts", 0, "failed logins before lockout")
	pf.IntVar(&lockoutSecs, "lockout", 0, "lockout window in seconds")
	pf.BoolVar(&perUserSalt, "per-user-salt", false, "salt new password verifiers per user")
	pf.StringVarP(&username, "username", "u", "", "username (prompted if empty)")
	pf.StringVarP(&password, "password", "p", "", "login password (prompted if empty)")

	root.AddCommand(registerCmd(), storeCmd(), listCmd(), decryptCmd(), shellCmd())
	return root
}

// applyFlagOverrides copies explicitly set flags over file and default values.
func applyFlagOverrides(cmd *cobra.Command, cfg *app.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("iterations") {
		cfg.Security.Iterations = iterations
	}
	if flags.Changed("max-attempts") {
		cfg.Security.MaxAttempts = maxAttempts
	}
	if flags.Changed("lockout") {
		cfg.Security.LockoutSeconds = lockoutSecs
	}
	if flags.Changed("per-user-salt") {
		cfg.Security.PerUserSalt = perUserSalt
	}
}
