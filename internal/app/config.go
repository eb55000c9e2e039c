package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"securedata/internal/crypto"
	"securedata/internal/services/guard"
	"securedata/internal/store"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home      string   `json:"home"`       // data directory, e.g. $HOME/.securedata
	DataFile  string   `json:"data_file"`  // vault file; relative paths resolve under Home
	LogLevel  string   `json:"log_level"`  // debug, info, warn, error, disabled
	LogFormat string   `json:"log_format"` // console or json
	Security  Security `json:"security"`
}

// Security holds the credential and lockout parameters.
type Security struct {
	Salt           string `json:"salt"`
	Iterations     int    `json:"pbkdf2_iterations"`
	LockoutSeconds int    `json:"lockout_seconds"`
	MaxAttempts    int    `json:"max_attempts"`
	PerUserSalt    bool   `json:"per_user_salt"`
}

// DefaultConfig returns the built-in configuration rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		Home:      home,
		DataFile:  store.DataFile,
		LogLevel:  "warn",
		LogFormat: "console",
		Security: Security{
			Salt:           crypto.DefaultSalt,
			Iterations:     crypto.DefaultIterations,
			LockoutSeconds: int(guard.DefaultLockout / time.Second),
			MaxAttempts:    guard.DefaultMaxAttempts,
		},
	}
}

// LoadFile overlays the JSON file at path onto cfg. Keys absent from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects values the services cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Home == "" {
		errs = append(errs, errors.New("home is required"))
	}
	if c.DataFile == "" {
		errs = append(errs, errors.New("data_file is required"))
	}
	if c.Security.Iterations < 1 {
		errs = append(errs, fmt.Errorf("pbkdf2_iterations must be positive, got %d", c.Security.Iterations))
	}
	if c.Security.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max_attempts must be positive, got %d", c.Security.MaxAttempts))
	}
	if c.Security.LockoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("lockout_seconds must not be negative, got %d", c.Security.LockoutSeconds))
	}
	return errors.Join(errs...)
}

// DataPath returns the absolute or Home-relative vault file path.
func (c Config) DataPath() string {
	if filepath.IsAbs(c.DataFile) {
		return c.DataFile
	}
	return filepath.Join(c.Home, c.DataFile)
}

// Lockout returns the lockout window as a duration.
func (c Config) Lockout() time.Duration {
	return time.Duration(c.Security.LockoutSeconds) * time.Second
}
