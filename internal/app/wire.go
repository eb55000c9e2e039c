package app

import (
	"github.com/rs/zerolog"

	"securedata/internal/crypto"
	"securedata/internal/domain"
	"securedata/internal/services/credential"
	"securedata/internal/services/guard"
	"securedata/internal/services/session"
	"securedata/internal/store"
)

// Wire bundles the store and services for the CLI.
type Wire struct {
	Config      Config
	Log         zerolog.Logger
	Store       *store.VaultFileStore
	KDF         *crypto.KDF
	Credentials domain.CredentialService
}

// NewWire validates cfg and constructs the dependency graph.
func NewWire(cfg Config, log zerolog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	vaultStore := store.NewVaultFileStore(cfg.DataPath(), log)
	kdf := crypto.NewKDF([]byte(cfg.Security.Salt), cfg.Security.Iterations)
	creds := credential.New(vaultStore, kdf, log, credential.WithPerUserSalt(cfg.Security.PerUserSalt))

	return &Wire{
		Config:      cfg,
		Log:         log,
		Store:       vaultStore,
		KDF:         kdf,
		Credentials: creds,
	}, nil
}

// NewSession starts a session with its own login guard.
func (w *Wire) NewSession(opts ...guard.Option) *session.Session {
	g := guard.New(w.Config.Security.MaxAttempts, w.Config.Lockout(), opts...)
	return session.New(w.Credentials, w.KDF, g, w.Log)
}
