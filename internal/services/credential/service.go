package credential

import (
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"

	"securedata/internal/crypto"
	"securedata/internal/domain"
)

// Service manages user records using a backing vault store.
//
// Every mutation runs inside VaultStore.Update, so the vault is loaded,
// changed and rewritten as a whole.
type Service struct {
	store       domain.VaultStore
	kdf         *crypto.KDF
	perUserSalt bool
	log         zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPerUserSalt makes Register store a random salt with each new record
// instead of relying on the shared KDF salt.
func WithPerUserSalt(enabled bool) Option {
	return func(s *Service) { s.perUserSalt = enabled }
}

// New returns a credential service backed by the given store.
func New(store domain.VaultStore, kdf *crypto.KDF, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store: store,
		kdf:   kdf,
		log:   log.With().Str("component", "credential").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a user with an empty blob list.
func (s *Service) Register(username domain.Username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	rec, err := s.newRecord(password)
	if err != nil {
		return err
	}

	err = s.store.Update(func(v domain.Vault) error {
		if _, taken := v.Lookup(username); taken {
			return domain.ErrUsernameTaken
		}
		v[username] = rec
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("user", username.String()).Bool("per_user_salt", rec.Salt != "").Msg("user registered")
	return nil
}

// VerifyLogin reports whether password matches the stored verifier of
// username. Unknown users and undecodable salts report false.
func (s *Service) VerifyLogin(username domain.Username, password string) (bool, error) {
	v, err := s.store.Load()
	if err != nil {
		return false, err
	}

	rec, ok := v.Lookup(username)
	if !ok {
		// Spend the same derivation time as a known user would.
		_ = s.kdf.Verifier(password)
		return false, nil
	}

	salt := s.kdf.Salt
	if rec.Salt != "" {
		salt, err = hex.DecodeString(rec.Salt)
		if err != nil {
			s.log.Warn().Str("user", username.String()).Msg("stored salt is not hex")
			return false, nil
		}
	}
	got := s.kdf.VerifierWithSalt(password, salt)
	return crypto.Equal([]byte(got), []byte(rec.Password)), nil
}

// AppendBlob adds blob to the end of the user's list. The caller is
// responsible for having authenticated username.
func (s *Service) AppendBlob(username domain.Username, blob domain.EncryptedBlob) error {
	return s.store.Update(func(v domain.Vault) error {
		rec, ok := v.Lookup(username)
		if !ok {
			return fmt.Errorf("%w: unknown user %q", domain.ErrNotAuthenticated, username)
		}
		rec.Data = append(rec.Data, blob)
		return nil
	})
}

// ListBlobs returns the user's blobs in insertion order.
func (s *Service) ListBlobs(username domain.Username) ([]domain.EncryptedBlob, error) {
	v, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	rec, ok := v.Lookup(username)
	if !ok {
		return nil, fmt.Errorf("%w: unknown user %q", domain.ErrNotAuthenticated, username)
	}
	return append([]domain.EncryptedBlob(nil), rec.Data...), nil
}

func (s *Service) newRecord(password string) (*domain.UserRecord, error) {
	rec := &domain.UserRecord{Data: []domain.EncryptedBlob{}}
	if !s.perUserSalt {
		rec.Password = s.kdf.Verifier(password)
		return rec, nil
	}
	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, err
	}
	rec.Salt = hex.EncodeToString(salt)
	rec.Password = s.kdf.VerifierWithSalt(password, salt)
	return rec, nil
}

// Compile-time assertion that Service implements domain.CredentialService.
var _ domain.CredentialService = (*Service)(nil)
