package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"securedata/internal/crypto"
	"securedata/internal/domain"
	"securedata/internal/services/guard"
)

// Session is one user's interactive context: its login guard and the
// currently authenticated username. Sessions share the credential service
// but never each other's state.
type Session struct {
	id    uuid.UUID
	creds domain.CredentialService
	kdf   *crypto.KDF
	guard *guard.Guard
	log   zerolog.Logger

	mu   sync.Mutex
	user domain.Username
}

// New returns an unauthenticated session.
func New(creds domain.CredentialService, kdf *crypto.KDF, g *guard.Guard, log zerolog.Logger) *Session {
	id := uuid.New()
	return &Session{
		id:    id,
		creds: creds,
		kdf:   kdf,
		guard: g,
		log:   log.With().Str("component", "session").Str("session", id.String()).Logger(),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Guard exposes the login guard for status display.
func (s *Session) Guard() *guard.Guard { return s.guard }

// Register creates a user. It does not log the session in.
func (s *Session) Register(username, password string) error {
	return s.creds.Register(domain.Username(username), password)
}

// Login checks the guard first, then the password.
//
// While locked it returns *domain.LockedOutError without consuming an
// attempt. A wrong password returns *domain.InvalidCredentialsError, or
// *domain.LockedOutError when it exhausts the attempts. A persistence error
// is returned as-is and does not count as a failed attempt.
func (s *Session) Login(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard.Allow(); err != nil {
		s.log.Warn().Str("user", username).Msg("login rejected while locked out")
		return err
	}

	u := domain.Username(username)
	ok, err := s.creds.VerifyLogin(u, password)
	if err != nil {
		return err
	}
	if !ok {
		err := s.guard.Fail()
		ev := s.log.Warn().Str("user", username).Int("failed_attempts", s.guard.FailedAttempts())
		if errors.Is(err, domain.ErrLockedOut) {
			ev = ev.Time("locked_until", s.guard.LockedUntil())
		}
		ev.Msg("login failed")
		return err
	}

	s.guard.Succeed()
	s.user = u
	s.log.Info().Str("user", username).Msg("login succeeded")
	return nil
}

// Logout forgets the authenticated user. Guard counters are kept.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = ""
}

// Authenticated returns the logged-in username, if any.
func (s *Session) Authenticated() (domain.Username, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.user != ""
}

// StoreSecret encrypts plaintext under a key derived from passkey and
// appends the token to the user's list.
func (s *Session) StoreSecret(passkey, plaintext string) (domain.EncryptedBlob, error) {
	user, err := s.requireUser()
	if err != nil {
		return "", err
	}
	if passkey == "" || plaintext == "" {
		return "", fmt.Errorf("%w: data and passkey are required", domain.ErrInvalidInput)
	}

	key := s.kdf.CipherKey(passkey)
	defer crypto.Wipe(key)

	tok, err := crypto.Encrypt(plaintext, key)
	if err != nil {
		return "", err
	}
	if err := s.creds.AppendBlob(user, tok); err != nil {
		return "", err
	}
	s.log.Info().Str("user", user.String()).Msg("secret stored")
	return tok, nil
}

// ListSecrets returns the user's tokens in storage order.
func (s *Session) ListSecrets() ([]domain.EncryptedBlob, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	return s.creds.ListBlobs(user)
}

// DecryptSecret opens token with a key derived from passkey. Any failure is
// domain.ErrDecryptFailure.
func (s *Session) DecryptSecret(token, passkey string) (string, error) {
	user, err := s.requireUser()
	if err != nil {
		return "", err
	}

	key := s.kdf.CipherKey(passkey)
	defer crypto.Wipe(key)

	pt, err := crypto.Decrypt(domain.EncryptedBlob(token), key)
	if err != nil {
		s.log.Warn().Str("user", user.String()).Msg("decrypt failed")
		return "", err
	}
	return pt, nil
}

func (s *Session) requireUser() (domain.Username, error) {
	user, ok := s.Authenticated()
	if !ok {
		return "", domain.ErrNotAuthenticated
	}
	return user, nil
}

// Compile-time assertion that Session implements domain.SessionService.
var _ domain.SessionService = (*Session)(nil)
