package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"securedata/internal/domain"
)

const (
	// DataFile is the default vault file name inside the home directory.
	DataFile = "secure_data.json"

	lockSuffix = ".lock"
	fileMode   = 0o600
	dirMode    = 0o700
)

// VaultFileStore persists the whole vault as one JSON document.
//
// Every Save rewrites the file through a temp file and rename, so a
// concurrent reader sees either the old or the new document. Load, Save and
// Update also take an advisory lock on "<path>.lock" so that processes
// sharing the file do not lose each other's updates.
type VaultFileStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

// NewVaultFileStore returns a store for the vault file at path.
func NewVaultFileStore(path string, log zerolog.Logger) *VaultFileStore {
	return &VaultFileStore{
		path: path,
		log:  log.With().Str("component", "store").Str("path", path).Logger(),
	}
}

// Path returns the vault file location.
func (s *VaultFileStore) Path() string { return s.path }

// Load reads the vault. A missing file is an empty vault.
func (s *VaultFileStore) Load() (domain.Vault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v domain.Vault
	err := s.withLock(false, func() error {
		var err error
		v, err = s.load()
		return err
	})
	return v, err
}

// Save replaces the persisted vault with v.
func (s *VaultFileStore) Save(v domain.Vault) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withLock(true, func() error { return s.save(v) })
}

// Update loads the vault, applies fn and saves the result, all under the
// exclusive lock. Errors from fn are returned as-is and nothing is written.
func (s *VaultFileStore) Update(fn func(v domain.Vault) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withLock(true, func() error {
		v, err := s.load()
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
		return s.save(v)
	})
}

func (s *VaultFileStore) withLock(exclusive bool, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirMode); err != nil {
		return persistenceError("create data dir", err)
	}
	l, err := lockFile(s.path+lockSuffix, exclusive)
	if err != nil {
		return persistenceError("lock", err)
	}
	defer func() {
		if err := l.unlock(); err != nil {
			s.log.Warn().Err(err).Msg("unlock vault file")
		}
	}()
	return fn()
}

func (s *VaultFileStore) load() (domain.Vault, error) {
	v := make(domain.Vault)
	found, err := readJSON(s.path, &v)
	if err != nil {
		s.log.Error().Err(err).Msg("load vault")
		return nil, persistenceError("load", err)
	}
	if v == nil { // file held a JSON null
		v = make(domain.Vault)
	}
	s.log.Debug().Bool("found", found).Int("users", len(v)).Msg("vault loaded")
	return v, nil
}

func (s *VaultFileStore) save(v domain.Vault) error {
	if v == nil {
		v = make(domain.Vault)
	}
	if err := writeJSON(s.path, v, fileMode); err != nil {
		s.log.Error().Err(err).Msg("save vault")
		return persistenceError("save", err)
	}
	s.log.Debug().Int("users", len(v)).Msg("vault saved")
	return nil
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

// Compile-time assertion that VaultFileStore implements domain.VaultStore.
var _ domain.VaultStore = (*VaultFileStore)(nil)
