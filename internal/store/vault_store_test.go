package store_test

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securedata/internal/domain"
	"securedata/internal/store"
)

func newStore(t *testing.T) *store.VaultFileStore {
	t.Helper()
	return store.NewVaultFileStore(filepath.Join(t.TempDir(), store.DataFile), zerolog.Nop())
}

func TestLoad_MissingFileIsEmptyVault(t *testing.T) {
	s := newStore(t)

	v, err := s.Load()

	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err), "load must not create the data file")
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newStore(t)
	want := domain.Vault{
		"alice": {Password: "aa", Data: []domain.EncryptedBlob{"t1", "t2"}},
		"bob":   {Password: "bb", Salt: "cc", Data: []domain.EncryptedBlob{}},
	}

	require.NoError(t, s.Save(want))
	got, err := s.Load()

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_PersistedKeyNames(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(domain.Vault{
		"alice": {Password: "aa", Data: []domain.EncryptedBlob{}},
	}))

	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.JSONEq(t, `{"alice":{"password":"aa","data":[]}}`, string(b))
}

func TestSave_ReloadSaveIsByteIdentical(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(domain.Vault{
		"zed":   {Password: "zz", Data: []domain.EncryptedBlob{"x"}},
		"alice": {Password: "aa", Data: []domain.EncryptedBlob{}},
	}))

	var snapshots [][]byte
	for i := 0; i < 2; i++ {
		v, err := s.Load()
		require.NoError(t, err)
		require.NoError(t, s.Save(v))
		b, err := os.ReadFile(s.Path())
		require.NoError(t, err)
		snapshots = append(snapshots, b)
	}

	assert.Equal(t, snapshots[0], snapshots[1])
}

func TestLoad_ReadsLegacyDocument(t *testing.T) {
	s := newStore(t)
	legacy := `{"alice": {"password": "4fa0", "data": ["gAAAA"]}}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(legacy), 0o600))

	v, err := s.Load()

	require.NoError(t, err)
	rec, ok := v.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "4fa0", rec.Password)
	assert.Equal(t, []domain.EncryptedBlob{"gAAAA"}, rec.Data)
}

func TestLoad_CorruptFileIsPersistenceFailure(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	_, err := s.Load()

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestLoad_JSONNullIsEmptyVault(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("null"), 0o600))

	v, err := s.Load()

	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestSave_UnwritableDirIsPersistenceFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	s := store.NewVaultFileStore(filepath.Join(blocker, store.DataFile), zerolog.Nop())

	err := s.Save(domain.Vault{})

	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(domain.Vault{"a": {Password: "p"}}))
	require.NoError(t, s.Save(domain.Vault{"b": {Password: "q"}}))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	assert.ElementsMatch(t, []string{store.DataFile, store.DataFile + ".lock"}, names)
}

func TestUpdate_ErrorLeavesFileUntouched(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(domain.Vault{"alice": {Password: "aa"}}))
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	err = s.Update(func(v domain.Vault) error {
		v["bob"] = &domain.UserRecord{Password: "bb"}
		return domain.ErrUsernameTaken
	})

	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdate_ConcurrentStoresDoNotLoseUpdates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no flock on windows")
	}
	path := filepath.Join(t.TempDir(), store.DataFile)
	// Two store values on one file behave like two processes.
	a := store.NewVaultFileStore(path, zerolog.Nop())
	b := store.NewVaultFileStore(path, zerolog.Nop())
	require.NoError(t, a.Save(domain.Vault{"alice": {Password: "aa", Data: []domain.EncryptedBlob{}}}))

	const perStore = 20
	var wg sync.WaitGroup
	for _, s := range []*store.VaultFileStore{a, b} {
		wg.Add(1)
		go func(s *store.VaultFileStore) {
			defer wg.Done()
			for i := 0; i < perStore; i++ {
				err := s.Update(func(v domain.Vault) error {
					rec := v["alice"]
					rec.Data = append(rec.Data, "blob")
					return nil
				})
				assert.NoError(t, err)
			}
		}(s)
	}
	wg.Wait()

	v, err := a.Load()
	require.NoError(t, err)
	assert.Len(t, v["alice"].Data, 2*perStore)
}
