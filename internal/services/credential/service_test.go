package credential_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securedata/internal/crypto"
	"securedata/internal/domain"
	"securedata/internal/services/credential"
	"securedata/internal/store"
)

func newService(t *testing.T, opts ...credential.Option) (*credential.Service, *store.VaultFileStore) {
	t.Helper()
	st := store.NewVaultFileStore(filepath.Join(t.TempDir(), store.DataFile), zerolog.Nop())
	kdf := crypto.NewKDF([]byte(crypto.DefaultSalt), 1000)
	return credential.New(st, kdf, zerolog.Nop(), opts...), st
}

func TestRegister_ThenVerify(t *testing.T) {
	svc, _ := newService(t)

	require.NoError(t, svc.Register("alice", "pw123"))

	ok, err := svc.VerifyLogin("alice", "pw123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyLogin("alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.VerifyLogin("Alice", "pw123")
	require.NoError(t, err)
	assert.False(t, ok, "usernames are case-sensitive")
}

func TestRegister_StoresHexVerifierAndEmptyData(t *testing.T) {
	svc, st := newService(t)
	require.NoError(t, svc.Register("alice", "pw123"))

	v, err := st.Load()
	require.NoError(t, err)

	rec, ok := v.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, crypto.NewKDF([]byte(crypto.DefaultSalt), 1000).Verifier("pw123"), rec.Password)
	assert.Empty(t, rec.Salt)
	assert.NotNil(t, rec.Data)
	assert.Empty(t, rec.Data)
}

func TestRegister_DuplicateIsRejected(t *testing.T) {
	svc, _ := newService(t)
	require.NoError(t, svc.Register("alice", "pw123"))

	err := svc.Register("alice", "other")

	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	ok, err := svc.VerifyLogin("alice", "pw123")
	require.NoError(t, err)
	assert.True(t, ok, "first password must still work")
}

func TestRegister_NullRecordCountsAsFree(t *testing.T) {
	svc, st := newService(t)
	require.NoError(t, st.Save(domain.Vault{"alice": nil}))

	ok, err := svc.VerifyLogin("alice", "pw123")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Register("alice", "pw123"))
	ok, err = svc.VerifyLogin("alice", "pw123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_EmptyFields(t *testing.T) {
	svc, st := newService(t)

	for _, tc := range []struct{ user, pass string }{
		{"", "pw"},
		{"alice", ""},
		{"", ""},
	} {
		err := svc.Register(domain.Username(tc.user), tc.pass)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", tc)
	}

	v, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestRegister_PerUserSalt(t *testing.T) {
	svc, st := newService(t, credential.WithPerUserSalt(true))
	require.NoError(t, svc.Register("alice", "pw123"))
	require.NoError(t, svc.Register("bob", "pw123"))

	v, err := st.Load()
	require.NoError(t, err)
	assert.Len(t, v["alice"].Salt, 2*crypto.SaltBytes)
	assert.NotEqual(t, v["alice"].Password, v["bob"].Password)

	ok, err := svc.VerifyLogin("alice", "pw123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyLogin_MixedSaltRecords(t *testing.T) {
	shared, st := newService(t)
	require.NoError(t, shared.Register("legacy", "pw"))

	salted := credential.New(st, crypto.NewKDF([]byte(crypto.DefaultSalt), 1000), zerolog.Nop(),
		credential.WithPerUserSalt(true))
	require.NoError(t, salted.Register("fresh", "pw"))

	for _, u := range []domain.Username{"legacy", "fresh"} {
		ok, err := salted.VerifyLogin(u, "pw")
		require.NoError(t, err)
		assert.True(t, ok, u)
	}
}

func TestVerifyLogin_BadStoredSalt(t *testing.T) {
	svc, st := newService(t)
	require.NoError(t, st.Save(domain.Vault{"alice": {Password: "00", Salt: "zz"}}))

	ok, err := svc.VerifyLogin("alice", "pw")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyLogin_UnknownUser(t *testing.T) {
	svc, _ := newService(t)

	ok, err := svc.VerifyLogin("ghost", "pw")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAppendAndListBlobs_KeepOrder(t *testing.T) {
	svc, _ := newService(t)
	require.NoError(t, svc.Register("alice", "pw123"))

	for _, b := range []domain.EncryptedBlob{"one", "two", "three"} {
		require.NoError(t, svc.AppendBlob("alice", b))
	}

	got, err := svc.ListBlobs("alice")
	require.NoError(t, err)
	assert.Equal(t, []domain.EncryptedBlob{"one", "two", "three"}, got)
}

func TestListBlobs_ReturnsCopy(t *testing.T) {
	svc, _ := newService(t)
	require.NoError(t, svc.Register("alice", "pw123"))
	require.NoError(t, svc.AppendBlob("alice", "one"))

	got, err := svc.ListBlobs("alice")
	require.NoError(t, err)
	got[0] = "changed"

	again, err := svc.ListBlobs("alice")
	require.NoError(t, err)
	assert.Equal(t, domain.EncryptedBlob("one"), again[0])
}

func TestBlobs_UnknownUser(t *testing.T) {
	svc, _ := newService(t)

	assert.ErrorIs(t, svc.AppendBlob("ghost", "x"), domain.ErrNotAuthenticated)
	_, err := svc.ListBlobs("ghost")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

type failingStore struct{ err error }

func (f failingStore) Load() (domain.Vault, error)             { return nil, f.err }
func (f failingStore) Save(domain.Vault) error                 { return f.err }
func (f failingStore) Update(func(v domain.Vault) error) error { return f.err }

func TestPersistenceFailuresSurface(t *testing.T) {
	boom := errors.Join(domain.ErrPersistence, errors.New("disk full"))
	svc := credential.New(failingStore{err: boom}, crypto.NewKDF([]byte("s"), 1), zerolog.Nop())

	assert.ErrorIs(t, svc.Register("alice", "pw"), domain.ErrPersistence)
	_, err := svc.VerifyLogin("alice", "pw")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, svc.AppendBlob("alice", "x"), domain.ErrPersistence)
	_, err = svc.ListBlobs("alice")
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
