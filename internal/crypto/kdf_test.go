package crypto_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securedata/internal/crypto"
)

func TestKDF_DefaultVerifier_MatchesKnownValue(t *testing.T) {
	kdf := crypto.DefaultKDF()

	got := kdf.Verifier("pw123")

	assert.Equal(t, "4fa0dc44d5598c74bc15e590141729a982077eb1f3a0fb62421f35c9d630ed2c", got)
}

func TestKDF_DefaultCipherKey_MatchesKnownValue(t *testing.T) {
	kdf := crypto.DefaultKDF()

	got := kdf.CipherKey("secret")

	assert.Equal(t, "A0Kx06SACHQ68m8HIl_r239pX0OAuxkQdFl29fZqcCc=", string(got))
}

func TestKDF_Derive_Deterministic(t *testing.T) {
	kdf := crypto.NewKDF([]byte("test-salt"), 1000)

	for _, p := range []crypto.Purpose{crypto.PurposeVerifier, crypto.PurposeCipherKey} {
		a := kdf.Derive("pw123", p)
		b := kdf.Derive("pw123", p)
		assert.Equal(t, a, b, "purpose %v", p)
	}
	assert.Equal(t,
		"f4de923501367a433525383b35825a156876a6080a318a1e30243452ec2b1ace",
		string(kdf.Derive("pw123", crypto.PurposeVerifier)),
	)
}

func TestKDF_CipherKey_Shape(t *testing.T) {
	kdf := crypto.NewKDF([]byte("test-salt"), 1000)

	key := kdf.CipherKey("")

	require.Len(t, key, 44)
	raw, err := base64.URLEncoding.DecodeString(string(key))
	require.NoError(t, err)
	assert.Len(t, raw, crypto.KeyBytes)
}

func TestKDF_DifferentSecretsAndSalts(t *testing.T) {
	kdf := crypto.NewKDF([]byte("salt-1"), 1000)

	assert.NotEqual(t, kdf.Verifier("a"), kdf.Verifier("b"))
	assert.NotEqual(t, kdf.Verifier("a"), kdf.VerifierWithSalt("a", []byte("salt-2")))
	assert.Equal(t, kdf.Verifier("a"), kdf.VerifierWithSalt("a", []byte("salt-1")))
}

func TestKDF_NewKDF_CopiesSalt(t *testing.T) {
	salt := []byte("salt-1")
	kdf := crypto.NewKDF(salt, 1000)
	before := kdf.Verifier("a")

	salt[0] = 'X'

	assert.Equal(t, before, kdf.Verifier("a"))
}

func TestGenerateSalt(t *testing.T) {
	a, err := crypto.GenerateSalt()
	require.NoError(t, err)
	b, err := crypto.GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, a, crypto.SaltBytes)
	assert.NotEqual(t, a, b)
}

func TestPurpose_String(t *testing.T) {
	assert.Equal(t, "verifier", crypto.PurposeVerifier.String())
	assert.Equal(t, "cipher-key", crypto.PurposeCipherKey.String())
	assert.Equal(t, "Purpose(9)", crypto.Purpose(9).String())
}

func TestKDF_UnknownPurpose_Panics(t *testing.T) {
	kdf := crypto.NewKDF([]byte("s"), 1)

	assert.Panics(t, func() { kdf.Derive("x", crypto.Purpose(0)) })
}

func TestWipeAndEqual(t *testing.T) {
	b := []byte{1, 2, 3}
	crypto.Wipe(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
	crypto.Wipe(nil)

	assert.True(t, crypto.Equal([]byte("abc"), []byte("abc")))
	assert.False(t, crypto.Equal([]byte("abc"), []byte("abd")))
	assert.False(t, crypto.Equal([]byte("abc"), []byte("ab")))
}
