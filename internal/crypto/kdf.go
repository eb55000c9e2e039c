package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultSalt is the application-wide salt. Every user shares it unless
	// per-user salting is enabled, so equal passwords give equal verifiers.
	DefaultSalt = "secure_salt_value"

	// DefaultIterations is the PBKDF2 work factor.
	DefaultIterations = 100_000

	// KeyBytes is the raw derived key length.
	KeyBytes = 32

	// SaltBytes is the length of generated per-user salts.
	SaltBytes = 16
)

// Purpose selects the encoding of a derived value.
type Purpose int

const (
	// PurposeVerifier renders the derived bytes as lowercase hex for
	// password comparison.
	PurposeVerifier Purpose = iota + 1

	// PurposeCipherKey renders the derived bytes as padded base64url, the
	// key shape accepted by Encrypt and Decrypt.
	PurposeCipherKey
)

func (p Purpose) String() string {
	switch p {
	case PurposeVerifier:
		return "verifier"
	case PurposeCipherKey:
		return "cipher-key"
	default:
		return fmt.Sprintf("Purpose(%d)", int(p))
	}
}

// KDF derives verifiers and cipher keys with PBKDF2-HMAC-SHA256.
type KDF struct {
	Salt       []byte
	Iterations int
}

// NewKDF returns a KDF with the given salt and iteration count.
func NewKDF(salt []byte, iterations int) *KDF {
	return &KDF{Salt: append([]byte(nil), salt...), Iterations: iterations}
}

// DefaultKDF returns a KDF using DefaultSalt and DefaultIterations.
func DefaultKDF() *KDF {
	return NewKDF([]byte(DefaultSalt), DefaultIterations)
}

// Derive is deterministic in (secret, purpose). Any secret, including the
// empty string, derives a value.
func (k *KDF) Derive(secret string, purpose Purpose) []byte {
	return k.derive(secret, k.Salt, purpose)
}

// Verifier returns the hex verifier of secret under the KDF salt.
func (k *KDF) Verifier(secret string) string {
	return string(k.derive(secret, k.Salt, PurposeVerifier))
}

// VerifierWithSalt returns the hex verifier of secret under salt.
func (k *KDF) VerifierWithSalt(secret string, salt []byte) string {
	return string(k.derive(secret, salt, PurposeVerifier))
}

// CipherKey returns the encoded cipher key for passkey.
func (k *KDF) CipherKey(passkey string) []byte {
	return k.derive(passkey, k.Salt, PurposeCipherKey)
}

func (k *KDF) derive(secret string, salt []byte, purpose Purpose) []byte {
	raw := pbkdf2.Key([]byte(secret), salt, k.Iterations, KeyBytes, sha256.New)
	defer Wipe(raw)

	switch purpose {
	case PurposeVerifier:
		out := make([]byte, hex.EncodedLen(len(raw)))
		hex.Encode(out, raw)
		return out
	case PurposeCipherKey:
		out := make([]byte, base64.URLEncoding.EncodedLen(len(raw)))
		base64.URLEncoding.Encode(out, raw)
		return out
	default:
		panic(fmt.Errorf("crypto: unknown key purpose %v", purpose))
	}
}

// GenerateSalt returns SaltBytes of fresh random data.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}
