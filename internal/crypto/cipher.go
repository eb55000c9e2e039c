package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	"securedata/internal/domain"
)

const (
	tokenVersion byte = 0x80

	headerBytes   = 1 + 8
	nonceBytes    = chacha20poly1305.NonceSizeX
	tokenOverhead = headerBytes + nonceBytes + chacha20poly1305.Overhead
)

var (
	// ErrInvalidKey is returned by Encrypt when key is not a base64url
	// encoded 32-byte key.
	ErrInvalidKey = errors.New("invalid cipher key")

	// Strict rejects non-canonical encodings so that no two token strings
	// decode to the same bytes.
	tokenEncoding = base64.URLEncoding.Strict()

	// now is swapped in tests.
	now = time.Now
)

// Encrypt seals plaintext under key and returns a self-contained token:
//
//	base64url(0x80 || unix seconds (8, BE) || nonce (24) || ciphertext || tag)
//
// The version byte and timestamp are authenticated as associated data. Each
// call draws a fresh random nonce.
func Encrypt(plaintext string, key []byte) (domain.EncryptedBlob, error) {
	raw, err := decodeKey(key)
	if err != nil {
		return "", err
	}
	defer Wipe(raw)

	aead, err := chacha20poly1305.NewX(raw)
	if err != nil {
		return "", err
	}

	header := make([]byte, headerBytes)
	header[0] = tokenVersion
	binary.BigEndian.PutUint64(header[1:], uint64(now().Unix()))

	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, tokenOverhead+len(plaintext))
	out = append(out, header...)
	out = append(out, nonce...)
	out = aead.Seal(out, nonce, []byte(plaintext), header)
	return domain.EncryptedBlob(tokenEncoding.EncodeToString(out)), nil
}

// Decrypt opens a token produced by Encrypt. Every failure, whether a bad
// key, a malformed token or a failed tag check, yields
// domain.ErrDecryptFailure and nothing more specific.
func Decrypt(token domain.EncryptedBlob, key []byte) (string, error) {
	raw, err := decodeKey(key)
	if err != nil {
		return "", domain.ErrDecryptFailure
	}
	defer Wipe(raw)

	b, err := decodeToken(token)
	if err != nil {
		return "", domain.ErrDecryptFailure
	}

	aead, err := chacha20poly1305.NewX(raw)
	if err != nil {
		return "", domain.ErrDecryptFailure
	}
	nonce := b[headerBytes : headerBytes+nonceBytes]
	pt, err := aead.Open(nil, nonce, b[headerBytes+nonceBytes:], b[:headerBytes])
	if err != nil {
		return "", domain.ErrDecryptFailure
	}
	return string(pt), nil
}

// TokenTime returns the creation time embedded in token. It does not
// authenticate the token.
func TokenTime(token domain.EncryptedBlob) (time.Time, error) {
	b, err := decodeToken(token)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(binary.BigEndian.Uint64(b[1:headerBytes])), 0), nil
}

func decodeToken(token domain.EncryptedBlob) ([]byte, error) {
	b, err := tokenEncoding.DecodeString(string(token))
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	if len(b) < tokenOverhead || b[0] != tokenVersion {
		return nil, errors.New("malformed token")
	}
	return b, nil
}

func decodeKey(key []byte) ([]byte, error) {
	raw := make([]byte, base64.URLEncoding.DecodedLen(len(key)))
	n, err := base64.URLEncoding.Decode(raw, key)
	if err != nil || n != chacha20poly1305.KeySize {
		Wipe(raw)
		return nil, ErrInvalidKey
	}
	return raw[:n], nil
}
