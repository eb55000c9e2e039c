// Package crypto holds the key derivation and authenticated encryption used
// by the vault.
//
// Contents
//
//   - PBKDF2-HMAC-SHA256 derivation of password verifiers (hex) and cipher
//     keys (padded base64url) from a secret and a salt (KDF)
//   - XChaCha20-Poly1305 tokens that carry their own version, timestamp and
//     nonce (Encrypt, Decrypt, TokenTime)
//   - Best-effort wiping and constant-time comparison (Wipe, Equal)
//
// # Notes
//
// The default salt is shared by every user. Two users with the same password
// have the same verifier, and a precomputed table against DefaultSalt covers
// all of them. Per-user salts close this for verifiers; cipher keys stay on
// the shared salt so a token can be opened with its passkey alone.
package crypto
