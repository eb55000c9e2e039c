// Package credential registers users, verifies passwords and keeps each
// user's list of encrypted blobs in the vault store.
//
// It enforces non-empty usernames and passwords, derives verifiers with the
// configured KDF, and optionally salts each new user individually.
package credential
