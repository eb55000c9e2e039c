package types

// Username identifies a registered user. Matching is exact and case-sensitive.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// EncryptedBlob is an opaque authenticated-cipher token as stored on disk.
type EncryptedBlob string

// String returns the token text.
func (b EncryptedBlob) String() string { return string(b) }
