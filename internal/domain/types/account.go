package types

// UserRecord is the persisted state of one registered user.
//
// Password holds the lowercase hex PBKDF2 verifier. Salt is only present for
// records created with per-user salting; records without it were derived with
// the application-wide salt. Data is append-only, in insertion order.
type UserRecord struct {
	Password string          `json:"password"`
	Salt     string          `json:"salt,omitempty"`
	Data     []EncryptedBlob `json:"data"`
}

// Vault maps usernames to their records and is the whole persisted state.
type Vault map[Username]*UserRecord

// Lookup returns the record for username, if registered.
func (v Vault) Lookup(username Username) (*UserRecord, bool) {
	rec, ok := v[username]
	if !ok || rec == nil {
		return nil, false
	}
	return rec, true
}
