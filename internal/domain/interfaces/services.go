package interfaces

import domaintypes "securedata/internal/domain/types"

// CredentialService registers users, checks passwords and manages blobs.
type CredentialService interface {
	Register(username domaintypes.Username, password string) error
	VerifyLogin(username domaintypes.Username, password string) (bool, error)
	AppendBlob(username domaintypes.Username, blob domaintypes.EncryptedBlob) error
	ListBlobs(username domaintypes.Username) ([]domaintypes.EncryptedBlob, error)
}

// SessionService is the surface a user interface drives for one user session.
type SessionService interface {
	Register(username, password string) error
	Login(username, password string) error
	Logout()
	Authenticated() (domaintypes.Username, bool)
	StoreSecret(passkey, plaintext string) (domaintypes.EncryptedBlob, error)
	ListSecrets() ([]domaintypes.EncryptedBlob, error)
	DecryptSecret(token, passkey string) (string, error)
}
