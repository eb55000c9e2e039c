package interfaces

import domaintypes "securedata/internal/domain/types"

// VaultStore persists the vault as a single document.
//
// Load and Save each see a complete state. Update runs fn against a freshly
// loaded vault while holding the store lock and saves the result only when fn
// returns nil.
type VaultStore interface {
	Load() (domaintypes.Vault, error)
	Save(v domaintypes.Vault) error
	Update(fn func(v domaintypes.Vault) error) error
}
