package domain

import (
	interfaces "securedata/internal/domain/interfaces"
	types "securedata/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username      = types.Username
	EncryptedBlob = types.EncryptedBlob
	UserRecord    = types.UserRecord
	Vault         = types.Vault
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	VaultStore        = interfaces.VaultStore
	CredentialService = interfaces.CredentialService
	SessionService    = interfaces.SessionService
)
