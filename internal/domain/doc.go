// Package domain defines the vault data model, the error taxonomy and the
// contracts between stores and services. It holds plain types and interfaces
// only.
package domain
