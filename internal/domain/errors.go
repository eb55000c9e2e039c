package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidInput is returned when a required field is empty.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials is returned when a login does not verify.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLockedOut is returned while login attempts are blocked.
	ErrLockedOut = errors.New("too many failed attempts")

	// ErrDecryptFailure covers a wrong passkey and a corrupted or tampered
	// token alike. Callers must not be able to tell the two apart.
	ErrDecryptFailure = errors.New("incorrect passkey or invalid data")

	// ErrPersistence wraps I/O and encoding failures of the vault file.
	ErrPersistence = errors.New("persistence failure")

	// ErrNotAuthenticated is returned by operations that need a logged-in user.
	ErrNotAuthenticated = errors.New("please login first")
)

// InvalidCredentialsError reports a failed login and the attempts left
// before lockout.
type InvalidCredentialsError struct {
	Remaining int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials, %d attempt(s) remaining", e.Remaining)
}

// Is reports whether target is ErrInvalidCredentials.
func (e *InvalidCredentialsError) Is(target error) bool { return target == ErrInvalidCredentials }

// LockedOutError reports that logins are blocked for Remaining more time.
type LockedOutError struct {
	Remaining time.Duration
}

// Seconds returns the remaining lockout rounded up to whole seconds.
func (e *LockedOutError) Seconds() int {
	return int(math.Ceil(e.Remaining.Seconds()))
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("too many failed attempts, try again in %d seconds", e.Seconds())
}

// Is reports whether target is ErrLockedOut.
func (e *LockedOutError) Is(target error) bool { return target == ErrLockedOut }
