package crypto

import (
	"crypto/subtle"
	"runtime"
)

// Wipe zeroes b. Best-effort: the Go runtime may already hold copies.
//
//go:noinline
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
	runtime.KeepAlive(&b)
}

// Equal compares a and b in time independent of their contents.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
