// Package guard rate-limits login attempts for one session.
//
// A Guard is Open until MaxAttempts consecutive failures, then Locked for the
// lockout window. Once the window passes the next attempt may proceed, but
// the failure count is only cleared by a successful login, so a further
// failure locks again immediately.
package guard
