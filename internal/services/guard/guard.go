package guard

import (
	"time"

	"securedata/internal/domain"
)

const (
	// DefaultMaxAttempts is the number of consecutive failures that triggers
	// a lockout.
	DefaultMaxAttempts = 3

	// DefaultLockout is how long a lockout lasts.
	DefaultLockout = 60 * time.Second
)

// State is the guard's current mode.
type State int

const (
	// Open means attempts may proceed.
	Open State = iota
	// Locked means attempts are rejected until the lockout expires.
	Locked
)

func (s State) String() string {
	if s == Locked {
		return "locked"
	}
	return "open"
}

// Guard tracks failed login attempts and the lockout deadline. It is not
// safe for concurrent use; each session owns one.
type Guard struct {
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time

	failed      int
	lockedUntil time.Time
}

// Option configures a Guard.
type Option func(*Guard)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// New returns an Open guard. Non-positive maxAttempts falls back to
// DefaultMaxAttempts; a negative lockout is treated as zero.
func New(maxAttempts int, lockout time.Duration, opts ...Option) *Guard {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if lockout < 0 {
		lockout = 0
	}
	g := &Guard{maxAttempts: maxAttempts, lockout: lockout, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State reports Locked while the lockout deadline is in the future.
func (g *Guard) State() State {
	if g.now().Before(g.lockedUntil) {
		return Locked
	}
	return Open
}

// FailedAttempts returns the consecutive failure count.
func (g *Guard) FailedAttempts() int { return g.failed }

// LockedUntil returns the current lockout deadline, zero if never locked.
func (g *Guard) LockedUntil() time.Time { return g.lockedUntil }

// Allow returns a *domain.LockedOutError while locked and nil otherwise. It
// never changes the failure count.
func (g *Guard) Allow() error {
	now := g.now()
	if now.Before(g.lockedUntil) {
		return &domain.LockedOutError{Remaining: g.lockedUntil.Sub(now)}
	}
	return nil
}

// Fail records a failed attempt. It returns a *domain.LockedOutError when
// the failure reaches the limit and a *domain.InvalidCredentialsError with
// the attempts left otherwise. With a zero lockout the guard never locks and
// reports no attempts remaining once the limit is reached.
func (g *Guard) Fail() error {
	g.failed++
	if g.failed >= g.maxAttempts {
		if g.lockout == 0 {
			return &domain.InvalidCredentialsError{Remaining: 0}
		}
		g.lockedUntil = g.now().Add(g.lockout)
		return &domain.LockedOutError{Remaining: g.lockout}
	}
	return &domain.InvalidCredentialsError{Remaining: g.maxAttempts - g.failed}
}

// Succeed records a successful login and clears the failure count.
func (g *Guard) Succeed() {
	g.failed = 0
}
