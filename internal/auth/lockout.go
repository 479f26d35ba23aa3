package auth

import "time"

// Default lockout policy parameters.
const (
	DefaultMaxAttempts     = 5
	DefaultLockoutDuration = 15 * time.Minute
)

// Policy decides when repeated sign-in failures lock an account out. Both
// methods are pure; persisting (or deleting) the updated record is the
// caller's job.
type Policy struct {
	MaxAttempts     int
	LockoutDuration time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, LockoutDuration: DefaultLockoutDuration}
}

// Status reports whether rec is locked at now and how long the lock has
// left. A nil record is never locked. An expired lock reports unlocked;
// deleting the stale record is the caller's side effect, not ours.
func (p Policy) Status(rec *FailureRecord, now time.Time) (bool, time.Duration) {
	if rec == nil || rec.LockedUntil.IsZero() {
		return false, 0
	}
	if now.Before(rec.LockedUntil) {
		return true, rec.LockedUntil.Sub(now)
	}
	return false, 0
}

// Fail returns rec advanced by one failed attempt, arming the lock when the
// count reaches MaxAttempts. A nil rec stands for a clean history.
func (p Policy) Fail(rec *FailureRecord, now time.Time) FailureRecord {
	next := FailureRecord{Attempts: 1}
	if rec != nil {
		next.Attempts = rec.Attempts + 1
		next.LockedUntil = rec.LockedUntil
	}
	if next.Attempts >= p.MaxAttempts {
		next.LockedUntil = now.Add(p.LockoutDuration)
	}
	return next
}
