package auth

import "time"

// User is a registered storefront account, keyed in the store by its
// normalized email.
type User struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Digest      string `json:"credentialDigest"`
}

// FailureRecord tracks consecutive failed sign-ins for one email. A record
// exists only while the count is positive; LockedUntil stays the zero time
// until the attempt count reaches the policy threshold.
type FailureRecord struct {
	Attempts    int       `json:"attemptCount"`
	LockedUntil time.Time `json:"lockedUntil"`
}

// Session is the single currently-authenticated identity. IsAdmin is decided
// at sign-in time and is never settable by callers.
type Session struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}
