// Package auth implements the storefront's credential and session core:
// sign-up, sign-in with lockout-on-failed-attempts, sign-out, and admin
// credential rotation, persisted through an injected record store.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"shopcore/internal/common"
	"shopcore/internal/config"
	"shopcore/internal/cryptox"
	"shopcore/internal/logging"
	"shopcore/internal/store"
)

// Manager orchestrates the record store, the credential digest and the
// lockout policy. It is meant to be driven one operation at a time per store
// instance; concurrent instances race last-write-wins on the failure and
// session records, which this design accepts.
type Manager struct {
	store      store.Store
	policy     Policy
	secretKey  []byte
	adminEmail string
	bootstrap  string
	log        logging.Logger

	// now is a test seam; production code leaves it at time.Now.
	now func() time.Time
}

// NewManager constructs a Manager using the injected store and server config.
func NewManager(st store.Store, cfg *config.Config, log logging.Logger) *Manager {
	policy := Policy{MaxAttempts: cfg.MaxLoginAttempts, LockoutDuration: cfg.LockoutDuration}
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultMaxAttempts
	}
	if policy.LockoutDuration <= 0 {
		policy.LockoutDuration = DefaultLockoutDuration
	}

	return &Manager{
		store:      st,
		policy:     policy,
		secretKey:  []byte(cfg.SessionSecret),
		adminEmail: NormalizeEmail(cfg.AdminEmail),
		bootstrap:  cfg.AdminBootstrapPassword,
		log:        log,
		now:        time.Now,
	}
}

// NormalizeEmail lower-cases and trims an email so it can serve as the
// canonical lookup key. Every lookup, insert and comparison goes through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp registers a new account and immediately establishes a non-admin
// session for it. The administrator email can never be registered, and no
// lockout logic applies to sign-up.
func (m *Manager) SignUp(ctx context.Context, email, password, displayName string) (*Session, error) {
	email = NormalizeEmail(email)
	displayName = strings.TrimSpace(displayName)
	if email == "" || password == "" || displayName == "" {
		return nil, common.ErrMissingFields
	}
	if email == m.adminEmail {
		return nil, common.ErrReservedIdentity
	}

	users, err := m.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := users[email]; ok {
		return nil, common.ErrDuplicateAccount
	}

	users[email] = User{Email: email, DisplayName: displayName, Digest: cryptox.Digest(password)}
	if err := m.saveUsers(ctx, users); err != nil {
		return nil, err
	}

	sess := &Session{Email: email, DisplayName: displayName}
	if err := m.writeSession(ctx, sess); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "account created", "email", email)
	return sess, nil
}

// SignIn authenticates an email/password pair and establishes a session.
//
// A locked account is rejected up front without checking the password and
// without consuming an attempt. An expired lock is cleared lazily before the
// credentials are evaluated. On a mismatch the failure counter advances and
// the returned error states how many attempts remain, or that the account
// just locked.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrMissingFields
	}

	failures, err := m.loadFailures(ctx)
	if err != nil {
		return nil, err
	}

	var rec *FailureRecord
	if r, ok := failures[email]; ok {
		rec = &r
	}

	now := m.now()
	if locked, remaining := m.policy.Status(rec, now); locked {
		return nil, lockedError(remaining)
	}

	// Lazy expiry: a lock observed in the past is removed before anything
	// else happens for this email.
	if rec != nil && !rec.LockedUntil.IsZero() {
		delete(failures, email)
		if err := m.saveFailures(ctx, failures); err != nil {
			return nil, err
		}
		rec = nil
	}

	var matched bool
	var sess *Session
	if email == m.adminEmail {
		digest, err := m.ensureAdminDigest(ctx)
		if err != nil {
			return nil, err
		}
		matched = cryptox.Verify(digest, password)
		sess = &Session{Email: email, DisplayName: "Administrator", IsAdmin: true}
	} else {
		users, err := m.loadUsers(ctx)
		if err != nil {
			return nil, err
		}
		user, ok := users[email]
		matched = ok && cryptox.Verify(user.Digest, password)
		sess = &Session{Email: email, DisplayName: user.DisplayName}
	}

	if !matched {
		next := m.policy.Fail(rec, now)
		failures[email] = next
		if err := m.saveFailures(ctx, failures); err != nil {
			return nil, err
		}
		if locked, remaining := m.policy.Status(&next, now); locked {
			m.log.Warn(ctx, "account locked after repeated failures", "email", email, "attempts", next.Attempts)
			return nil, lockedError(remaining)
		}
		left := m.policy.MaxAttempts - next.Attempts
		return nil, fmt.Errorf("%w: %d attempt(s) remaining", common.ErrInvalidCredentials, left)
	}

	if _, ok := failures[email]; ok {
		delete(failures, email)
		if err := m.saveFailures(ctx, failures); err != nil {
			return nil, err
		}
	}

	if err := m.writeSession(ctx, sess); err != nil {
		return nil, err
	}

	m.log.Info(ctx, "signed in", "email", email, "admin", sess.IsAdmin)
	return sess, nil
}

// SignOut deletes the active session. No other state changes.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.store.Delete(ctx, store.KeySession); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// ChangeAdminPassword rotates the administrator digest after verifying the
// current password against it. The operation authenticates by password only
// and does not require an active administrator session; callers wanting that
// stricter gate must check CurrentSession themselves.
func (m *Manager) ChangeAdminPassword(ctx context.Context, current, next string) error {
	if current == "" || next == "" {
		return common.ErrMissingFields
	}

	digest, err := m.ensureAdminDigest(ctx)
	if err != nil {
		return err
	}
	if !cryptox.Verify(digest, current) {
		return common.ErrInvalidCredentials
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	if err := m.store.Set(ctx, store.KeyAdminDigest, []byte(cryptox.Digest(next))); err != nil {
		return fmt.Errorf("storing admin digest: %w", err)
	}

	m.log.Info(ctx, "admin credential rotated")
	return nil
}

// CurrentSession returns the active session, or nil when signed out. A
// tampered or unreadable persisted session reads as signed out.
func (m *Manager) CurrentSession(ctx context.Context) (*Session, error) {
	if _, err := m.ensureAdminDigest(ctx); err != nil {
		return nil, err
	}

	raw, err := m.store.Get(ctx, store.KeySession)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	sess, err := decodeSession(string(raw), m.secretKey)
	if err != nil {
		m.log.Warn(ctx, "discarding unreadable session", "error", err)
		return nil, nil
	}
	return sess, nil
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	s, err := m.CurrentSession(ctx)
	return err == nil && s != nil
}

// IsAdmin reports whether the active session belongs to the administrator.
func (m *Manager) IsAdmin(ctx context.Context) bool {
	s, err := m.CurrentSession(ctx)
	return err == nil && s != nil && s.IsAdmin
}

// ensureAdminDigest lazily writes the bootstrap admin digest on first use.
// Once a digest exists it is never touched here again, so repeated calls are
// idempotent and a rotated credential survives restarts.
func (m *Manager) ensureAdminDigest(ctx context.Context) (string, error) {
	raw, err := m.store.Get(ctx, store.KeyAdminDigest)
	if err != nil {
		return "", fmt.Errorf("reading admin digest: %w", err)
	}
	if len(raw) > 0 {
		return string(raw), nil
	}

	digest := cryptox.Digest(m.bootstrap)
	if err := m.store.Set(ctx, store.KeyAdminDigest, []byte(digest)); err != nil {
		return "", fmt.Errorf("bootstrapping admin digest: %w", err)
	}

	m.log.Warn(ctx, "admin credential bootstrapped from configured default, rotate it", "email", m.adminEmail)
	return digest, nil
}

func (m *Manager) writeSession(ctx context.Context, sess *Session) error {
	token, err := encodeSession(sess, m.secretKey, m.now())
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := m.store.Set(ctx, store.KeySession, []byte(token)); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

func (m *Manager) loadUsers(ctx context.Context) (map[string]User, error) {
	raw, err := m.store.Get(ctx, store.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("reading user records: %w", err)
	}

	users := map[string]User{}
	if len(raw) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(raw, &users); err != nil {
		// A corrupted blob degrades to an empty map instead of failing
		// every operation that needs it.
		m.log.Warn(ctx, "discarding unreadable user records", "error", err)
		return map[string]User{}, nil
	}
	return users, nil
}

func (m *Manager) saveUsers(ctx context.Context, users map[string]User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encoding user records: %w", err)
	}
	if err := m.store.Set(ctx, store.KeyUsers, raw); err != nil {
		return fmt.Errorf("storing user records: %w", err)
	}
	return nil
}

func (m *Manager) loadFailures(ctx context.Context) (map[string]FailureRecord, error) {
	raw, err := m.store.Get(ctx, store.KeyLoginFailures)
	if err != nil {
		return nil, fmt.Errorf("reading failure records: %w", err)
	}

	failures := map[string]FailureRecord{}
	if len(raw) == 0 {
		return failures, nil
	}
	if err := json.Unmarshal(raw, &failures); err != nil {
		m.log.Warn(ctx, "discarding unreadable failure records", "error", err)
		return map[string]FailureRecord{}, nil
	}
	return failures, nil
}

func (m *Manager) saveFailures(ctx context.Context, failures map[string]FailureRecord) error {
	raw, err := json.Marshal(failures)
	if err != nil {
		return fmt.Errorf("encoding failure records: %w", err)
	}
	if err := m.store.Set(ctx, store.KeyLoginFailures, raw); err != nil {
		return fmt.Errorf("storing failure records: %w", err)
	}
	return nil
}

// lockedError reports a lockout with ceil-rounded minutes so a 14m59s
// remainder reads as 15 minutes.
func lockedError(remaining time.Duration) error {
	minutes := int(math.Ceil(remaining.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Errorf("%w: try again in %d minute(s)", common.ErrAccountLocked, minutes)
}

// validatePassword enforces the admin password rules: at least 8 characters
// with an uppercase letter and a digit.
func validatePassword(p string) error {
	var upper, digit bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if len(p) < 8 || !upper || !digit {
		return fmt.Errorf("%w: use at least 8 characters including an uppercase letter and a digit", common.ErrWeakPassword)
	}
	return nil
}
