package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcore/internal/config"
	"shopcore/internal/logging"
	"shopcore/internal/store"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	in := &Session{Email: "user@x.com", DisplayName: "User", IsAdmin: false}

	token, err := encodeSession(in, secret, time.Now())
	require.NoError(t, err)

	out, err := decodeSession(token, secret)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := encodeSession(&Session{Email: "user@x.com"}, []byte("secret-a"), time.Now())
	require.NoError(t, err)

	_, err = decodeSession(token, []byte("secret-b"))
	assert.Error(t, err)
}

func TestSessionTokenTampered(t *testing.T) {
	secret := []byte("test-secret")
	token, err := encodeSession(&Session{Email: "user@x.com"}, secret, time.Now())
	require.NoError(t, err)

	_, err = decodeSession(token+"x", secret)
	assert.Error(t, err)

	_, err = decodeSession("not-a-token", secret)
	assert.Error(t, err)
}

func TestLoadOrCreateSessionSecretStable(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	first, err := LoadOrCreateSessionSecret(ctx, st, logging.NewDiscard())
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := LoadOrCreateSessionSecret(ctx, st, logging.NewDiscard())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// A signed-in session must survive a process restart when no secret is
// configured: each run resolves the signing key from the record store, so
// two manager instances over the same store agree on it.
func TestSessionSurvivesRestartWithGeneratedSecret(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	newRun := func() *Manager {
		cfg := &config.Config{}
		cfg.LoadDefaults()
		secret, err := LoadOrCreateSessionSecret(ctx, st, logging.NewDiscard())
		require.NoError(t, err)
		cfg.SessionSecret = secret
		return NewManager(st, cfg, logging.NewDiscard())
	}

	run1 := newRun()
	_, err := run1.SignUp(ctx, "user@x.com", "hunter2pw", "User")
	require.NoError(t, err)

	run2 := newRun()
	sess, err := run2.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "user@x.com", sess.Email)

	// Sign-out in the second run clears the session for good.
	require.NoError(t, run2.SignOut(ctx))
	sess, err = newRun().CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
