package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shopcore/internal/common"
	"shopcore/internal/logging"
	"shopcore/internal/store"
)

// sessionClaims is the signed payload persisted in the session namespace.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}

// encodeSession signs s with HS256. The signature is what keeps a locally
// edited session blob from turning into a forged admin session.
func encodeSession(s *Session, secretKey []byte, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		Email:       s.Email,
		DisplayName: s.DisplayName,
		IsAdmin:     s.IsAdmin,
	})

	return token.SignedString(secretKey)
}

// decodeSession parses and verifies a persisted session token. Callers treat
// any failure as "no session".
func decodeSession(raw string, secretKey []byte) (*Session, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &Session{
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		IsAdmin:     claims.IsAdmin,
	}, nil
}

// LoadOrCreateSessionSecret returns the signing key persisted in the record
// store, generating and storing one on first use. Keeping the key next to
// the session record is what lets a signed-in session survive a restart when
// no secret is configured.
func LoadOrCreateSessionSecret(ctx context.Context, st store.Store, log logging.Logger) (string, error) {
	raw, err := st.Get(ctx, store.KeySessionSecret)
	if err != nil {
		return "", fmt.Errorf("reading session secret: %w", err)
	}
	if len(raw) > 0 {
		return string(raw), nil
	}

	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	if err := st.Set(ctx, store.KeySessionSecret, []byte(secret)); err != nil {
		return "", fmt.Errorf("storing session secret: %w", err)
	}
	log.Info(ctx, "generated session signing secret")

	return secret, nil
}
