// Package cryptox implements the credential digest used to store and verify
// passwords. The digest is deliberately deterministic: the same secret always
// yields the same digest, so verification is equality-based and the admin
// bootstrap stays idempotent.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// digestSalt is a fixed application-wide salt. A per-credential random salt
// would break the deterministic contract the rest of the system relies on.
var digestSalt = []byte("shopcore/credential/v1")

// Digest derives a stable hex digest from a plaintext secret using argon2id
// followed by SHA-256. Total over all strings, including the empty string.
func Digest(secret string) string {
	key := argon2.IDKey([]byte(secret), digestSalt, 1, 64*1024, 4, 32)
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:])
}

// Verify reports whether secret digests to stored. The comparison is
// constant-time.
func Verify(stored, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(Digest(secret))) == 1
}
