// Package store provides the persistent record store backing the storefront:
// a small namespaced key-value surface holding JSON blobs. Each namespace is
// written independently; no cross-namespace transactions are promised.
package store

import "context"

// Namespace keys. Each holds a single blob.
const (
	KeyAdminDigest   = "admin_credential_digest"
	KeyUsers         = "users"
	KeyLoginFailures = "login_failures"
	KeySession       = "session"
	KeySessionSecret = "session_secret"
	KeyCart          = "cart"
	KeyOrders        = "orders"
)

// Store is the persistence abstraction injected into the session and cart
// services. Get returns (nil, nil) when the key is absent; tolerating
// unreadable blobs is the caller's job.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// TxStore is implemented by backends that can group several writes into one
// transaction. fn receives a Store bound to the transaction; returning an
// error rolls every write back.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
