package store

import (
	"context"
	"errors"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Credentials() Credentials
	RegistrationTokens() RegistrationTokens

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped store.
type Tx interface {
	Credentials() Credentials
	RegistrationTokens() RegistrationTokens
	Commit() error
	Rollback() error
}

type Credentials interface {
	// List returns all enrolled credentials ordered by creation time.
	List(ctx context.Context) ([]domain.Credential, error)

	// GetByID returns a credential by its wire id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (domain.Credential, error)

	// Insert stores a new credential. Returns ErrAlreadyExists when the id
	// is already enrolled; the caller decides whether that is an error.
	Insert(ctx context.Context, c domain.Credential) error

	// UpdateUsage records the verifier-reported counter and the time of a
	// successful login. Last write wins; there is no compare-and-swap
	// against the previous counter.
	UpdateUsage(ctx context.Context, id string, counter uint32, lastUsedAt time.Time) error

	// Delete removes an enrolled credential. Reports rows removed.
	Delete(ctx context.Context, id string) (int64, error)
}

type RegistrationTokens interface {
	// Create stores a fresh one-time token.
	Create(ctx context.Context, t domain.RegistrationToken) error

	// Get returns the token record, or ErrNotFound.
	Get(ctx context.Context, token string) (domain.RegistrationToken, error)

	// Consume atomically marks an unused, unexpired token as used and
	// reports whether exactly one row transitioned. This MUST be a single
	// conditional write: a read-then-write pair reintroduces a double-spend
	// race under concurrent redemption.
	Consume(ctx context.Context, token string, now time.Time) (bool, error)

	// DeleteExpired purges tokens whose expiry has passed, returning the
	// number of rows removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
