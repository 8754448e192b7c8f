package store

import (
	"context"
	"errors"

	"github.com/quartzlabs/signet/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres someday) implement this. Sub-repositories keep concerns tidy and
// make it obvious which operations participate in a transaction.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Multi-step operations that must be atomic
	// (refresh token rotation in particular) go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during registration (duplicate check) and login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByActivationLink resolves an activation link to its user.
	// Links are never cleared, so a second activation attempt still finds
	// the (already activated) user.
	GetUserByActivationLink(ctx context.Context, link string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// MarkUserActivated sets activated=1 and bumps updated_at.
	MarkUserActivated(ctx context.Context, userID string) error

	// ListUsers returns all users ordered by registration time.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int64, error)
}

type RefreshTokens interface {
	// UpsertRefreshToken stores t keyed by its UserID, overwriting any
	// previous row for that user. The overwrite is the rotation point:
	// after it, the user's prior refresh token no longer resolves.
	UpsertRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the record by token fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// DeleteRefreshTokenByHash removes the matching record. Deleting a
	// hash that is not present is not an error.
	DeleteRefreshTokenByHash(ctx context.Context, hash string) error

	// DeleteExpiredRefreshTokens is housekeeping.
	DeleteExpiredRefreshTokens(ctx context.Context) error
}
