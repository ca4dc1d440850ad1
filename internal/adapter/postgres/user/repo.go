// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/foodi-app/foodi-backend/internal/adapter/postgres"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const userColumns = `id, email, username, password_hash, first_name, last_name,
auth_provider, provider_id, email_verified, onboarding_completed, is_active,
created_at, updated_at`

const getByIDSQL = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1 AND is_active`

const getByEmailSQL = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1 AND is_active`

const getByProviderSQL = `
SELECT ` + userColumns + `
FROM users
WHERE auth_provider = $1 AND provider_id = $2 AND is_active`

const createSQL = `
INSERT INTO users (id, email, username, password_hash, first_name, last_name,
                   auth_provider, provider_id, email_verified, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + userColumns

const updateNamesSQL = `
UPDATE users
SET first_name = $2, last_name = $3, updated_at = now()
WHERE id = $1 AND is_active
RETURNING ` + userColumns

const setEmailVerifiedSQL = `
UPDATE users
SET email_verified = true, updated_at = now()
WHERE id = $1 AND is_active`

const setOnboardingCompletedSQL = `
UPDATE users
SET onboarding_completed = $2, updated_at = now()
WHERE id = $1 AND is_active`

const deactivateSQL = `
UPDATE users
SET is_active = false, updated_at = now()
WHERE id = $1 AND is_active`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// GetByID returns an active user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByEmail returns an active user by email address (stored lowercased).
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// GetByProvider returns an active user by (auth provider, provider id).
func (r *Repo) GetByProvider(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, getByProviderSQL, string(provider), providerID))
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// Create inserts a new user and returns the persisted row.
// Email and username uniqueness are enforced by DB constraints; violations
// surface as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		u.ID, u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName,
		string(u.Provider), u.ProviderID, u.EmailVerified, u.CreatedAt, u.UpdatedAt,
	)

	created, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}
	return created, nil
}

// UpdateNames modifies first_name and last_name for the given user.
func (r *Repo) UpdateNames(ctx context.Context, id uuid.UUID, firstName, lastName string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(querier.QueryRow(ctx, updateNamesSQL, id, firstName, lastName))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// SetEmailVerified marks the user's email as verified. Idempotent.
func (r *Repo) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setEmailVerifiedSQL, id)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

// SetOnboardingCompleted updates the onboarding flag for the given user.
func (r *Repo) SetOnboardingCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setOnboardingCompletedSQL, id, completed)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

// Deactivate soft-deletes the user. Rows are never hard-deleted.
func (r *Repo) Deactivate(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deactivateSQL, id)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u         domain.User
		provider  string
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&provider, &u.ProviderID, &u.EmailVerified, &u.OnboardingCompleted, &u.IsActive,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Provider = domain.AuthProvider(provider)
	u.CreatedAt = createdAt
	u.UpdatedAt = updatedAt
	return &u, nil
}
