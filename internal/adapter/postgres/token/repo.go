// Package token implements the refresh-token and verification-token
// repositories using PostgreSQL.
package token

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/foodi-app/foodi-backend/internal/adapter/postgres"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

// Repo provides token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const refreshColumns = `id, user_id, token_hash, expires_at, created_at, revoked_at`

const createRefreshSQL = `
INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
VALUES ($1, $2, $3, $4)`

const getRefreshByHashSQL = `
SELECT ` + refreshColumns + `
FROM refresh_tokens
WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > now()`

const revokeRefreshByIDSQL = `
UPDATE refresh_tokens
SET revoked_at = now()
WHERE id = $1 AND revoked_at IS NULL`

const revokeAllRefreshByUserSQL = `
UPDATE refresh_tokens
SET revoked_at = now()
WHERE user_id = $1 AND revoked_at IS NULL`

const deleteExpiredRefreshSQL = `
DELETE FROM refresh_tokens
WHERE expires_at < now() OR revoked_at IS NOT NULL`

const verificationColumns = `id, user_id, token_hash, purpose, expires_at, consumed_at, created_at`

const createVerificationSQL = `
INSERT INTO verification_tokens (id, user_id, token_hash, purpose, expires_at)
VALUES ($1, $2, $3, $4, $5)`

const getVerificationByHashSQL = `
SELECT ` + verificationColumns + `
FROM verification_tokens
WHERE token_hash = $1 AND purpose = $2`

const consumeVerificationSQL = `
UPDATE verification_tokens
SET consumed_at = now()
WHERE id = $1 AND consumed_at IS NULL`

const deleteExpiredVerificationSQL = `
DELETE FROM verification_tokens
WHERE expires_at < now() OR consumed_at IS NOT NULL`

// ---------------------------------------------------------------------------
// Refresh tokens
// ---------------------------------------------------------------------------

// CreateRefresh inserts a new refresh token.
func (r *Repo) CreateRefresh(ctx context.Context, t *domain.RefreshToken) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := t.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	if _, err := querier.Exec(ctx, createRefreshSQL, id, t.UserID, t.TokenHash, t.ExpiresAt); err != nil {
		return postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return nil
}

// GetRefreshByHash returns an active (non-revoked, non-expired) refresh token
// by its hash. Returns domain.ErrNotFound otherwise.
func (r *Repo) GetRefreshByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.RefreshToken
	err := querier.QueryRow(ctx, getRefreshByHashSQL, tokenHash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.RevokedAt)
	if err != nil {
		return nil, postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return &t, nil
}

// RevokeRefreshByID revokes a specific refresh token by setting revoked_at.
// Idempotent: revoking an already-revoked token is not an error.
func (r *Repo) RevokeRefreshByID(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, revokeRefreshByIDSQL, id); err != nil {
		return postgres.MapError(err, "refresh_token", id)
	}
	return nil
}

// RevokeAllRefreshByUser revokes all active refresh tokens for the user.
func (r *Repo) RevokeAllRefreshByUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, revokeAllRefreshByUserSQL, userID); err != nil {
		return postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return nil
}

// DeleteExpiredRefresh removes all expired or revoked refresh tokens.
// Returns the count of deleted rows.
func (r *Repo) DeleteExpiredRefresh(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteExpiredRefreshSQL)
	if err != nil {
		return 0, postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Verification tokens
// ---------------------------------------------------------------------------

// CreateVerification inserts a new verification token.
func (r *Repo) CreateVerification(ctx context.Context, t *domain.VerificationToken) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := t.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := querier.Exec(ctx, createVerificationSQL,
		id, t.UserID, t.TokenHash, string(t.Purpose), t.ExpiresAt)
	if err != nil {
		return postgres.MapError(err, "verification_token", uuid.Nil)
	}
	return nil
}

// GetVerificationByHash returns a verification token by hash and purpose,
// consumed or not. Callers decide usability via IsUsable.
func (r *Repo) GetVerificationByHash(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.VerificationToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		t          domain.VerificationToken
		rawPurpose string
	)
	err := querier.QueryRow(ctx, getVerificationByHashSQL, tokenHash, string(purpose)).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &rawPurpose, &t.ExpiresAt, &t.ConsumedAt, &t.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "verification_token", uuid.Nil)
	}
	t.Purpose = domain.TokenPurpose(rawPurpose)
	return &t, nil
}

// ConsumeVerification marks the token as consumed. Returns domain.ErrNotFound
// if the token was already consumed (single-use enforcement).
func (r *Repo) ConsumeVerification(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, consumeVerificationSQL, id)
	if err != nil {
		return postgres.MapError(err, "verification_token", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "verification_token", id)
	}
	return nil
}

// DeleteExpiredVerification removes expired or consumed verification tokens.
// Returns the count of deleted rows.
func (r *Repo) DeleteExpiredVerification(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteExpiredVerificationSQL)
	if err != nil {
		return 0, postgres.MapError(err, "verification_token", uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}
