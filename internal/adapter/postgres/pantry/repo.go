// Package pantry implements the PantryItem repository using PostgreSQL.
package pantry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/foodi-app/foodi-backend/internal/adapter/postgres"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

// Repo provides pantry item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new pantry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const pantryColumns = `id, user_id, name, quantity, unit, category, expires_at, created_at, updated_at`

const createSQL = `
INSERT INTO pantry_items (id, user_id, name, quantity, unit, category, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + pantryColumns

const getByIDSQL = `
SELECT ` + pantryColumns + `
FROM pantry_items
WHERE id = $1 AND user_id = $2`

const listByUserSQL = `
SELECT ` + pantryColumns + `
FROM pantry_items
WHERE user_id = $1
ORDER BY name ASC`

const updateSQL = `
UPDATE pantry_items
SET name = $3, quantity = $4, unit = $5, category = $6, expires_at = $7, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + pantryColumns

const deleteSQL = `
DELETE FROM pantry_items
WHERE id = $1 AND user_id = $2`

const expiringSQL = `
SELECT ` + pantryColumns + `
FROM pantry_items
WHERE user_id = $1 AND expires_at IS NOT NULL AND expires_at <= $2
ORDER BY expires_at ASC`

const deleteExpiredSQL = `
DELETE FROM pantry_items
WHERE user_id = $1 AND expires_at IS NOT NULL AND expires_at < now()`

const statsSQL = `
SELECT
    count(*),
    count(*) FILTER (WHERE expires_at IS NOT NULL AND expires_at < now()),
    count(*) FILTER (WHERE expires_at IS NOT NULL AND expires_at >= now() AND expires_at < now() + interval '7 days')
FROM pantry_items
WHERE user_id = $1`

const statsByCategorySQL = `
SELECT category, count(*)
FROM pantry_items
WHERE user_id = $1
GROUP BY category`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a pantry item for the user.
func (r *Repo) Create(ctx context.Context, item *domain.PantryItem) (*domain.PantryItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	id := item.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := querier.QueryRow(ctx, createSQL,
		id, item.UserID, item.Name, item.Quantity, item.Unit, item.Category, item.ExpiresAt)

	created, err := scanItem(row)
	if err != nil {
		return nil, postgres.MapError(err, "pantry_item", id)
	}
	return created, nil
}

// GetByID returns a pantry item by primary key filtered by owner.
func (r *Repo) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.PantryItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	item, err := scanItem(querier.QueryRow(ctx, getByIDSQL, id, userID))
	if err != nil {
		return nil, postgres.MapError(err, "pantry_item", id)
	}
	return item, nil
}

// ListByUser returns all of the user's pantry items ordered by name.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.PantryItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, postgres.MapError(err, "pantry_item", uuid.Nil)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Update rewrites a pantry item owned by the user.
func (r *Repo) Update(ctx context.Context, item *domain.PantryItem) (*domain.PantryItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL,
		item.ID, item.UserID, item.Name, item.Quantity, item.Unit, item.Category, item.ExpiresAt)

	updated, err := scanItem(row)
	if err != nil {
		return nil, postgres.MapError(err, "pantry_item", item.ID)
	}
	return updated, nil
}

// Delete removes a pantry item owned by the user.
// Returns domain.ErrNotFound if nothing matched.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "pantry_item", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "pantry_item", id)
	}
	return nil
}

// Expiring returns items whose expiry falls before the deadline, soonest
// first. Items without an expiry are never returned.
func (r *Repo) Expiring(ctx context.Context, userID uuid.UUID, deadline time.Time) ([]*domain.PantryItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, expiringSQL, userID, deadline)
	if err != nil {
		return nil, postgres.MapError(err, "pantry_item", uuid.Nil)
	}
	defer rows.Close()

	return collectItems(rows)
}

// DeleteExpired removes the user's expired items and returns the count.
func (r *Repo) DeleteExpired(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteExpiredSQL, userID)
	if err != nil {
		return 0, postgres.MapError(err, "pantry_item", uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}

// Stats returns aggregate pantry counts for the user.
func (r *Repo) Stats(ctx context.Context, userID uuid.UUID) (*domain.PantryStats, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var stats domain.PantryStats
	err := querier.QueryRow(ctx, statsSQL, userID).
		Scan(&stats.TotalItems, &stats.ExpiredItems, &stats.ExpiringSoon)
	if err != nil {
		return nil, postgres.MapError(err, "pantry_item", uuid.Nil)
	}

	rows, err := querier.Query(ctx, statsByCategorySQL, userID)
	if err != nil {
		return nil, postgres.MapError(err, "pantry_item", uuid.Nil)
	}
	defer rows.Close()

	stats.ByCategory = make(map[string]int)
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, postgres.MapError(err, "pantry_item", uuid.Nil)
		}
		stats.ByCategory[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "pantry_item", uuid.Nil)
	}

	return &stats, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanItem(row pgx.Row) (*domain.PantryItem, error) {
	var item domain.PantryItem
	err := row.Scan(
		&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Unit,
		&item.Category, &item.ExpiresAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func collectItems(rows pgx.Rows) ([]*domain.PantryItem, error) {
	var items []*domain.PantryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, postgres.MapError(err, "pantry_item", uuid.Nil)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "pantry_item", uuid.Nil)
	}
	return items, nil
}
