package pantry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foodi-app/foodi-backend/internal/adapter/postgres/pantry"
	"github.com/foodi-app/foodi-backend/internal/adapter/postgres/testhelper"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

// newRepo is a test helper that sets up the DB and returns a ready Repo.
func newRepo(t *testing.T) (*pantry.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return pantry.New(pool), pool
}

func timePtr(t time.Time) *time.Time { return &t }

// ---------------------------------------------------------------------------
// CRUD
// ---------------------------------------------------------------------------

func TestRepo_CreateAndGet(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	expires := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	created, err := repo.Create(ctx, &domain.PantryItem{
		UserID:    user.ID,
		Name:      "Milk",
		Quantity:  1.5,
		Unit:      "l",
		Category:  "dairy",
		ExpiresAt: &expires,
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected generated id")
	}

	got, err := repo.GetByID(ctx, user.ID, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Name != "Milk" || got.Quantity != 1.5 || got.Unit != "l" || got.Category != "dairy" {
		t.Errorf("unexpected item: %+v", got)
	}
	if got.ExpiresAt == nil || !got.ExpiresAt.Equal(expires) {
		t.Errorf("expected expires_at %v, got %v", expires, got.ExpiresAt)
	}
}

func TestRepo_GetByID_ForeignOwner(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	owner := testhelper.SeedUser(t, pool)
	stranger := testhelper.SeedUser(t, pool)
	item := testhelper.SeedPantryItem(t, pool, owner.ID, "Eggs", nil)

	if _, err := repo.GetByID(ctx, stranger.ID, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
}

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	item := testhelper.SeedPantryItem(t, pool, user.ID, "Rice", nil)

	item.Quantity = 2.5
	item.Unit = "kg"
	item.Category = "grains"
	expires := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	item.ExpiresAt = &expires

	updated, err := repo.Update(ctx, &item)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if updated.Quantity != 2.5 || updated.Unit != "kg" || updated.Category != "grains" {
		t.Errorf("unexpected updated item: %+v", updated)
	}
	if updated.ExpiresAt == nil || !updated.ExpiresAt.Equal(expires) {
		t.Errorf("expected expires_at %v, got %v", expires, updated.ExpiresAt)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	item := testhelper.SeedPantryItem(t, pool, user.ID, "Butter", nil)

	if err := repo.Delete(ctx, user.ID, item.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, user.ID, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, user.ID, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRepo_ListByUser_ScopedToOwner(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user1 := testhelper.SeedUser(t, pool)
	user2 := testhelper.SeedUser(t, pool)
	testhelper.SeedPantryItem(t, pool, user1.ID, "Flour", nil)
	testhelper.SeedPantryItem(t, pool, user1.ID, "Sugar", nil)
	testhelper.SeedPantryItem(t, pool, user2.ID, "Salt", nil)

	items, err := repo.ListByUser(ctx, user1.ID)
	if err != nil {
		t.Fatalf("ListByUser: unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, it := range items {
		if it.UserID != user1.ID {
			t.Errorf("item %q belongs to %s, expected %s", it.Name, it.UserID, user1.ID)
		}
	}
}

// ---------------------------------------------------------------------------
// Expiry
// ---------------------------------------------------------------------------

func TestRepo_Expiring(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	now := time.Now().UTC()

	soon := testhelper.SeedPantryItem(t, pool, user.ID, "Yogurt", timePtr(now.Add(24*time.Hour)))
	testhelper.SeedPantryItem(t, pool, user.ID, "Canned beans", timePtr(now.Add(60*24*time.Hour)))
	testhelper.SeedPantryItem(t, pool, user.ID, "Honey", nil)

	items, err := repo.Expiring(ctx, user.ID, now.Add(3*24*time.Hour))
	if err != nil {
		t.Fatalf("Expiring: unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != soon.ID {
		t.Fatalf("expected only the soon-expiring item, got %+v", items)
	}
}

func TestRepo_DeleteExpired(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	now := time.Now().UTC()

	testhelper.SeedPantryItem(t, pool, user.ID, "Old milk", timePtr(now.Add(-24*time.Hour)))
	testhelper.SeedPantryItem(t, pool, user.ID, "Older cheese", timePtr(now.Add(-72*time.Hour)))
	fresh := testhelper.SeedPantryItem(t, pool, user.ID, "Fresh bread", timePtr(now.Add(24*time.Hour)))
	keeper := testhelper.SeedPantryItem(t, pool, user.ID, "Honey", nil)

	removed, err := repo.DeleteExpired(ctx, user.ID)
	if err != nil {
		t.Fatalf("DeleteExpired: unexpected error: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}

	items, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 surviving items, got %d", len(items))
	}
	for _, it := range items {
		if it.ID != fresh.ID && it.ID != keeper.ID {
			t.Errorf("unexpected survivor: %+v", it)
		}
	}
}

func TestRepo_Stats(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	now := time.Now().UTC()

	testhelper.SeedPantryItem(t, pool, user.ID, "Expired milk", timePtr(now.Add(-24*time.Hour)))
	testhelper.SeedPantryItem(t, pool, user.ID, "Yogurt", timePtr(now.Add(2*24*time.Hour)))
	testhelper.SeedPantryItem(t, pool, user.ID, "Canned beans", timePtr(now.Add(60*24*time.Hour)))
	testhelper.SeedPantryItem(t, pool, user.ID, "Honey", nil)

	stats, err := repo.Stats(ctx, user.ID)
	if err != nil {
		t.Fatalf("Stats: unexpected error: %v", err)
	}

	if stats.TotalItems != 4 {
		t.Errorf("expected 4 total items, got %d", stats.TotalItems)
	}
	if stats.ExpiredItems != 1 {
		t.Errorf("expected 1 expired item, got %d", stats.ExpiredItems)
	}
	if stats.ExpiringSoon != 1 {
		t.Errorf("expected 1 expiring soon, got %d", stats.ExpiringSoon)
	}
	if got := stats.ByCategory["produce"]; got != 4 {
		t.Errorf("expected 4 produce items, got %d", got)
	}
}

func TestRepo_Stats_EmptyPantry(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	stats, err := repo.Stats(ctx, user.ID)
	if err != nil {
		t.Fatalf("Stats: unexpected error: %v", err)
	}
	if stats.TotalItems != 0 || stats.ExpiredItems != 0 || stats.ExpiringSoon != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
	if len(stats.ByCategory) != 0 {
		t.Errorf("expected empty by-category map, got %+v", stats.ByCategory)
	}
}
