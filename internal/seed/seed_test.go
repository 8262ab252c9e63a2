package seed

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/Simplici0/estimator/internal/db"
	"github.com/Simplici0/estimator/internal/migrations"
	"github.com/Simplici0/estimator/internal/ratecard"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(ctx, database, zap.NewNop()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 1 {
				t.Fatalf("expected 1 insert in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM rate_card`, 1)

	card, err := ratecard.NewStore(database).Get(ctx)
	if err != nil {
		t.Fatalf("get rate card: %v", err)
	}
	if card != ratecard.Default() {
		t.Fatalf("seeded card %+v, want %+v", card, ratecard.Default())
	}
}

func TestRunKeepsEditedRates(t *testing.T) {
	ctx := context.Background()

	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "seed-edit.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(ctx, database, zap.NewNop()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := Run(ctx, database); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	store := ratecard.NewStore(database)
	edited := ratecard.Default()
	edited.HourlyRate = 12
	if err := store.Update(ctx, edited); err != nil {
		t.Fatalf("update rate card: %v", err)
	}

	if _, err := Run(ctx, database); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	card, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("get rate card: %v", err)
	}
	if card.HourlyRate != 12 {
		t.Fatalf("seed overwrote edited hourly rate: %v", card.HourlyRate)
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, expected int) {
	t.Helper()

	var count int
	if err := database.QueryRow(query).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
