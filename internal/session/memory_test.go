package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Simplici0/estimator/internal/pricing/webmobile"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestMemoryStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(ttl)
	store.now = clock.now
	return store, clock
}

func TestMemoryStore_CreateStartsWithDefaults(t *testing.T) {
	store, _ := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	s, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == "" {
		t.Fatalf("expected an id")
	}
	if s.Panels.VideoTech || s.Panels.WebMobile {
		t.Fatalf("panels should start hidden: %+v", s.Panels)
	}
	if s.VideoTech.Events != 50 || s.WebMobile.ProjectMonths != 4 {
		t.Fatalf("unexpected defaults: %+v", s)
	}

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != s.ID {
		t.Fatalf("Get returned %q, want %q", got.ID, s.ID)
	}
}

func TestMemoryStore_SaveAndGetAreIsolatedCopies(t *testing.T) {
	store, _ := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	s, _ := store.Create(ctx)
	s.WebMobile.AddThirdPartyItem()
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s.WebMobile.ThirdPartyItems[0].Name = "mutated after save"

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.WebMobile.ThirdPartyItems) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got.WebMobile.ThirdPartyItems))
	}
	if got.WebMobile.ThirdPartyItems[0].Name != "Google Analytics (GA4)" {
		t.Fatalf("stored state aliased caller slice: %+v", got.WebMobile.ThirdPartyItems[0])
	}
}

func TestMemoryStore_ExpiresAfterIdleTTL(t *testing.T) {
	store, clock := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	s, _ := store.Create(ctx)

	clock.t = clock.t.Add(50 * time.Minute)
	if _, err := store.Get(ctx, s.ID); err != nil {
		t.Fatalf("Get within ttl: %v", err)
	}

	// Get extended the lifetime.
	clock.t = clock.t.Add(50 * time.Minute)
	if _, err := store.Get(ctx, s.ID); err != nil {
		t.Fatalf("Get after refresh: %v", err)
	}

	clock.t = clock.t.Add(time.Hour)
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expired session still counted")
	}
}

func TestMemoryStore_SaveUnknownSession(t *testing.T) {
	store, _ := newTestMemoryStore(time.Hour)

	err := store.Save(context.Background(), State{ID: "missing", WebMobile: webmobile.DefaultInputs()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store, _ := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	s, _ := store.Create(ctx)
	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
