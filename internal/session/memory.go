package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	state   State
	expires time.Time
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryStore returns an empty store whose sessions expire after ttl idle.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Create(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)

	s := NewState(now)
	m.entries[s.ID] = memoryEntry{state: s.Clone(), expires: now.Add(m.ttl)}
	return s, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.live(id, now)
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.expires = now.Add(m.ttl)
	m.entries[id] = e
	return e.state.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, ok := m.live(s.ID, now); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, s.ID)
	}
	s.UpdatedAt = now
	m.entries[s.ID] = memoryEntry{state: s.Clone(), expires: now.Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.live(id, m.now()); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(m.entries, id)
	return nil
}

// Len returns the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(m.now())
	return len(m.entries)
}

// live must be called with mu held.
func (m *MemoryStore) live(id string, now time.Time) (memoryEntry, bool) {
	e, ok := m.entries[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !now.Before(e.expires) {
		delete(m.entries, id)
		return memoryEntry{}, false
	}
	return e, true
}

func (m *MemoryStore) sweep(now time.Time) {
	for id, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, id)
		}
	}
}
