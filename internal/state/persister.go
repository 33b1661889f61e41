package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-storefront/internal/store"
)

// Keys under which stores persist their state.
const (
	KeyCart     = "cart"
	KeyUser     = "user"
	KeyWaitlist = "waitlist"
)

const persistedVersion = 1

type persistedState[T any] struct {
	Version int `json:"version"`
	State   T   `json:"state"`
}

// Persister mirrors a whole state value of type T under a fixed key.
// A nil repository turns every call into a no-op.
type Persister[T any] struct {
	repo store.StateRepository
	key  string

	// mu orders mirror writes; mirrored is the newest sequence written.
	mu       sync.Mutex
	mirrored uint64
}

func NewPersister[T any](repo store.StateRepository, key string) *Persister[T] {
	return &Persister[T]{repo: repo, key: key}
}

// Save JSON-encodes v with the current version and stores it.
func (p *Persister[T]) Save(ctx context.Context, v T) error {
	if p == nil || p.repo == nil {
		return nil
	}

	raw, err := json.Marshal(persistedState[T]{Version: persistedVersion, State: v})
	if err != nil {
		return fmt.Errorf("encode %s state: %w", p.key, err)
	}
	if err := p.repo.Save(ctx, p.key, raw); err != nil {
		return fmt.Errorf("save %s state: %w", p.key, err)
	}
	return nil
}

// Mirror saves v taken at sequence seq. Writes are serialized and a value
// older than the last mirrored one is dropped.
func (p *Persister[T]) Mirror(ctx context.Context, seq uint64, v T) error {
	return p.mirror(seq, func() error { return p.Save(ctx, v) })
}

// MirrorClear clears the stored value under the same ordering as Mirror.
func (p *Persister[T]) MirrorClear(ctx context.Context, seq uint64) error {
	return p.mirror(seq, func() error { return p.Clear(ctx) })
}

func (p *Persister[T]) mirror(seq uint64, write func() error) error {
	if p == nil || p.repo == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq <= p.mirrored {
		return nil
	}
	p.mirrored = seq
	return write()
}

// Load returns the stored value. ok is false when nothing was stored.
func (p *Persister[T]) Load(ctx context.Context) (v T, ok bool, err error) {
	if p == nil || p.repo == nil {
		return v, false, nil
	}

	raw, err := p.repo.Load(ctx, p.key)
	if errors.Is(err, store.ErrStateNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("load %s state: %w", p.key, err)
	}

	var st persistedState[T]
	if err := json.Unmarshal(raw, &st); err != nil {
		return v, false, fmt.Errorf("decode %s state: %w", p.key, err)
	}
	if st.Version != persistedVersion {
		return v, false, fmt.Errorf("%w: %s has version %d", ErrUnsupportedVersion, p.key, st.Version)
	}

	return st.State, true, nil
}

// Clear removes the stored value.
func (p *Persister[T]) Clear(ctx context.Context) error {
	if p == nil || p.repo == nil {
		return nil
	}
	if err := p.repo.Delete(ctx, p.key); err != nil {
		return fmt.Errorf("delete %s state: %w", p.key, err)
	}
	return nil
}
