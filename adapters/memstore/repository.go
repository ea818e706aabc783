package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"wavescope/domain/core"
	"wavescope/domain/dataset"
)

// Config holds registry limits
type Config struct {
	// TTL after which an untouched dataset is evicted
	TTL time.Duration
	// Capacity caps held datasets; the least recently touched goes first
	Capacity int
	// Clock is overridable for tests
	Clock func() time.Time
}

// DefaultConfig returns the standard registry limits
func DefaultConfig() Config {
	return Config{
		TTL:      2 * time.Hour,
		Capacity: 16,
		Clock:    time.Now,
	}
}

// Repository is an in-memory dataset registry with lazy TTL eviction.
// Expired entries are swept on access rather than by a background task,
// keeping the interaction model free of long-lived work.
type Repository struct {
	mu      sync.RWMutex
	entries map[core.DatasetID]*entry
	config  Config
}

type entry struct {
	ds      *dataset.Dataset
	touched time.Time
}

// New creates a dataset registry with the given limits
func New(config Config) *Repository {
	if config.TTL <= 0 {
		config.TTL = DefaultConfig().TTL
	}
	if config.Capacity < 1 {
		config.Capacity = DefaultConfig().Capacity
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	return &Repository{
		entries: make(map[core.DatasetID]*entry),
		config:  config,
	}
}

// Put stores a dataset, evicting expired and over-capacity entries first
func (r *Repository) Put(ctx context.Context, ds *dataset.Dataset) error {
	if ds == nil || ds.ID.IsEmpty() {
		return core.NewNotFoundError("dataset", "(empty id)")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.config.Clock()
	r.sweepLocked(now)

	// Replacing a held id needs no room.
	if _, held := r.entries[ds.ID]; !held {
		for len(r.entries) >= r.config.Capacity {
			r.evictOldestLocked()
		}
	}

	r.entries[ds.ID] = &entry{ds: ds, touched: now}
	return nil
}

// Get returns a live dataset and refreshes its TTL
func (r *Repository) Get(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.config.Clock()
	e, ok := r.entries[id]
	if !ok || now.Sub(e.touched) > r.config.TTL {
		if ok {
			delete(r.entries, id)
		}
		return nil, core.NewNotFoundError("dataset", id.String())
	}

	e.touched = now
	return e.ds, nil
}

// Delete removes a dataset; deleting an absent id is not an error
func (r *Repository) Delete(ctx context.Context, id core.DatasetID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}

// List returns summaries of live datasets, newest upload first
func (r *Repository) List(ctx context.Context) ([]dataset.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked(r.config.Clock())

	summaries := make([]dataset.Summary, 0, len(r.entries))
	for _, e := range r.entries {
		summaries = append(summaries, e.ds.Summarize())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[j].Uploaded.Before(summaries[i].Uploaded)
	})
	return summaries, nil
}

// Len reports the number of live entries
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Repository) sweepLocked(now time.Time) {
	for id, e := range r.entries {
		if now.Sub(e.touched) > r.config.TTL {
			delete(r.entries, id)
		}
	}
}

func (r *Repository) evictOldestLocked() {
	var oldestID core.DatasetID
	var oldest time.Time
	first := true
	for id, e := range r.entries {
		if first || e.touched.Before(oldest) {
			oldestID = id
			oldest = e.touched
			first = false
		}
	}
	if !first {
		delete(r.entries, oldestID)
	}
}
