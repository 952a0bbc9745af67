package profilecache

import (
	"context"
	"sync"
	"time"

	"tapcard/internal/domain"
)

// Source fetches profile records from the configured backend (the sqlite
// store or an upstream profile API).
type Source interface {
	GetProfile(ctx context.Context, id string) (domain.Profile, error)
}

// CurrentStore persists the current-profile pointer across restarts. The
// entry map itself is never persisted.
type CurrentStore interface {
	LoadCurrentProfile(ctx context.Context) (string, error)
	SaveCurrentProfile(ctx context.Context, id string) error
}

// Entry is the cached state for one profile key.
type Entry struct {
	Profile   domain.Profile
	Loading   bool
	FetchedAt time.Time
	Err       string
}

// ErrFetchTimeout is the per-key error recorded when the source does not
// answer within the fetch timeout.
const ErrFetchTimeout = "fetch timed out"

const (
	defaultTTL     = 5 * time.Minute
	defaultTimeout = 15 * time.Second
)

// Options tunes cache behavior; zero values take the defaults.
type Options struct {
	TTL          time.Duration
	FetchTimeout time.Duration
}

type entry struct {
	profile   *domain.Profile
	fetchedAt time.Time
	loading   bool
	seq       uint64
	err       string
}

// Cache is a read-through, key-addressed profile cache with per-key loading
// and error tracking. At most one fetch per key is in flight; a second
// fetch for a loading key returns nil immediately rather than waiting (the
// caller re-polls). Entries expire after the TTL and read as absent.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	source  Source
	store   CurrentStore
	ttl     time.Duration
	timeout time.Duration
	seq     uint64

	now func() time.Time
}

// New builds a cache over source, persisting the current pointer in store.
func New(source Source, store CurrentStore, opts Options) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = defaultTimeout
	}
	return &Cache{
		entries: map[string]*entry{},
		source:  source,
		store:   store,
		ttl:     opts.TTL,
		timeout: opts.FetchTimeout,
		now:     time.Now,
	}
}

// Get returns the cached entry for key, or nil when the key is absent,
// still loading without a value, or stale. It never touches the source.
func (c *Cache) Get(key string) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.liveLocked(key)
}

// liveLocked returns a copy of the entry when it holds a fresh value.
func (c *Cache) liveLocked(key string) *Entry {
	e, ok := c.entries[key]
	if !ok || e.profile == nil {
		return nil
	}
	if c.now().Sub(e.fetchedAt) > c.ttl {
		return nil
	}
	return &Entry{Profile: *e.profile, Loading: e.loading, FetchedAt: e.fetchedAt, Err: e.err}
}

// Err returns the last fetch error recorded for key, if any.
func (c *Cache) Err(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.err
	}
	return ""
}

// Loading reports whether a fetch for key is in flight.
func (c *Cache) Loading(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && e.loading
}

// Fetch returns the profile for key, calling the source on a cache miss.
// It returns nil without waiting when a fetch for key is already in flight,
// and nil on source failure; the error is retained per key until the next
// successful fetch. Fetch itself never returns an error.
func (c *Cache) Fetch(ctx context.Context, key string) *domain.Profile {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && e.loading {
		c.mu.Unlock()
		return nil
	}
	if live := c.liveLocked(key); live != nil {
		c.mu.Unlock()
		return &live.Profile
	}
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.loading = true
	c.seq++
	e.seq = c.seq
	seq := e.seq
	source := c.source
	c.mu.Unlock()

	type result struct {
		profile domain.Profile
		err     error
	}
	ch := make(chan result, 1)
	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	go func() {
		defer cancel()
		profile, err := source.GetProfile(fetchCtx, key)
		ch <- result{profile: profile, err: err}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case res := <-ch:
		return c.settle(key, seq, res.profile, res.err)
	case <-timer.C:
		// The source is hung; clear the loading flag so later fetches can
		// start fresh, and drop the late result when it finally lands.
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && e.loading && e.seq == seq {
			e.loading = false
			e.err = ErrFetchTimeout
		}
		c.mu.Unlock()
		return nil
	}
}

// settle stores the fetch outcome unless a newer fetch or a timeout already
// superseded this attempt.
func (c *Cache) settle(key string, seq uint64, profile domain.Profile, err error) *domain.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.loading || e.seq != seq {
		return nil
	}
	e.loading = false
	if err != nil {
		e.err = err.Error()
		e.profile = nil
		return nil
	}
	stored := profile
	e.profile = &stored
	e.fetchedAt = c.now()
	e.err = ""
	out := stored
	return &out
}

// Refresh evicts key unconditionally and fetches it again, even when a
// fresh entry exists.
func (c *Cache) Refresh(ctx context.Context, key string) *domain.Profile {
	c.Invalidate(key)
	return c.Fetch(ctx, key)
}

// Preload warms the cache for key, swallowing all failures.
func (c *Cache) Preload(ctx context.Context, key string) {
	_ = c.Fetch(ctx, key)
}

// Invalidate drops the cached value, timestamp, and error for key without
// fetching. A fetch already in flight for key stays the one outstanding
// fetch: the loading marker survives so no second source call starts, and
// the in-flight result still lands.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	if e.loading {
		e.profile = nil
		e.fetchedAt = time.Time{}
		e.err = ""
		return
	}
	delete(c.entries, key)
}

// Clear drops every cached entry and resets the current-profile pointer.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = map[string]*entry{}
	c.mu.Unlock()
	return c.store.SaveCurrentProfile(ctx, "")
}

// SetCurrent updates only the durable current-profile pointer; it does not
// fetch.
func (c *Cache) SetCurrent(ctx context.Context, id string) error {
	return c.store.SaveCurrentProfile(ctx, id)
}

// Current returns the durable current-profile pointer; empty means none.
func (c *Cache) Current(ctx context.Context) (string, error) {
	return c.store.LoadCurrentProfile(ctx)
}
