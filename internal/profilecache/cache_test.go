package profilecache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tapcard/internal/domain"
)

type fakeSource struct {
	mu       sync.Mutex
	calls    int
	profiles map[string]domain.Profile
	err      error
	block    chan struct{}
}

func (f *fakeSource) GetProfile(ctx context.Context, id string) (domain.Profile, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	err := f.err
	profile, ok := f.profiles[id]
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if err != nil {
		return domain.Profile{}, err
	}
	if !ok {
		return domain.Profile{}, errors.New("not found")
	}
	return profile, nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memStore struct {
	mu      sync.Mutex
	current string
}

func (s *memStore) LoadCurrentProfile(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

func (s *memStore) SaveCurrentProfile(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = id
	return nil
}

func newTestCache(source Source, opts Options) (*Cache, *memStore) {
	store := &memStore{}
	return New(source, store, opts), store
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not reached in time")
}

// TestFetchCachesAndExpires verifies the 5-minute freshness window.
func TestFetchCachesAndExpires(t *testing.T) {
	source := &fakeSource{profiles: map[string]domain.Profile{"p1": {ID: "p1", FullName: "Ada Lovelace"}}}
	cache, _ := newTestCache(source, Options{})

	base := time.Now()
	cache.now = func() time.Time { return base }

	if got := cache.Fetch(context.Background(), "p1"); got == nil || got.FullName != "Ada Lovelace" {
		t.Fatalf("fetch: got %+v", got)
	}
	if source.callCount() != 1 {
		t.Fatalf("expected 1 source call, got %d", source.callCount())
	}

	cache.now = func() time.Time { return base.Add(4 * time.Minute) }
	if e := cache.Get("p1"); e == nil {
		t.Fatalf("expected live entry inside window")
	}
	if cache.Fetch(context.Background(), "p1") == nil {
		t.Fatalf("expected cached fetch inside window")
	}
	if source.callCount() != 1 {
		t.Fatalf("cached fetch hit the source: %d calls", source.callCount())
	}

	cache.now = func() time.Time { return base.Add(5*time.Minute + time.Second) }
	if e := cache.Get("p1"); e != nil {
		t.Fatalf("expected stale entry to read as absent, got %+v", e)
	}
	if cache.Fetch(context.Background(), "p1") == nil {
		t.Fatalf("expected refetch after expiry")
	}
	if source.callCount() != 2 {
		t.Fatalf("expected refetch, got %d calls", source.callCount())
	}
}

// TestConcurrentFetchDeduplicates verifies the weak in-flight guard: one
// source call, the second caller gets nil immediately.
func TestConcurrentFetchDeduplicates(t *testing.T) {
	source := &fakeSource{
		profiles: map[string]domain.Profile{"p1": {ID: "p1"}},
		block:    make(chan struct{}),
	}
	cache, _ := newTestCache(source, Options{})

	results := make(chan *domain.Profile, 1)
	go func() { results <- cache.Fetch(context.Background(), "p1") }()
	waitFor(t, func() bool { return cache.Loading("p1") })

	if got := cache.Fetch(context.Background(), "p1"); got != nil {
		t.Fatalf("second fetch during flight should be nil, got %+v", got)
	}

	close(source.block)
	if got := <-results; got == nil || got.ID != "p1" {
		t.Fatalf("first fetch: got %+v", got)
	}
	if source.callCount() != 1 {
		t.Fatalf("expected exactly one source call, got %d", source.callCount())
	}
}

// TestInvalidate verifies invalidation beats the freshness window.
func TestInvalidate(t *testing.T) {
	source := &fakeSource{profiles: map[string]domain.Profile{"p1": {ID: "p1"}}}
	cache, _ := newTestCache(source, Options{})

	if cache.Fetch(context.Background(), "p1") == nil {
		t.Fatalf("fetch failed")
	}
	cache.Invalidate("p1")
	if e := cache.Get("p1"); e != nil {
		t.Fatalf("expected miss after invalidate, got %+v", e)
	}
}

// TestRefreshForcesRefetch verifies refresh hits the source even with a
// fresh entry cached.
func TestRefreshForcesRefetch(t *testing.T) {
	source := &fakeSource{profiles: map[string]domain.Profile{"p1": {ID: "p1"}}}
	cache, _ := newTestCache(source, Options{})

	if cache.Fetch(context.Background(), "p1") == nil {
		t.Fatalf("fetch failed")
	}
	if cache.Refresh(context.Background(), "p1") == nil {
		t.Fatalf("refresh failed")
	}
	if source.callCount() != 2 {
		t.Fatalf("expected 2 source calls, got %d", source.callCount())
	}
}

// TestRefreshDuringFlightKeepsSingleFetch verifies refreshing a loading key
// does not start a second source call; the in-flight fetch stays the only
// outstanding one and its result still lands.
func TestRefreshDuringFlightKeepsSingleFetch(t *testing.T) {
	source := &fakeSource{
		profiles: map[string]domain.Profile{"p1": {ID: "p1"}},
		block:    make(chan struct{}),
	}
	cache, _ := newTestCache(source, Options{})

	results := make(chan *domain.Profile, 1)
	go func() { results <- cache.Fetch(context.Background(), "p1") }()
	waitFor(t, func() bool { return cache.Loading("p1") })

	if got := cache.Refresh(context.Background(), "p1"); got != nil {
		t.Fatalf("refresh during flight should be nil, got %+v", got)
	}
	if !cache.Loading("p1") {
		t.Fatal("in-flight fetch must survive the refresh")
	}

	close(source.block)
	if got := <-results; got == nil || got.ID != "p1" {
		t.Fatalf("first fetch: got %+v", got)
	}
	if source.callCount() != 1 {
		t.Fatalf("expected exactly one source call, got %d", source.callCount())
	}
	if cache.Get("p1") == nil {
		t.Fatal("in-flight result should land after refresh")
	}
}

// TestFetchErrorRetained verifies a failed fetch leaves the key uncached
// with its error retained until the next success.
func TestFetchErrorRetained(t *testing.T) {
	source := &fakeSource{err: errors.New("backend down")}
	cache, _ := newTestCache(source, Options{})

	if got := cache.Fetch(context.Background(), "p1"); got != nil {
		t.Fatalf("expected nil on failure, got %+v", got)
	}
	if cache.Err("p1") != "backend down" {
		t.Fatalf("expected retained error, got %q", cache.Err("p1"))
	}
	if cache.Get("p1") != nil {
		t.Fatalf("failed key must read as a miss")
	}

	source.mu.Lock()
	source.err = nil
	source.profiles = map[string]domain.Profile{"p1": {ID: "p1"}}
	source.mu.Unlock()

	if cache.Fetch(context.Background(), "p1") == nil {
		t.Fatalf("expected retry to succeed")
	}
	if cache.Err("p1") != "" {
		t.Fatalf("error should clear on success, got %q", cache.Err("p1"))
	}
}

// TestFetchTimeoutClearsLoading verifies a hung source cannot wedge the key:
// the loading flag clears, a timeout error is recorded, and later fetches
// start fresh.
func TestFetchTimeoutClearsLoading(t *testing.T) {
	source := &fakeSource{
		profiles: map[string]domain.Profile{"p1": {ID: "p1"}},
		block:    make(chan struct{}),
	}
	defer close(source.block)
	cache, _ := newTestCache(source, Options{FetchTimeout: 20 * time.Millisecond})

	if got := cache.Fetch(context.Background(), "p1"); got != nil {
		t.Fatalf("expected nil on timeout, got %+v", got)
	}
	if cache.Loading("p1") {
		t.Fatalf("loading flag stuck after timeout")
	}
	if cache.Err("p1") != ErrFetchTimeout {
		t.Fatalf("expected timeout error, got %q", cache.Err("p1"))
	}

	quick := &fakeSource{profiles: map[string]domain.Profile{"p1": {ID: "p1"}}}
	cache.source = quick
	if cache.Fetch(context.Background(), "p1") == nil {
		t.Fatalf("expected fetch to recover after timeout")
	}
}

// TestPreloadSwallowsErrors verifies preload never surfaces failures.
func TestPreloadSwallowsErrors(t *testing.T) {
	source := &fakeSource{err: errors.New("boom")}
	cache, _ := newTestCache(source, Options{})
	cache.Preload(context.Background(), "p1")
	if cache.Err("p1") != "boom" {
		t.Fatalf("expected recorded error, got %q", cache.Err("p1"))
	}
}

// TestCurrentPointer verifies the durable pointer and Clear semantics.
func TestCurrentPointer(t *testing.T) {
	source := &fakeSource{profiles: map[string]domain.Profile{"p1": {ID: "p1"}}}
	cache, store := newTestCache(source, Options{})

	if err := cache.SetCurrent(context.Background(), "p1"); err != nil {
		t.Fatalf("set current: %v", err)
	}
	if current, _ := cache.Current(context.Background()); current != "p1" {
		t.Fatalf("expected current p1, got %q", current)
	}
	if cache.Fetch(context.Background(), "p1") == nil {
		t.Fatalf("fetch failed")
	}

	if err := cache.Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cache.Get("p1") != nil {
		t.Fatalf("entries should drop on clear")
	}
	if store.current != "" {
		t.Fatalf("current pointer should reset on clear, got %q", store.current)
	}
}
