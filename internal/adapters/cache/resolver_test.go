package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"foodcart-matching-service/internal/domain"
)

// countingGeocoder records how many lookups hit the external provider.
type countingGeocoder struct {
	calls  atomic.Int64
	coords map[string]domain.Coordinates
	block  chan struct{}
}

func (g *countingGeocoder) Lookup(ctx context.Context, address string) (domain.Coordinates, bool) {
	g.calls.Add(1)
	if g.block != nil {
		<-g.block
	}
	c, ok := g.coords[address]
	return c, ok
}

func TestResolverCachesSuccessfulLookup(t *testing.T) {
	geocoder := &countingGeocoder{coords: map[string]domain.Coordinates{
		"Moscow": {Lon: 37.61, Lat: 55.75},
	}}
	resolver := NewResolver(NewMemoryPlaceStore(), geocoder)

	first, ok, err := resolver.Resolve(context.Background(), "Moscow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected resolved coordinates")
	}

	second, ok, err := resolver.Resolve(context.Background(), "Moscow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected resolved coordinates on second call")
	}

	if first != second {
		t.Fatalf("coordinates changed between calls: %+v vs %+v", first, second)
	}
	if n := geocoder.calls.Load(); n != 1 {
		t.Fatalf("external lookups = %d, want 1", n)
	}
}

func TestResolverPoisonsFailedLookup(t *testing.T) {
	geocoder := &countingGeocoder{coords: map[string]domain.Coordinates{}}
	store := NewMemoryPlaceStore()
	resolver := NewResolver(store, geocoder)

	if _, ok, err := resolver.Resolve(context.Background(), "Nowhere"); err != nil || ok {
		t.Fatalf("Resolve = (ok=%v, err=%v), want unresolved", ok, err)
	}

	// The failed attempt must leave a row so the address is never retried.
	place, err := store.Get(context.Background(), "Nowhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place == nil {
		t.Fatal("expected a place row after failed lookup")
	}
	if place.Coords != nil {
		t.Fatalf("expected nil coordinates, got %+v", place.Coords)
	}

	if _, ok, err := resolver.Resolve(context.Background(), "Nowhere"); err != nil || ok {
		t.Fatalf("second Resolve = (ok=%v, err=%v), want unresolved", ok, err)
	}
	if n := geocoder.calls.Load(); n != 1 {
		t.Fatalf("external lookups = %d, want 1 (no retry)", n)
	}
}

func TestResolverDistinctAddressesAreDistinctKeys(t *testing.T) {
	geocoder := &countingGeocoder{coords: map[string]domain.Coordinates{
		"Moscow":  {Lon: 37.61, Lat: 55.75},
		"moscow ": {Lon: 37.61, Lat: 55.75},
	}}
	resolver := NewResolver(NewMemoryPlaceStore(), geocoder)

	// Exact string keys: differently formatted spellings each cost a lookup.
	resolver.Resolve(context.Background(), "Moscow")
	resolver.Resolve(context.Background(), "moscow ")

	if n := geocoder.calls.Load(); n != 2 {
		t.Fatalf("external lookups = %d, want 2", n)
	}
}

func TestResolverCollapsesConcurrentLookups(t *testing.T) {
	geocoder := &countingGeocoder{
		coords: map[string]domain.Coordinates{"Moscow": {Lon: 37.61, Lat: 55.75}},
		block:  make(chan struct{}),
	}
	resolver := NewResolver(NewMemoryPlaceStore(), geocoder)

	const workers = 8
	var wg sync.WaitGroup
	var resolved atomic.Int64

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, ok, err := resolver.Resolve(context.Background(), "Moscow"); err == nil && ok {
				resolved.Add(1)
			}
		}()
	}

	// Release the provider once all workers have had a chance to pile up.
	close(geocoder.block)
	wg.Wait()

	if n := resolved.Load(); n != workers {
		t.Fatalf("resolved workers = %d, want %d", n, workers)
	}
	if n := geocoder.calls.Load(); n != 1 {
		t.Fatalf("external lookups = %d, want 1 (deduplicated)", n)
	}
}
