package cache

import (
	"context"
	"sync"
	"time"

	"foodcart-matching-service/internal/domain"
)

// In-memory PlaceStore for tests and local experiments.
type MemoryPlaceStore struct {
	mu     sync.Mutex
	places map[string]*domain.Place
}

func NewMemoryPlaceStore() *MemoryPlaceStore {
	return &MemoryPlaceStore{places: make(map[string]*domain.Place)}
}

func (m *MemoryPlaceStore) Get(ctx context.Context, address string) (*domain.Place, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.places[address]
	if !ok {
		return nil, nil
	}

	cp := *p
	return &cp, nil
}

func (m *MemoryPlaceStore) GetOrCreate(ctx context.Context, address string) (*domain.Place, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.places[address]; ok {
		cp := *p
		return &cp, false, nil
	}

	p := &domain.Place{Address: address, RegisteredAt: time.Now()}
	m.places[address] = p

	cp := *p
	return &cp, true, nil
}

func (m *MemoryPlaceStore) SetCoordinates(ctx context.Context, address string, coords domain.Coordinates) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.places[address]
	if !ok {
		p = &domain.Place{Address: address, RegisteredAt: time.Now()}
		m.places[address] = p
	}
	p.Coords = &coords
	return nil
}
