package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"foodcart-matching-service/internal/domain"
	"foodcart-matching-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const placeKeyPrefix = "place:"

type cachedPlace struct {
	Lon          *float64  `json:"lon"`
	Lat          *float64  `json:"lat"`
	RegisteredAt time.Time `json:"registered_at"`
}

// RedisPlaceStore is a read-through layer in front of a persistent
// PlaceStore. Reads are served from Redis when possible; writes always go
// to the inner store first so Redis never holds state the store lacks.
// Redis failures degrade to plain inner-store access.
type RedisPlaceStore struct {
	client *redis.Client
	inner  ports.PlaceStore
	ttl    time.Duration
}

func NewRedisPlaceStore(client *redis.Client, inner ports.PlaceStore, ttl time.Duration) *RedisPlaceStore {
	return &RedisPlaceStore{client: client, inner: inner, ttl: ttl}
}

func (r *RedisPlaceStore) Get(ctx context.Context, address string) (*domain.Place, error) {
	if p, ok := r.cached(ctx, address); ok {
		return p, nil
	}

	place, err := r.inner.Get(ctx, address)
	if err != nil {
		return nil, err
	}

	if place != nil {
		r.cache(ctx, place)
	}
	return place, nil
}

func (r *RedisPlaceStore) GetOrCreate(ctx context.Context, address string) (*domain.Place, bool, error) {
	if p, ok := r.cached(ctx, address); ok {
		return p, false, nil
	}

	place, created, err := r.inner.GetOrCreate(ctx, address)
	if err != nil {
		return nil, false, err
	}

	// A freshly created row is mid-resolution; cache only settled rows.
	if !created {
		r.cache(ctx, place)
	}
	return place, created, nil
}

func (r *RedisPlaceStore) SetCoordinates(ctx context.Context, address string, coords domain.Coordinates) error {
	if err := r.inner.SetCoordinates(ctx, address, coords); err != nil {
		return err
	}

	place, err := r.inner.Get(ctx, address)
	if err == nil && place != nil {
		r.cache(ctx, place)
	}
	return nil
}

func (r *RedisPlaceStore) cached(ctx context.Context, address string) (*domain.Place, bool) {
	raw, err := r.client.Get(ctx, placeKeyPrefix+address).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("place cache read failed: address=%q err=%v", address, err)
		}
		return nil, false
	}

	var c cachedPlace
	if err := json.Unmarshal(raw, &c); err != nil {
		log.Printf("place cache decode failed: address=%q err=%v", address, err)
		return nil, false
	}

	place := &domain.Place{Address: address, RegisteredAt: c.RegisteredAt}
	if c.Lon != nil && c.Lat != nil {
		place.Coords = &domain.Coordinates{Lon: *c.Lon, Lat: *c.Lat}
	}
	return place, true
}

func (r *RedisPlaceStore) cache(ctx context.Context, place *domain.Place) {
	c := cachedPlace{RegisteredAt: place.RegisteredAt}
	if place.Coords != nil {
		c.Lon = &place.Coords.Lon
		c.Lat = &place.Coords.Lat
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return
	}

	if err := r.client.Set(ctx, placeKeyPrefix+place.Address, raw, r.ttl).Err(); err != nil {
		log.Printf("place cache write failed: address=%q err=%v", place.Address, err)
	}
}
