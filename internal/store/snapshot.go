// Package store persists engine snapshots in Redis.  The layout is a
// small key-value blob: key "seats" holds the serialized seat sequence
// and key "bookings" the ledger.  Writes overwrite the whole value;
// there are no partial updates.  When Redis is not available the
// service runs without persistence, so failures here are reported to
// the caller and logged, never fatal.
package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/train-seat-reservation/internal/model"
)

const (
	seatsKey    = "seats"
	bookingsKey = "bookings"
)

// RedisStore implements booking.Store on top of a Redis client.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps a connected Redis client.  The client must be
// non-nil; callers that failed to connect should skip constructing a
// store altogether.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// SaveSeats replaces the persisted seat sequence.
func (s *RedisStore) SaveSeats(ctx context.Context, seats []model.Seat) error {
	return s.set(ctx, seatsKey, seats)
}

// SaveBookings replaces the persisted ledger.
func (s *RedisStore) SaveBookings(ctx context.Context, bookings []model.Booking) error {
	return s.set(ctx, bookingsKey, bookings)
}

// LoadSeats returns the persisted seat sequence, or (nil, nil) when no
// snapshot exists yet.
func (s *RedisStore) LoadSeats(ctx context.Context) ([]model.Seat, error) {
	var seats []model.Seat
	if err := s.get(ctx, seatsKey, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

// LoadBookings returns the persisted ledger, or (nil, nil) when no
// snapshot exists yet.
func (s *RedisStore) LoadBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.get(ctx, bookingsKey, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *RedisStore) set(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, body, 0).Err()
}

func (s *RedisStore) get(ctx context.Context, key string, v any) error {
	body, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}
