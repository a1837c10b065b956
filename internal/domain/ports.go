package domain

import "context"

// Cache stores JSON-encodable values by key with a TTL.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// HotelSource yields the raw rows of a dataset held outside the process.
type HotelSource interface {
	ListHotels(ctx context.Context) ([]RawHotel, error)
}
