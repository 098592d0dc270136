package hotel

import (
	"context"
	"time"

	"hotelbook/models"
)

type HotelService interface {
	SearchHotels(ctx context.Context, params models.HotelSearchParams) ([]models.HotelSearchItem, error)
	GetRecommendedHotels(ctx context.Context, params models.RecommendedHotelsParams) (*models.RecommendedHotelsResult, error)
	GetHotel(ctx context.Context, id int64) (*models.Hotel, error)
	// ListRooms returns every room type of the hotel with the units free for
	// the whole stay, sold-out types included.
	ListRooms(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]models.AvailableRoom, error)
}

// Cache is the subset of utils.RedisCache the listing cache needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
