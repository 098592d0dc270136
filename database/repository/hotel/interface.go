// File: database/repository/hotel/interface.go
package hotelRepo

import (
	"context"
	"errors"

	"hotelbook/models"
)

var ErrHotelNotFound = errors.New("hotel not found")

// SearchQuery is a normalised listing request. Empty City or Keyword means no filter.
type SearchQuery struct {
	City     string
	Keyword  string
	Sort     models.HotelSort
	Page     int
	PageSize int
}

type HotelRepository interface {
	// Search returns active hotels with their lowest bookable nightly price.
	Search(ctx context.Context, q SearchQuery) ([]models.HotelSearchItem, error)
	GetByID(ctx context.Context, id int64) (*models.Hotel, error)
}
