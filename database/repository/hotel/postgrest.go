// File: database/repository/hotel/postgrest.go
package hotelRepo

import (
	"context"

	"hotelbook/database/postgrest"
	"hotelbook/models"
)

type restHotelRepo struct {
	client *postgrest.Client
}

func NewPostgrestHotelRepo(client *postgrest.Client) HotelRepository {
	return &restHotelRepo{client: client}
}

// searchParams mirrors the search_hotels_with_min_price function signature.
type searchParams struct {
	City     *string `json:"city"`
	Keyword  *string `json:"keyword"`
	Sort     string  `json:"sort"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *restHotelRepo) Search(ctx context.Context, q SearchQuery) ([]models.HotelSearchItem, error) {
	params := searchParams{
		City:     nullable(q.City),
		Keyword:  nullable(q.Keyword),
		Sort:     string(q.Sort),
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	var items []models.HotelSearchItem
	if err := r.client.RPC(ctx, "search_hotels_with_min_price", params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *restHotelRepo) GetByID(ctx context.Context, id int64) (*models.Hotel, error) {
	var hotels []models.Hotel
	err := r.client.Select(ctx, "hotels", "*", postgrest.Filters{postgrest.Eq("id", id), postgrest.Limit(1)}, &hotels)
	if err != nil {
		return nil, err
	}
	if len(hotels) == 0 {
		return nil, ErrHotelNotFound
	}
	return &hotels[0], nil
}
