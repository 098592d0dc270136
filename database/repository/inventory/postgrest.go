// File: database/repository/inventory/postgrest.go
package inventoryRepo

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"hotelbook/database/postgrest"
	"hotelbook/models"
)

type restInventoryRepo struct {
	client *postgrest.Client
}

// NewPostgrestInventoryRepo reads inventory from the hosted database's REST endpoint.
func NewPostgrestInventoryRepo(client *postgrest.Client) InventoryRepository {
	return &restInventoryRepo{client: client}
}

func (r *restInventoryRepo) GetRoomTypes(ctx context.Context, hotelID int64, bookableOnly bool) ([]models.RoomType, error) {
	filters := postgrest.Filters{postgrest.Eq("hotel_id", hotelID)}
	if bookableOnly {
		filters = append(filters, postgrest.Gt("max_guests", 0))
	}
	filters = append(filters, postgrest.Order("id.asc"))

	var roomTypes []models.RoomType
	if err := r.client.Select(ctx, "room_types", "*", filters, &roomTypes); err != nil {
		return nil, err
	}
	return roomTypes, nil
}

func (r *restInventoryRepo) GetAvailability(ctx context.Context, filter AvailabilityFilter) ([]models.DailyAvailability, error) {
	if filter.HotelID == 0 && len(filter.RoomTypeIDs) == 0 {
		return nil, fmt.Errorf("availability filter needs a hotel or room types")
	}

	columns := "room_type_id,date,total_count,booked_count"
	var filters postgrest.Filters
	if filter.HotelID != 0 {
		// Inner embed restricts rows to the hotel without a second round trip.
		columns += ",room_types!inner(hotel_id)"
		filters = append(filters, postgrest.Eq("room_types.hotel_id", filter.HotelID))
	}
	if len(filter.RoomTypeIDs) > 0 {
		filters = append(filters, postgrest.In("room_type_id", filter.RoomTypeIDs))
	}
	if filter.From != "" {
		filters = append(filters, postgrest.Gte("date", filter.From))
	}
	if filter.To != "" {
		filters = append(filters, postgrest.Lt("date", filter.To))
	}

	var rows []models.DailyAvailability
	if err := r.client.Select(ctx, "room_availability", columns, filters, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *restInventoryRepo) IncrementBooked(ctx context.Context, roomTypeID int64, date string, delta int) error {
	return r.client.RPC(ctx, "increment_booked_count", map[string]any{
		"p_room_type_id": roomTypeID,
		"p_date":         date,
		"p_increment":    delta,
	}, nil)
}

// AdjustBooked calls adjust_booked_counts (database/sql/adjust_booked_counts.sql),
// which runs the batch in one transaction and raises SQLSTATE PT409 when a
// line fails its stock guard.
func (r *restInventoryRepo) AdjustBooked(ctx context.Context, lines []models.InventoryIncrement) error {
	err := r.client.RPC(ctx, "adjust_booked_counts", map[string]any{"p_lines": lines}, nil)
	var pgErr *postgrest.Error
	if errors.As(err, &pgErr) && pgErr.Status == http.StatusConflict {
		return fmt.Errorf("%s: %w", pgErr.Message, ErrInsufficientStock)
	}
	return err
}
