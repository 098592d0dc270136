// File: database/repository/inventory/interface.go
package inventoryRepo

import (
	"context"
	"errors"

	"hotelbook/models"
)

// ErrInsufficientStock means a reservation asked for more rooms than are free,
// or a release would drop a booked count below zero.
var ErrInsufficientStock = errors.New("insufficient room stock")

// AvailabilityFilter selects daily availability rows for [From, To).
// HotelID and RoomTypeIDs may be combined; at least one must be set.
type AvailabilityFilter struct {
	HotelID     int64
	RoomTypeIDs []int64
	From        string // inclusive, "YYYY-MM-DD"
	To          string // exclusive, "YYYY-MM-DD"
}

type InventoryRepository interface {
	// GetRoomTypes lists a hotel's room types. bookableOnly drops types with max_guests <= 0.
	GetRoomTypes(ctx context.Context, hotelID int64, bookableOnly bool) ([]models.RoomType, error)
	GetAvailability(ctx context.Context, filter AvailabilityFilter) ([]models.DailyAvailability, error)
	// IncrementBooked adds delta to the booked count of one room type on one date.
	IncrementBooked(ctx context.Context, roomTypeID int64, date string, delta int) error
	// AdjustBooked applies every line or none. A positive delta needs that many
	// free rooms and a negative one may not leave the count below zero; a line
	// that fails either check aborts the batch with ErrInsufficientStock.
	AdjustBooked(ctx context.Context, lines []models.InventoryIncrement) error
}
