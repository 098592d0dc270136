package recommend

import (
	"context"

	inventoryRepo "hotelbook/database/repository/inventory"
	"hotelbook/models"

	"github.com/stretchr/testify/mock"
)

// MockInventoryRepo is a mock implementation of inventoryRepo.InventoryRepository
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) GetRoomTypes(ctx context.Context, hotelID int64, bookableOnly bool) ([]models.RoomType, error) {
	args := m.Called(ctx, hotelID, bookableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RoomType), args.Error(1)
}

func (m *MockInventoryRepo) GetAvailability(ctx context.Context, filter inventoryRepo.AvailabilityFilter) ([]models.DailyAvailability, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyAvailability), args.Error(1)
}

func (m *MockInventoryRepo) IncrementBooked(ctx context.Context, roomTypeID int64, date string, delta int) error {
	args := m.Called(ctx, roomTypeID, date, delta)
	return args.Error(0)
}

func (m *MockInventoryRepo) AdjustBooked(ctx context.Context, lines []models.InventoryIncrement) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

// availabilityRows gives a room type the same stock on every listed date.
func availabilityRows(roomTypeID int64, total, booked int, dates ...string) []models.DailyAvailability {
	rows := make([]models.DailyAvailability, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, models.DailyAvailability{RoomTypeID: roomTypeID, Date: d, TotalCount: total, BookedCount: booked})
	}
	return rows
}
