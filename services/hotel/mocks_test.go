package hotel

import (
	"context"
	"time"

	hotelRepo "hotelbook/database/repository/hotel"
	inventoryRepo "hotelbook/database/repository/inventory"
	"hotelbook/models"

	"github.com/stretchr/testify/mock"
)

type MockHotelRepo struct {
	mock.Mock
}

func (m *MockHotelRepo) Search(ctx context.Context, q hotelRepo.SearchQuery) ([]models.HotelSearchItem, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]models.HotelSearchItem)
	return items, args.Error(1)
}

func (m *MockHotelRepo) GetByID(ctx context.Context, id int64) (*models.Hotel, error) {
	args := m.Called(ctx, id)
	hotel, _ := args.Get(0).(*models.Hotel)
	return hotel, args.Error(1)
}

type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) GetRoomTypes(ctx context.Context, hotelID int64, bookableOnly bool) ([]models.RoomType, error) {
	args := m.Called(ctx, hotelID, bookableOnly)
	rts, _ := args.Get(0).([]models.RoomType)
	return rts, args.Error(1)
}

func (m *MockInventoryRepo) GetAvailability(ctx context.Context, filter inventoryRepo.AvailabilityFilter) ([]models.DailyAvailability, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]models.DailyAvailability)
	return rows, args.Error(1)
}

func (m *MockInventoryRepo) IncrementBooked(ctx context.Context, roomTypeID int64, date string, delta int) error {
	return m.Called(ctx, roomTypeID, date, delta).Error(0)
}

func (m *MockInventoryRepo) AdjustBooked(ctx context.Context, lines []models.InventoryIncrement) error {
	return m.Called(ctx, lines).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}
