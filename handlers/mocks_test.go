package handlers

import (
	"context"
	"time"

	"hotelbook/models"

	"github.com/stretchr/testify/mock"
)

type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*models.RecommendationResult)
	return res, args.Error(1)
}

type MockHotelService struct {
	mock.Mock
}

func (m *MockHotelService) SearchHotels(ctx context.Context, params models.HotelSearchParams) ([]models.HotelSearchItem, error) {
	args := m.Called(ctx, params)
	items, _ := args.Get(0).([]models.HotelSearchItem)
	return items, args.Error(1)
}

func (m *MockHotelService) GetRecommendedHotels(ctx context.Context, params models.RecommendedHotelsParams) (*models.RecommendedHotelsResult, error) {
	args := m.Called(ctx, params)
	res, _ := args.Get(0).(*models.RecommendedHotelsResult)
	return res, args.Error(1)
}

func (m *MockHotelService) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {
	args := m.Called(ctx, id)
	h, _ := args.Get(0).(*models.Hotel)
	return h, args.Error(1)
}

func (m *MockHotelService) ListRooms(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]models.AvailableRoom, error) {
	args := m.Called(ctx, hotelID, checkIn, checkOut)
	rooms, _ := args.Get(0).([]models.AvailableRoom)
	return rooms, args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, input models.PlaceOrderInput) (*models.Order, error) {
	args := m.Called(ctx, input)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *MockOrderService) RefundOrder(ctx context.Context, id, userID string) (*models.Order, error) {
	args := m.Called(ctx, id, userID)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}
