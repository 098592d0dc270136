package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelbook/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testCheckIn  = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	testCheckOut = testCheckIn.AddDate(0, 0, 1)
)

// setupRecommendTest wires a service over a mocked repository holding one
// night of stock per room type.
func setupRecommendTest(roomTypes []models.RoomType, stock map[int64]int) (*DefaultRecommendationService, *MockInventoryRepo, *Metrics) {
	var rows []models.DailyAvailability
	for id, n := range stock {
		rows = append(rows, availabilityRows(id, n, 0, "2025-03-01")...)
	}
	repo := new(MockInventoryRepo)
	repo.On("GetRoomTypes", mock.Anything, int64(1), true).Return(roomTypes, nil)
	repo.On("GetAvailability", mock.Anything, mock.Anything).Return(rows, nil)

	metrics := NewMetrics(prometheus.NewRegistry())
	return NewRecommendationService(repo, metrics, nil), repo, metrics
}

func request(rooms, adults, children int) models.RecommendationRequest {
	return models.RecommendationRequest{
		HotelID:  1,
		Rooms:    rooms,
		Adults:   adults,
		Children: children,
		CheckIn:  testCheckIn,
		CheckOut: testCheckOut,
	}
}

func TestRecommend_Scenarios(t *testing.T) {
	ctx := context.Background()
	single := []models.RoomType{{ID: 10, HotelID: 1, Name: "大床房", Price: 200, MaxGuests: 2}}

	t.Run("exact fit with a single room type", func(t *testing.T) {
		svc, _, metrics := setupRecommendTest(single, map[int64]int{10: 5})

		res, err := svc.Recommend(ctx, request(2, 3, 0))
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.False(t, res.IsFallback)
		assert.Empty(t, res.FallbackReason)
		require.Len(t, res.Rooms, 1)
		assert.Equal(t, 2, res.Rooms[0].Count)
		assert.Equal(t, 400.0, res.TotalPrice)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.outcomes.WithLabelValues(OutcomeExact)))
	})

	t.Run("one room cannot hold three adults", func(t *testing.T) {
		svc, _, metrics := setupRecommendTest(single, map[int64]int{10: 5})

		res, err := svc.Recommend(ctx, request(1, 3, 0))
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.True(t, res.IsFallback)
		assert.Equal(t, 2, res.RoomCount())
		assert.Equal(t, 400.0, res.TotalPrice)
		assert.Equal(t, "当前库存无法凑出 1 间满足人数的组合，为您推荐 2 间：大床房 x2", res.FallbackReason)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.outcomes.WithLabelValues(OutcomeFallback)))
	})

	t.Run("cheapest two-room split across types", func(t *testing.T) {
		roomTypes := []models.RoomType{
			{ID: 1, HotelID: 1, Name: "A", Price: 100, MaxGuests: 1},
			{ID: 2, HotelID: 1, Name: "B", Price: 90, MaxGuests: 3},
		}
		svc, _, _ := setupRecommendTest(roomTypes, map[int64]int{1: 10, 2: 10})

		res, err := svc.Recommend(ctx, request(2, 3, 0))
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.False(t, res.IsFallback)
		require.Len(t, res.Rooms, 1)
		assert.Equal(t, int64(2), res.Rooms[0].Room.ID)
		assert.Equal(t, 2, res.Rooms[0].Count)
		assert.Equal(t, 180.0, res.TotalPrice)
	})

	t.Run("cheapest split when the cheap type is scarce", func(t *testing.T) {
		roomTypes := []models.RoomType{
			{ID: 1, HotelID: 1, Name: "A", Price: 100, MaxGuests: 1},
			{ID: 2, HotelID: 1, Name: "B", Price: 90, MaxGuests: 3},
		}
		svc, _, _ := setupRecommendTest(roomTypes, map[int64]int{1: 10, 2: 1})

		res, err := svc.Recommend(ctx, request(2, 3, 0))
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, 2, res.RoomCount())
		assert.Equal(t, 190.0, res.TotalPrice)
	})

	t.Run("no stock returns nil without error", func(t *testing.T) {
		svc, _, metrics := setupRecommendTest(single, map[int64]int{10: 0})

		res, err := svc.Recommend(ctx, request(1, 2, 0))
		require.NoError(t, err)
		assert.Nil(t, res)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.outcomes.WithLabelValues(OutcomeNone)))
	})

	t.Run("more rooms than stock falls back to fewer larger rooms", func(t *testing.T) {
		roomTypes := []models.RoomType{{ID: 3, HotelID: 1, Name: "家庭房", Price: 500, MaxGuests: 4}}
		svc, _, _ := setupRecommendTest(roomTypes, map[int64]int{3: 3})

		res, err := svc.Recommend(ctx, request(5, 4, 2))
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.True(t, res.IsFallback)
		assert.Equal(t, 2, res.RoomCount())
		assert.GreaterOrEqual(t, res.Capacity(), 6)
		assert.Equal(t, 1000.0, res.TotalPrice)
	})

	t.Run("party larger than total capacity", func(t *testing.T) {
		svc, _, _ := setupRecommendTest(single, map[int64]int{10: 2})

		res, err := svc.Recommend(ctx, request(2, 5, 1))
		require.NoError(t, err)
		assert.Nil(t, res)
	})
}

func TestRecommend_MultiNightPricing(t *testing.T) {
	roomTypes := []models.RoomType{{ID: 10, HotelID: 1, Name: "大床房", Price: 200, MaxGuests: 2}}
	repo := new(MockInventoryRepo)
	repo.On("GetRoomTypes", mock.Anything, int64(1), true).Return(roomTypes, nil)
	repo.On("GetAvailability", mock.Anything, mock.Anything).
		Return(availabilityRows(10, 3, 0, "2025-03-01", "2025-03-02", "2025-03-03"), nil)
	svc := NewRecommendationService(repo, nil, nil)

	req := request(1, 2, 0)
	req.CheckOut = testCheckIn.AddDate(0, 0, 3)

	res, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 600.0, res.TotalPrice)
}

func TestRecommend_InventoryError(t *testing.T) {
	repoErr := errors.New("upstream 503")
	repo := new(MockInventoryRepo)
	repo.On("GetRoomTypes", mock.Anything, int64(1), true).Return(nil, repoErr)
	repo.On("GetAvailability", mock.Anything, mock.Anything).Return([]models.DailyAvailability{}, nil).Maybe()
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewRecommendationService(repo, metrics, nil)

	res, err := svc.Recommend(context.Background(), request(1, 2, 0))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInventoryLookup)
	assert.ErrorIs(t, err, repoErr)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.outcomes.WithLabelValues(OutcomeError)))
}

func TestRecommend_InvalidRequests(t *testing.T) {
	svc := NewRecommendationService(new(MockInventoryRepo), nil, nil)
	ctx := context.Background()

	cases := map[string]models.RecommendationRequest{
		"zero rooms":        request(0, 2, 0),
		"no adults":         request(1, 0, 2),
		"negative children": request(1, 1, -1),
		"missing hotel": func() models.RecommendationRequest {
			r := request(1, 1, 0)
			r.HotelID = 0
			return r
		}(),
		"check-out before check-in": func() models.RecommendationRequest {
			r := request(1, 1, 0)
			r.CheckOut = r.CheckIn
			return r
		}(),
		"nights disagree with dates": func() models.RecommendationRequest {
			r := request(1, 1, 0)
			r.Nights = 3
			return r
		}(),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Recommend(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestRecommend_Idempotent(t *testing.T) {
	roomTypes := []models.RoomType{
		{ID: 1, HotelID: 1, Name: "A", Price: 120, MaxGuests: 2},
		{ID: 2, HotelID: 1, Name: "B", Price: 260, MaxGuests: 4},
		{ID: 3, HotelID: 1, Name: "C", Price: 80, MaxGuests: 1},
	}
	svc, _, _ := setupRecommendTest(roomTypes, map[int64]int{1: 2, 2: 1, 3: 4})
	req := request(3, 5, 1)

	first, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Recommend(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
