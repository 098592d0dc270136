package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	hotelRepo "hotelbook/database/repository/hotel"
	orderRepo "hotelbook/database/repository/order"
	"hotelbook/models"
	"hotelbook/services/order"
	"hotelbook/services/recommend"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(hb *HandlerBundle) *gin.Engine {
	r := gin.New()
	r.GET("/api/hotels/search", hb.SearchHotelsHandler)
	r.GET("/api/hotels/recommended", hb.RecommendedHotelsHandler)
	r.GET("/api/hotels/:id", hb.GetHotelHandler)
	r.GET("/api/hotels/:id/rooms", hb.ListRoomsHandler)
	r.POST("/api/hotels/:id/recommendation", hb.RecommendRoomsHandler)
	r.POST("/api/orders", hb.PlaceOrderHandler)
	r.GET("/api/orders/:id", hb.GetOrderHandler)
	r.GET("/api/users/:userID/orders", hb.ListUserOrdersHandler)
	r.POST("/api/users/:userID/orders/:id/refund", hb.RefundOrderHandler)
	r.DELETE("/api/users/:userID/orders/:id", hb.DeleteOrderHandler)
	return r
}

func serve(r *gin.Engine, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func recommendRouter(svc *MockRecommendationService) *gin.Engine {
	h := NewRecommendHandler(svc)
	return newRouter(&HandlerBundle{RecommendRoomsHandler: h.RecommendRoomsHandler})
}

var stayBody = gin.H{"rooms": 2, "adults": 3, "checkIn": "2026-03-01", "checkOut": "2026-03-03"}

func TestRecommendRoomsHandler_Found(t *testing.T) {
	svc := new(MockRecommendationService)
	result := &models.RecommendationResult{
		Rooms: []models.RoomAllocation{{
			Room:  models.AvailableRoom{RoomType: models.RoomType{ID: 7, Name: "双床房", Price: 100, MaxGuests: 2}, AvailableCount: 4},
			Count: 2,
		}},
		TotalPrice: 400,
	}
	svc.On("Recommend", mock.Anything, mock.MatchedBy(func(req models.RecommendationRequest) bool {
		return req.HotelID == 12 && req.Rooms == 2 && req.TotalGuests() == 3 &&
			req.CheckIn.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(result, nil)

	w := serve(recommendRouter(svc), http.MethodPost, "/api/hotels/12/recommendation", stayBody, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["found"])
	assert.EqualValues(t, 400, body["result"].(map[string]any)["total_price"])
	svc.AssertExpectations(t)
}

func TestRecommendRoomsHandler_NotFound(t *testing.T) {
	svc := new(MockRecommendationService)
	svc.On("Recommend", mock.Anything, mock.Anything).Return(nil, nil)

	w := serve(recommendRouter(svc), http.MethodPost, "/api/hotels/12/recommendation", stayBody, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["found"])
	assert.Equal(t, noRecommendationMessage, body["message"])
}

func TestRecommendRoomsHandler_Errors(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		body   any
		err    error
		status int
	}{
		{"bad hotel id", "/api/hotels/abc/recommendation", stayBody, nil, http.StatusBadRequest},
		{"missing fields", "/api/hotels/1/recommendation", gin.H{"rooms": 1}, nil, http.StatusBadRequest},
		{"bad date", "/api/hotels/1/recommendation", gin.H{"rooms": 1, "adults": 1, "checkIn": "03/01", "checkOut": "2026-03-02"}, nil, http.StatusBadRequest},
		{"invalid request", "/api/hotels/1/recommendation", stayBody, fmt.Errorf("%w: nights", recommend.ErrInvalidRequest), http.StatusBadRequest},
		{"inventory down", "/api/hotels/1/recommendation", stayBody, fmt.Errorf("%w: timeout", recommend.ErrInventoryLookup), http.StatusBadGateway},
		{"unexpected", "/api/hotels/1/recommendation", stayBody, errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockRecommendationService)
			svc.On("Recommend", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := serve(recommendRouter(svc), http.MethodPost, tc.path, tc.body, nil)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestSearchHotelsHandler(t *testing.T) {
	svc := new(MockHotelService)
	price := 199.0
	svc.On("SearchHotels", mock.Anything, models.HotelSearchParams{
		City: "上海", Keyword: "外滩", Sort: models.SortPriceAsc, Page: 2, PageSize: 5,
	}).Return([]models.HotelSearchItem{{Hotel: models.Hotel{ID: 1, NameZh: "外滩酒店"}, MinPrice: &price}}, nil)

	h := NewHotelHandler(svc)
	r := newRouter(&HandlerBundle{SearchHotelsHandler: h.SearchHotelsHandler})
	w := serve(r, http.MethodGet, "/api/hotels/search?city=%E4%B8%8A%E6%B5%B7&keyword=%E5%A4%96%E6%BB%A9&sort=price_asc&page=2&pageSize=5", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["items"].([]any)
	require.Len(t, items, 1)
	assert.EqualValues(t, 199, items[0].(map[string]any)["min_price"])
	svc.AssertExpectations(t)
}

func TestRecommendedHotelsHandler_ParsesExclude(t *testing.T) {
	svc := new(MockHotelService)
	svc.On("GetRecommendedHotels", mock.Anything, models.RecommendedHotelsParams{
		City: "杭州", ExcludeIDs: []int64{3, 9}, Limit: 4,
	}).Return(&models.RecommendedHotelsResult{Strategy: models.StrategySameCityScore}, nil)

	h := NewHotelHandler(svc)
	r := newRouter(&HandlerBundle{RecommendedHotelsHandler: h.RecommendedHotelsHandler})
	w := serve(r, http.MethodGet, "/api/hotels/recommended?city=%E6%9D%AD%E5%B7%9E&exclude=3,%20x,9&limit=4", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(models.StrategySameCityScore), decode(t, w)["strategy"])
	svc.AssertExpectations(t)
}

func TestGetHotelHandler(t *testing.T) {
	svc := new(MockHotelService)
	svc.On("GetHotel", mock.Anything, int64(5)).Return(&models.Hotel{ID: 5, NameZh: "西湖宾馆"}, nil)
	svc.On("GetHotel", mock.Anything, int64(6)).Return(nil, hotelRepo.ErrHotelNotFound)

	h := NewHotelHandler(svc)
	r := newRouter(&HandlerBundle{GetHotelHandler: h.GetHotelHandler})

	w := serve(r, http.MethodGet, "/api/hotels/5", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "西湖宾馆", decode(t, w)["name_zh"])

	w = serve(r, http.MethodGet, "/api/hotels/6", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, http.MethodGet, "/api/hotels/0", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRoomsHandler(t *testing.T) {
	svc := new(MockHotelService)
	svc.On("ListRooms", mock.Anything, int64(5), mock.Anything, mock.Anything).
		Return([]models.AvailableRoom{{RoomType: models.RoomType{ID: 1, Name: "大床房"}, AvailableCount: 0}}, nil).Once()
	svc.On("ListRooms", mock.Anything, int64(5), mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: down", recommend.ErrInventoryLookup)).Once()

	h := NewHotelHandler(svc)
	r := newRouter(&HandlerBundle{ListRoomsHandler: h.ListRoomsHandler})

	w := serve(r, http.MethodGet, "/api/hotels/5/rooms?checkIn=2026-03-01&checkOut=2026-03-02", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["rooms"], 1)

	w = serve(r, http.MethodGet, "/api/hotels/5/rooms?checkIn=2026-03-01&checkOut=2026-03-02", nil, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = serve(r, http.MethodGet, "/api/hotels/5/rooms?checkIn=2026-03-02&checkOut=2026-03-01", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "ListRooms", 2)
}

var orderBody = gin.H{
	"user_id":     "u-1",
	"hotel_id":    3,
	"check_in":    "2026-03-01",
	"check_out":   "2026-03-03",
	"adults":      2,
	"guest_name":  "张三",
	"guest_phone": "13800138000",
	"rooms":       []gin.H{{"room_type_id": 11, "count": 1}},
}

func TestPlaceOrderHandler_HeaderKeyWins(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(in models.PlaceOrderInput) bool {
		return in.IdempotencyKey == "from-header" && in.UserID == "u-1" && len(in.Rooms) == 1
	})).Return(&models.Order{ID: "o-1", Status: models.OrderStatusPaid}, nil)

	h := NewOrderHandler(svc)
	r := newRouter(&HandlerBundle{PlaceOrderHandler: h.PlaceOrderHandler})

	body := gin.H{"idempotency_key": "from-body"}
	for k, v := range orderBody {
		body[k] = v
	}
	w := serve(r, http.MethodPost, "/api/orders", body, map[string]string{"Idempotency-Key": "from-header"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "o-1", decode(t, w)["id"])
	svc.AssertExpectations(t)
}

func TestPlaceOrderHandler_ErrorStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: phone", order.ErrInvalidOrder), http.StatusBadRequest},
		{fmt.Errorf("%w: sold out", order.ErrRoomUnavailable), http.StatusConflict},
		{order.ErrDuplicateOrder, http.StatusConflict},
		{fmt.Errorf("%w: declined", order.ErrPaymentFailed), http.StatusPaymentRequired},
		{fmt.Errorf("%w: down", recommend.ErrInventoryLookup), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			svc := new(MockOrderService)
			svc.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, tc.err)
			h := NewOrderHandler(svc)
			r := newRouter(&HandlerBundle{PlaceOrderHandler: h.PlaceOrderHandler})

			w := serve(r, http.MethodPost, "/api/orders", orderBody, nil)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestPlaceOrderHandler_BindingFailure(t *testing.T) {
	svc := new(MockOrderService)
	h := NewOrderHandler(svc)
	r := newRouter(&HandlerBundle{PlaceOrderHandler: h.PlaceOrderHandler})

	w := serve(r, http.MethodPost, "/api/orders", gin.H{"user_id": "u-1"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
}

func TestOrderLookupHandlers(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("GetOrder", mock.Anything, "o-1").Return(&models.Order{ID: "o-1"}, nil)
	svc.On("GetOrder", mock.Anything, "missing").Return(nil, orderRepo.ErrOrderNotFound)
	svc.On("ListOrders", mock.Anything, "u-1").Return([]models.Order{{ID: "o-1"}, {ID: "o-2"}}, nil)

	h := NewOrderHandler(svc)
	r := newRouter(&HandlerBundle{GetOrderHandler: h.GetOrderHandler, ListUserOrdersHandler: h.ListUserOrdersHandler})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/orders/o-1", nil, nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/orders/missing", nil, nil).Code)

	w := serve(r, http.MethodGet, "/api/users/u-1/orders", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["orders"], 2)
}

func TestRefundOrderHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"refunded", nil, http.StatusOK},
		{"missing", orderRepo.ErrOrderNotFound, http.StatusNotFound},
		{"already refunded", fmt.Errorf("%w: order is refunded", order.ErrNotRefundable), http.StatusConflict},
		{"provider down", fmt.Errorf("%w: timeout", order.ErrRefundFailed), http.StatusBadGateway},
		{"store down", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockOrderService)
			var refunded *models.Order
			if tc.err == nil {
				refunded = &models.Order{ID: "o-1", Status: models.OrderStatusRefunded}
			}
			svc.On("RefundOrder", mock.Anything, "o-1", "u-1").Return(refunded, tc.err)
			h := NewOrderHandler(svc)
			r := newRouter(&HandlerBundle{RefundOrderHandler: h.RefundOrderHandler})

			w := serve(r, http.MethodPost, "/api/users/u-1/orders/o-1/refund", nil, nil)
			assert.Equal(t, tc.status, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestDeleteOrderHandler(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("DeleteOrder", mock.Anything, "o-1", "u-1").Return(nil)
	svc.On("DeleteOrder", mock.Anything, "o-2", "u-1").Return(orderRepo.ErrOrderNotFound)
	svc.On("DeleteOrder", mock.Anything, "o-3", "u-1").Return(errors.New("boom"))

	h := NewOrderHandler(svc)
	r := newRouter(&HandlerBundle{DeleteOrderHandler: h.DeleteOrderHandler})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodDelete, "/api/users/u-1/orders/o-1", nil, nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodDelete, "/api/users/u-1/orders/o-2", nil, nil).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(r, http.MethodDelete, "/api/users/u-1/orders/o-3", nil, nil).Code)
}
