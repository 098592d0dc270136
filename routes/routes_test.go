package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotelbook/handlers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func named(name string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, name) }
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		SearchHotelsHandler:      named("search"),
		RecommendedHotelsHandler: named("recommended"),
		GetHotelHandler:          named("hotel"),
		ListRoomsHandler:         named("rooms"),
		RecommendRoomsHandler:    named("recommendation"),
		PlaceOrderHandler:        named("place"),
		GetOrderHandler:          named("order"),
		ListUserOrdersHandler:    named("user-orders"),
		RefundOrderHandler:       named("refund"),
		DeleteOrderHandler:       named("delete"),
	})

	cases := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/api/hotels/search", "search"},
		{http.MethodGet, "/api/hotels/recommended", "recommended"},
		{http.MethodGet, "/api/hotels/7", "hotel"},
		{http.MethodGet, "/api/hotels/7/rooms", "rooms"},
		{http.MethodPost, "/api/hotels/7/recommendation", "recommendation"},
		{http.MethodPost, "/api/orders", "place"},
		{http.MethodGet, "/api/orders/o-1", "order"},
		{http.MethodGet, "/api/users/u-1/orders", "user-orders"},
		{http.MethodPost, "/api/users/u-1/orders/o-1/refund", "refund"},
		{http.MethodDelete, "/api/users/u-1/orders/o-1", "delete"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusOK, w.Code, tc.path)
		assert.Equal(t, tc.want, w.Body.String(), tc.path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code, "metrics is only mounted when a handler is given")
}
