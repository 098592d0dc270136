// File: hotelbook/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Hotel endpoints
	SearchHotelsHandler      gin.HandlerFunc
	RecommendedHotelsHandler gin.HandlerFunc
	GetHotelHandler          gin.HandlerFunc
	ListRoomsHandler         gin.HandlerFunc

	// Room recommendation
	RecommendRoomsHandler gin.HandlerFunc

	// Order endpoints
	PlaceOrderHandler     gin.HandlerFunc
	GetOrderHandler       gin.HandlerFunc
	ListUserOrdersHandler gin.HandlerFunc
	RefundOrderHandler    gin.HandlerFunc
	DeleteOrderHandler    gin.HandlerFunc

	// Ops
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}
