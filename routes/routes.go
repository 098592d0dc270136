package routes

import (
	"net/http"
	"time"

	"hotelbook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHotelRoutes registers hotel listing, detail and recommendation endpoints.
func RegisterHotelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/hotels")
	{
		api.GET("/search", hb.SearchHotelsHandler)
		api.GET("/recommended", hb.RecommendedHotelsHandler)
		api.GET("/:id", hb.GetHotelHandler)
		api.GET("/:id/rooms", hb.ListRoomsHandler)
		api.POST("/:id/recommendation", hb.RecommendRoomsHandler)
	}
}

// RegisterOrderRoutes registers checkout, order history, refund and delete endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	orders := r.Group("/api/orders")
	{
		orders.POST("", hb.PlaceOrderHandler)
		orders.GET("/:id", hb.GetOrderHandler)
	}
	userOrders := r.Group("/api/users/:userID/orders")
	{
		userOrders.GET("", hb.ListUserOrdersHandler)
		userOrders.POST("/:id/refund", hb.RefundOrderHandler)
		userOrders.DELETE("/:id", hb.DeleteOrderHandler)
	}
}

// RegisterHealthRoute registers health-check and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	health := hb.HealthHandler
	if health == nil {
		health = func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm hotelbook"})
		}
	}
	r.GET("/health", health)
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterHotelRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
}
