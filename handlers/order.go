package handlers

import (
	"errors"
	"net/http"

	orderRepo "hotelbook/database/repository/order"
	"hotelbook/models"
	"hotelbook/services/order"
	"hotelbook/services/recommend"
	"hotelbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Service order.OrderService
}

func NewOrderHandler(svc order.OrderService) *OrderHandler {
	return &OrderHandler{Service: svc}
}

// PlaceOrderHandler handles POST /api/orders. The Idempotency-Key header
// overrides the body field.
func (h *OrderHandler) PlaceOrderHandler(c *gin.Context) {
	logger := utils.ContextLogger(c)

	var input models.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		input.IdempotencyKey = key
	}

	placed, err := h.Service.PlaceOrder(c.Request.Context(), input)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, placed)
	case errors.Is(err, order.ErrInvalidOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order", "details": err.Error()})
	case errors.Is(err, order.ErrRoomUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "room unavailable", "details": err.Error()})
	case errors.Is(err, order.ErrDuplicateOrder):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate order"})
	case errors.Is(err, order.ErrPaymentFailed):
		logger.Warn("Payment declined", zap.String("userID", input.UserID), zap.Error(err))
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment failed", "details": err.Error()})
	case errors.Is(err, recommend.ErrInventoryLookup):
		logger.Error("Order inventory lookup failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory lookup failed"})
	default:
		logger.Error("Failed to place order", zap.String("userID", input.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
	}
}

func (h *OrderHandler) GetOrderHandler(c *gin.Context) {
	id := c.Param("id")
	o, err := h.Service.GetOrder(c.Request.Context(), id)
	if errors.Is(err, orderRepo.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		utils.ContextLogger(c).Error("Failed to fetch order", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) ListUserOrdersHandler(c *gin.Context) {
	userID := c.Param("userID")
	orders, err := h.Service.ListOrders(c.Request.Context(), userID)
	if err != nil {
		utils.ContextLogger(c).Error("Failed to list orders", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// RefundOrderHandler handles POST /api/users/:userID/orders/:id/refund.
func (h *OrderHandler) RefundOrderHandler(c *gin.Context) {
	logger := utils.ContextLogger(c)
	userID, id := c.Param("userID"), c.Param("id")

	refunded, err := h.Service.RefundOrder(c.Request.Context(), id, userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, refunded)
	case errors.Is(err, orderRepo.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, order.ErrNotRefundable):
		c.JSON(http.StatusConflict, gin.H{"error": "order cannot be refunded", "details": err.Error()})
	case errors.Is(err, order.ErrRefundFailed):
		logger.Error("Refund rejected by provider", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "refund failed"})
	default:
		logger.Error("Failed to refund order", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to refund order"})
	}
}

// DeleteOrderHandler handles DELETE /api/users/:userID/orders/:id.
func (h *OrderHandler) DeleteOrderHandler(c *gin.Context) {
	userID, id := c.Param("userID"), c.Param("id")

	err := h.Service.DeleteOrder(c.Request.Context(), id, userID)
	if errors.Is(err, orderRepo.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		utils.ContextLogger(c).Error("Failed to delete order", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
