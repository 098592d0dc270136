package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	hotelRepo "hotelbook/database/repository/hotel"
	"hotelbook/models"
	"hotelbook/services/hotel"
	"hotelbook/services/recommend"
	"hotelbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HotelHandler struct {
	Service hotel.HotelService
}

func NewHotelHandler(svc hotel.HotelService) *HotelHandler {
	return &HotelHandler{Service: svc}
}

func hotelIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hotel id"})
		return 0, false
	}
	return id, true
}

// SearchHotelsHandler handles GET /api/hotels/search?city&keyword&sort&page&pageSize.
func (h *HotelHandler) SearchHotelsHandler(c *gin.Context) {
	logger := utils.ContextLogger(c)
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	items, err := h.Service.SearchHotels(c.Request.Context(), models.HotelSearchParams{
		City:     c.Query("city"),
		Keyword:  c.Query("keyword"),
		Sort:     models.HotelSort(c.Query("sort")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		logger.Error("Hotel search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search hotels"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RecommendedHotelsHandler handles GET /api/hotels/recommended?city&exclude=1,2&limit&strategy.
func (h *HotelHandler) RecommendedHotelsHandler(c *gin.Context) {
	var exclude []int64
	for _, raw := range strings.Split(c.Query("exclude"), ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			exclude = append(exclude, id)
		}
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.Service.GetRecommendedHotels(c.Request.Context(), models.RecommendedHotelsParams{
		City:       c.Query("city"),
		ExcludeIDs: exclude,
		Limit:      limit,
		Strategy:   models.RecommendationStrategy(c.Query("strategy")),
	})
	if err != nil {
		utils.ContextLogger(c).Error("Recommended hotels failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recommendations"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *HotelHandler) GetHotelHandler(c *gin.Context) {
	id, ok := hotelIDParam(c)
	if !ok {
		return
	}
	hotel, err := h.Service.GetHotel(c.Request.Context(), id)
	if errors.Is(err, hotelRepo.ErrHotelNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hotel not found"})
		return
	}
	if err != nil {
		utils.ContextLogger(c).Error("Failed to fetch hotel", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch hotel"})
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// ListRoomsHandler handles GET /api/hotels/:id/rooms?checkIn&checkOut.
func (h *HotelHandler) ListRoomsHandler(c *gin.Context) {
	id, ok := hotelIDParam(c)
	if !ok {
		return
	}
	checkIn, checkOut, err := utils.ParseStay(c.Query("checkIn"), c.Query("checkOut"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	rooms, err := h.Service.ListRooms(c.Request.Context(), id, checkIn, checkOut)
	switch {
	case errors.Is(err, recommend.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	case errors.Is(err, recommend.ErrInventoryLookup):
		utils.ContextLogger(c).Error("Room list lookup failed", zap.Int64("hotelID", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory lookup failed"})
		return
	case err != nil:
		utils.ContextLogger(c).Error("Room list failed", zap.Int64("hotelID", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
