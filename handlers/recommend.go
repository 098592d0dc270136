package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"hotelbook/models"
	"hotelbook/services/recommend"
	"hotelbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const noRecommendationMessage = "当前日期下暂无可满足入住人数的房型"

// RecommendRoomsRequest is the body of POST /api/hotels/:id/recommendation.
type RecommendRoomsRequest struct {
	Rooms    int    `json:"rooms" binding:"required"`
	Adults   int    `json:"adults" binding:"required"`
	Children int    `json:"children"`
	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`
	Nights   int    `json:"nights"`
}

// ToModel converts the body to a service request for hotelID.
func (r RecommendRoomsRequest) ToModel(hotelID int64) (models.RecommendationRequest, error) {
	checkIn, err := utils.ParseDate(r.CheckIn)
	if err != nil {
		return models.RecommendationRequest{}, err
	}
	checkOut, err := utils.ParseDate(r.CheckOut)
	if err != nil {
		return models.RecommendationRequest{}, err
	}
	return models.RecommendationRequest{
		HotelID:  hotelID,
		Rooms:    r.Rooms,
		Adults:   r.Adults,
		Children: r.Children,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Nights:   r.Nights,
	}, nil
}

type RecommendHandler struct {
	Service recommend.RecommendationService
}

func NewRecommendHandler(svc recommend.RecommendationService) *RecommendHandler {
	return &RecommendHandler{Service: svc}
}

// RecommendRoomsHandler answers with the cheapest room combination for the party.
func (h *RecommendHandler) RecommendRoomsHandler(c *gin.Context) {
	logger := utils.ContextLogger(c)

	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || hotelID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hotel id"})
		return
	}

	var body RecommendRoomsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req, err := body.ToModel(hotelID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Service.Recommend(c.Request.Context(), req)
	switch {
	case errors.Is(err, recommend.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	case errors.Is(err, recommend.ErrInventoryLookup):
		logger.Error("Room recommendation failed", zap.Int64("hotelID", hotelID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "inventory lookup failed"})
		return
	case err != nil:
		logger.Error("Room recommendation failed", zap.Int64("hotelID", hotelID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to recommend rooms"})
		return
	}

	if result == nil {
		c.JSON(http.StatusOK, gin.H{"found": false, "message": noRecommendationMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "result": result})
}
