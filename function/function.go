// Package function exposes room recommendation as an HTTP cloud function.
package function

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"hotelbook/config"
	"hotelbook/database"
	inventoryRepo "hotelbook/database/repository/inventory"
	"hotelbook/handlers"
	"hotelbook/services/recommend"
	"hotelbook/utils"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"go.uber.org/zap"
)

const noRecommendationMessage = "当前日期下暂无可满足入住人数的房型"

var (
	svcOnce sync.Once
	svc     recommend.RecommendationService
	svcErr  error
)

func init() {
	functions.HTTP("recommend-rooms", recommendRooms)
}

// service builds the recommender on first use so a cold start without
// configuration still answers with an error instead of crashing.
func service() (recommend.RecommendationService, error) {
	svcOnce.Do(func() {
		config.LoadConfig()
		client, err := database.NewPostgrestClient()
		if err != nil {
			svcErr = err
			return
		}
		svc = recommend.NewRecommendationService(inventoryRepo.NewPostgrestInventoryRepo(client), nil, utils.GetLogger())
	})
	return svc, svcErr
}

func recommendRooms(w http.ResponseWriter, r *http.Request) {
	s, err := service()
	if err != nil {
		utils.GetLogger().Error("recommend-rooms: not configured", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "service not configured"})
		return
	}
	NewHandler(s, utils.GetLogger())(w, r)
}

// Request is the function body: the HTTP API body plus the hotel id.
type Request struct {
	HotelID int64 `json:"hotelId"`
	handlers.RecommendRoomsRequest
}

// NewHandler answers recommendation requests with svc.
func NewHandler(svc recommend.RecommendationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
			return
		}

		var body Request
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid input", "details": err.Error()})
			return
		}
		req, err := body.ToModel(body.HotelID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid input", "details": err.Error()})
			return
		}

		result, err := svc.Recommend(r.Context(), req)
		switch {
		case errors.Is(err, recommend.ErrInvalidRequest):
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid input", "details": err.Error()})
		case errors.Is(err, recommend.ErrInventoryLookup):
			logger.Error("recommend-rooms: inventory lookup failed", zap.Int64("hotelID", body.HotelID), zap.Error(err))
			writeJSON(w, http.StatusBadGateway, map[string]any{"error": "inventory lookup failed"})
		case err != nil:
			logger.Error("recommend-rooms: failed", zap.Int64("hotelID", body.HotelID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to recommend rooms"})
		case result == nil:
			writeJSON(w, http.StatusOK, map[string]any{"found": false, "message": noRecommendationMessage})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"found": true, "result": result})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
