package recommend

import (
	"context"
	"fmt"
	"time"

	inventoryRepo "hotelbook/database/repository/inventory"
	"hotelbook/models"
	"hotelbook/utils"

	"go.uber.org/zap"
)

// RecommendationService picks rooms for a party at one hotel.
type RecommendationService interface {
	// Recommend returns nil, nil when no allocation of any shape houses the party.
	Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResult, error)
}

// DefaultRecommendationService implements RecommendationService. It keeps no
// state between calls; callers discard stale responses themselves.
type DefaultRecommendationService struct {
	Resolver *Resolver
	Metrics  *Metrics
	Logger   *zap.Logger
}

func NewRecommendationService(repo inventoryRepo.InventoryRepository, metrics *Metrics, logger *zap.Logger) *DefaultRecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultRecommendationService{
		Resolver: NewResolver(repo),
		Metrics:  metrics,
		Logger:   logger,
	}
}

func (s *DefaultRecommendationService) Recommend(ctx context.Context, req models.RecommendationRequest) (*models.RecommendationResult, error) {
	start := time.Now()

	nights, err := ValidateRequest(req)
	if err != nil {
		s.Metrics.observe(OutcomeInvalid, start)
		return nil, err
	}
	guests := req.TotalGuests()

	snap, err := s.Resolver.Resolve(ctx, req.HotelID, req.CheckIn, req.CheckOut, true)
	if err != nil {
		s.Logger.Error("Recommend: inventory lookup failed", zap.Int64("hotelID", req.HotelID), zap.Error(err))
		s.Metrics.observe(OutcomeError, start)
		return nil, err
	}

	candidates := BuildCandidates(snap.RoomTypes, snap.Availability)
	if len(candidates) == 0 {
		s.Logger.Info("Recommend: no room type has stock for the whole stay",
			zap.Int64("hotelID", req.HotelID), zap.Int("roomTypes", len(snap.RoomTypes)))
		s.Metrics.observe(OutcomeNone, start)
		return nil, nil
	}

	if exact := findCheapestCombination(candidates, req.Rooms, guests, nights); exact != nil {
		s.Logger.Debug("Recommend: exact fit",
			zap.Int64("hotelID", req.HotelID), zap.Int("rooms", req.Rooms), zap.Float64("totalPrice", exact.TotalPrice))
		s.Metrics.observe(OutcomeExact, start)
		return exact, nil
	}

	fallback := findFallbackByValue(candidates, guests, nights)
	if fallback == nil {
		s.Logger.Info("Recommend: party cannot be housed",
			zap.Int64("hotelID", req.HotelID), zap.Int("guests", guests))
		s.Metrics.observe(OutcomeNone, start)
		return nil, nil
	}
	fallback.IsFallback = true
	fallback.FallbackReason = fallbackReason(req.Rooms, fallback)

	s.Logger.Info("Recommend: fallback allocation",
		zap.Int64("hotelID", req.HotelID), zap.Int("requestedRooms", req.Rooms), zap.Int("offeredRooms", fallback.RoomCount()))
	s.Metrics.observe(OutcomeFallback, start)
	return fallback, nil
}

// ValidateRequest checks the request and returns the number of nights of the stay.
func ValidateRequest(req models.RecommendationRequest) (int, error) {
	switch {
	case req.HotelID <= 0:
		return 0, fmt.Errorf("%w: hotel id is required", ErrInvalidRequest)
	case req.Rooms < 1:
		return 0, fmt.Errorf("%w: at least one room is required", ErrInvalidRequest)
	case req.Adults < 1:
		return 0, fmt.Errorf("%w: at least one adult is required", ErrInvalidRequest)
	case req.Children < 0:
		return 0, fmt.Errorf("%w: children cannot be negative", ErrInvalidRequest)
	}

	nights := utils.NightsBetween(req.CheckIn, req.CheckOut)
	if nights < 1 {
		return 0, fmt.Errorf("%w: %w", ErrInvalidRequest, utils.ErrInvalidDateRange)
	}
	if req.Nights != 0 && req.Nights != nights {
		return 0, fmt.Errorf("%w: %d nights does not match a %d-night stay", ErrInvalidRequest, req.Nights, nights)
	}
	return nights, nil
}
