package hotel

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	hotelRepo "hotelbook/database/repository/hotel"
	"hotelbook/models"
	"hotelbook/services/recommend"

	"go.uber.org/zap"
)

type DefaultHotelService struct {
	Repo     hotelRepo.HotelRepository
	Resolver *recommend.Resolver
	Cache    Cache // optional
	CacheTTL time.Duration
	Logger   *zap.Logger
}

func NewHotelService(repo hotelRepo.HotelRepository, resolver *recommend.Resolver, cache Cache, ttl time.Duration, logger *zap.Logger) *DefaultHotelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultHotelService{Repo: repo, Resolver: resolver, Cache: cache, CacheTTL: ttl, Logger: logger}
}

func (s *DefaultHotelService) query(params models.HotelSearchParams) hotelRepo.SearchQuery {
	q := hotelRepo.SearchQuery{
		City:     NormalizeCity(params.City, s.Logger),
		Keyword:  NormalizeKeyword(params.Keyword, s.Logger),
		Sort:     params.Sort,
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	if !q.Sort.Valid() {
		q.Sort = models.SortRecommended
	}
	if q.Page <= 0 {
		q.Page = defaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	q.PageSize = min(q.PageSize, maxPageSize)
	return q
}

func cacheKey(q hotelRepo.SearchQuery) string {
	return fmt.Sprintf("hotels:search:%s:%s:%s:%d:%d", q.City, q.Keyword, q.Sort, q.Page, q.PageSize)
}

// SearchHotels lists active hotels. Listings are cached; a broken cache only costs a database read.
func (s *DefaultHotelService) SearchHotels(ctx context.Context, params models.HotelSearchParams) ([]models.HotelSearchItem, error) {
	q := s.query(params)
	if q.Page > maxPage {
		return []models.HotelSearchItem{}, nil
	}
	key := cacheKey(q)

	if s.Cache != nil {
		if raw, ok, err := s.Cache.Get(ctx, key); err != nil {
			s.Logger.Warn("Hotel search cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			var items []models.HotelSearchItem
			if err := json.Unmarshal([]byte(raw), &items); err == nil {
				return items, nil
			}
			s.Logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
		}
	}

	items, err := s.Repo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search hotels: %w", err)
	}
	if items == nil {
		items = []models.HotelSearchItem{}
	}

	if s.Cache != nil && s.CacheTTL > 0 {
		if raw, err := json.Marshal(items); err == nil {
			if err := s.Cache.Set(ctx, key, string(raw), s.CacheTTL); err != nil {
				s.Logger.Warn("Hotel search cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return items, nil
}

// GetRecommendedHotels fills the "you may also like" strip. Lookup failures
// degrade to an empty list so the page still renders.
func (s *DefaultHotelService) GetRecommendedHotels(ctx context.Context, params models.RecommendedHotelsParams) (*models.RecommendedHotelsResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultRecommendMax
	}
	limit = min(limit, maxPageSize)
	city := NormalizeCity(params.City, s.Logger)

	strategy := params.Strategy
	if strategy == "" {
		strategy = models.StrategyGlobalPopularity
		if city != "" {
			strategy = models.StrategySameCityScore
		}
	}

	q := hotelRepo.SearchQuery{
		Sort:     models.SortRecommended,
		Page:     1,
		PageSize: min(limit+len(params.ExcludeIDs), 2*maxPageSize),
	}
	if strategy == models.StrategySameCityScore {
		q.City = city
		q.Sort = models.SortStarDesc
	}

	result := &models.RecommendedHotelsResult{Strategy: strategy, Items: []models.HotelSearchItem{}}
	items, err := s.Repo.Search(ctx, q)
	if err != nil {
		s.Logger.Warn("Recommended hotels lookup failed", zap.String("strategy", string(strategy)), zap.Error(err))
		return result, nil
	}

	for _, item := range items {
		if slices.Contains(params.ExcludeIDs, item.ID) {
			continue
		}
		result.Items = append(result.Items, item)
		if len(result.Items) == limit {
			break
		}
	}
	return result, nil
}

func (s *DefaultHotelService) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {
	hotel, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hotel %d: %w", id, err)
	}
	return hotel, nil
}

func (s *DefaultHotelService) ListRooms(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]models.AvailableRoom, error) {
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", recommend.ErrInvalidRequest)
	}
	snap, err := s.Resolver.Resolve(ctx, hotelID, checkIn, checkOut, false)
	if err != nil {
		return nil, err
	}
	return recommend.MergeAvailability(snap.RoomTypes, snap.Availability), nil
}
