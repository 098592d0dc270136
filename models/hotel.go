package models

import "time"

// Hotel is a property listed in the app.
type Hotel struct {
	ID             int64      `bson:"id" json:"id"`
	NameZh         string     `bson:"name_zh" json:"name_zh"`
	NameEn         string     `bson:"name_en" json:"name_en"`
	Address        string     `bson:"address" json:"address"`
	StarRating     int        `bson:"star_rating" json:"star_rating"`
	OpeningDate    string     `bson:"opening_date" json:"opening_date"`
	ContactPhone   string     `bson:"contact_phone" json:"contact_phone"`
	Image          string     `bson:"image" json:"image"`
	Status         string     `bson:"status" json:"status"` // "active", "pending", "rejected"
	MerchantID     string     `bson:"merchant_id" json:"merchant_id"`
	UpdatedAt      *time.Time `bson:"updated_at" json:"updated_at"`
	RejectedReason string     `bson:"rejected_reason" json:"rejected_reason"`
	Region         string     `bson:"region" json:"region"`
	Album          []string   `bson:"album" json:"album"`
	Tags           []string   `bson:"tags" json:"tags"`
}

// HotelSearchItem is a hotel row in a search listing with aggregate fields.
type HotelSearchItem struct {
	Hotel
	MinPrice    *float64 `json:"min_price"`
	ReviewScore *float64 `json:"review_score"`
	IsSoldOut   bool     `json:"is_sold_out"`
}

// HotelSort selects the ordering of a search listing.
type HotelSort string

const (
	SortRecommended HotelSort = "recommended"
	SortStarDesc    HotelSort = "star_desc"
	SortStarAsc     HotelSort = "star_asc"
	SortPriceAsc    HotelSort = "price_asc"
	SortPriceDesc   HotelSort = "price_desc"
	SortScoreDesc   HotelSort = "score_desc"
)

// Valid reports whether s is a known sort.
func (s HotelSort) Valid() bool {
	switch s {
	case SortRecommended, SortStarDesc, SortStarAsc, SortPriceAsc, SortPriceDesc, SortScoreDesc:
		return true
	}
	return false
}

// HotelSearchParams are the normalised listing filters.
type HotelSearchParams struct {
	City     string    `json:"city"`
	Keyword  string    `json:"keyword"`
	Sort     HotelSort `json:"sort"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// RecommendationStrategy picks how "you may also like" hotels are chosen.
type RecommendationStrategy string

const (
	StrategySameCityScore    RecommendationStrategy = "same_city_score"
	StrategyGlobalPopularity RecommendationStrategy = "global_popularity"
)

// RecommendedHotelsParams is the input of the hotel recommendation strip.
type RecommendedHotelsParams struct {
	City       string                 `json:"city"`
	ExcludeIDs []int64                `json:"exclude_ids"`
	Limit      int                    `json:"limit"`
	Strategy   RecommendationStrategy `json:"strategy"`
}

// RecommendedHotelsResult carries the strategy actually used.
type RecommendedHotelsResult struct {
	Strategy RecommendationStrategy `json:"strategy"`
	Items    []HotelSearchItem      `json:"items"`
}
