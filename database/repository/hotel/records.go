// File: database/repository/hotel/records.go
package hotelRepo

import (
	"time"

	"hotelbook/models"

	"gorm.io/datatypes"
)

// HotelRecord is the relational row behind models.Hotel.
type HotelRecord struct {
	ID             int64 `gorm:"primaryKey"`
	NameZh         string
	NameEn         string
	Address        string
	StarRating     int
	OpeningDate    string
	ContactPhone   string
	Image          string
	Status         string `gorm:"index;not null;default:'pending'"`
	MerchantID     string
	UpdatedAt      *time.Time
	RejectedReason string
	Region         string `gorm:"index"`
	Album          datatypes.JSONSlice[string]
	Tags           datatypes.JSONSlice[string]
	ReviewScore    *float64
}

func (HotelRecord) TableName() string { return "hotels" }

func (r HotelRecord) toModel() models.Hotel {
	return models.Hotel{
		ID:             r.ID,
		NameZh:         r.NameZh,
		NameEn:         r.NameEn,
		Address:        r.Address,
		StarRating:     r.StarRating,
		OpeningDate:    r.OpeningDate,
		ContactPhone:   r.ContactPhone,
		Image:          r.Image,
		Status:         r.Status,
		MerchantID:     r.MerchantID,
		UpdatedAt:      r.UpdatedAt,
		RejectedReason: r.RejectedReason,
		Region:         r.Region,
		Album:          r.Album,
		Tags:           r.Tags,
	}
}

// NewHotelRecord converts a model for insertion.
func NewHotelRecord(h models.Hotel, reviewScore *float64) HotelRecord {
	return HotelRecord{
		ID:             h.ID,
		NameZh:         h.NameZh,
		NameEn:         h.NameEn,
		Address:        h.Address,
		StarRating:     h.StarRating,
		OpeningDate:    h.OpeningDate,
		ContactPhone:   h.ContactPhone,
		Image:          h.Image,
		Status:         h.Status,
		MerchantID:     h.MerchantID,
		UpdatedAt:      h.UpdatedAt,
		RejectedReason: h.RejectedReason,
		Region:         h.Region,
		Album:          h.Album,
		Tags:           h.Tags,
		ReviewScore:    reviewScore,
	}
}
