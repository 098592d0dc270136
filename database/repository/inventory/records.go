// File: database/repository/inventory/records.go
package inventoryRepo

import (
	"hotelbook/models"

	"gorm.io/datatypes"
)

// RoomTypeRecord is the relational row behind models.RoomType.
type RoomTypeRecord struct {
	ID          int64 `gorm:"primaryKey"`
	HotelID     int64 `gorm:"index;not null"`
	Name        string
	Price       float64 `gorm:"not null"`
	MaxGuests   int     `gorm:"not null"`
	Description string
	Size        float64
	Beds        datatypes.JSONSlice[models.BedInfo]
	Images      datatypes.JSONSlice[string]
	Facilities  datatypes.JSONSlice[string]
	Quantity    int
}

func (RoomTypeRecord) TableName() string { return "room_types" }

func (r RoomTypeRecord) toModel() models.RoomType {
	return models.RoomType{
		ID:          r.ID,
		HotelID:     r.HotelID,
		Name:        r.Name,
		Price:       r.Price,
		MaxGuests:   r.MaxGuests,
		Description: r.Description,
		Size:        r.Size,
		Beds:        r.Beds,
		Images:      r.Images,
		Facilities:  r.Facilities,
		Quantity:    r.Quantity,
	}
}

// NewRoomTypeRecord converts a model for insertion.
func NewRoomTypeRecord(rt models.RoomType) RoomTypeRecord {
	return RoomTypeRecord{
		ID:          rt.ID,
		HotelID:     rt.HotelID,
		Name:        rt.Name,
		Price:       rt.Price,
		MaxGuests:   rt.MaxGuests,
		Description: rt.Description,
		Size:        rt.Size,
		Beds:        rt.Beds,
		Images:      rt.Images,
		Facilities:  rt.Facilities,
		Quantity:    rt.Quantity,
	}
}

// AvailabilityRecord is one room type on one date. Dates are stored as
// "YYYY-MM-DD" text so range filters compare lexically on every driver.
type AvailabilityRecord struct {
	ID          int64  `gorm:"primaryKey"`
	RoomTypeID  int64  `gorm:"uniqueIndex:idx_room_date;not null"`
	Date        string `gorm:"uniqueIndex:idx_room_date;size:10;not null"`
	TotalCount  int    `gorm:"not null"`
	BookedCount int    `gorm:"not null;default:0"`
}

func (AvailabilityRecord) TableName() string { return "room_availability" }

func (r AvailabilityRecord) toModel() models.DailyAvailability {
	return models.DailyAvailability{
		RoomTypeID:  r.RoomTypeID,
		Date:        r.Date,
		TotalCount:  r.TotalCount,
		BookedCount: r.BookedCount,
	}
}
