// File: database/repository/inventory/gorm.go
package inventoryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelbook/models"

	"gorm.io/gorm"
)

// ErrAvailabilityNotFound means no inventory row exists for the room type and date.
var ErrAvailabilityNotFound = errors.New("availability record not found")

type gormInventoryRepo struct {
	db *gorm.DB
}

// NewGormInventoryRepo builds an InventoryRepository on a relational database.
func NewGormInventoryRepo(db *gorm.DB) InventoryRepository {
	return &gormInventoryRepo{db: db}
}

// AutoMigrate creates or updates the inventory tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&RoomTypeRecord{}, &AvailabilityRecord{})
}

func (r *gormInventoryRepo) GetRoomTypes(ctx context.Context, hotelID int64, bookableOnly bool) ([]models.RoomType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID)
	if bookableOnly {
		q = q.Where("max_guests > ?", 0)
	}
	var records []RoomTypeRecord
	if err := q.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	roomTypes := make([]models.RoomType, len(records))
	for i, rec := range records {
		roomTypes[i] = rec.toModel()
	}
	return roomTypes, nil
}

func (r *gormInventoryRepo) GetAvailability(ctx context.Context, filter AvailabilityFilter) ([]models.DailyAvailability, error) {
	if filter.HotelID == 0 && len(filter.RoomTypeIDs) == 0 {
		return nil, fmt.Errorf("availability filter needs a hotel or room types")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&AvailabilityRecord{}).
		Select("room_availability.room_type_id, room_availability.date, room_availability.total_count, room_availability.booked_count")
	if filter.HotelID != 0 {
		q = q.Joins("JOIN room_types ON room_types.id = room_availability.room_type_id").
			Where("room_types.hotel_id = ?", filter.HotelID)
	}
	if len(filter.RoomTypeIDs) > 0 {
		q = q.Where("room_availability.room_type_id IN ?", filter.RoomTypeIDs)
	}
	if filter.From != "" {
		q = q.Where("room_availability.date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("room_availability.date < ?", filter.To)
	}

	var records []AvailabilityRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]models.DailyAvailability, len(records))
	for i, rec := range records {
		out[i] = rec.toModel()
	}
	return out, nil
}

func (r *gormInventoryRepo) IncrementBooked(ctx context.Context, roomTypeID int64, date string, delta int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&AvailabilityRecord{}).
		Where("room_type_id = ? AND date = ?", roomTypeID, date).
		Update("booked_count", gorm.Expr("booked_count + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("room type %d on %s: %w", roomTypeID, date, ErrAvailabilityNotFound)
	}
	return nil
}

func (r *gormInventoryRepo) AdjustBooked(ctx context.Context, lines []models.InventoryIncrement) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			// The guard is evaluated against the locked row, so concurrent
			// reservations cannot both take the last room.
			res := tx.Model(&AvailabilityRecord{}).
				Where("room_type_id = ? AND date = ?", line.RoomTypeID, line.Date).
				Where("total_count - booked_count >= ? AND booked_count + ? >= 0", line.Delta, line.Delta).
				Update("booked_count", gorm.Expr("booked_count + ?", line.Delta))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("room type %d on %s: %w", line.RoomTypeID, line.Date, ErrInsufficientStock)
			}
		}
		return nil
	})
}
