// File: database/repository/hotel/gorm.go
package hotelRepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotelbook/models"

	"gorm.io/gorm"
)

const statusActive = "active"

type gormHotelRepo struct {
	db *gorm.DB
}

func NewGormHotelRepo(db *gorm.DB) HotelRepository {
	return &gormHotelRepo{db: db}
}

// AutoMigrate creates or updates the hotels table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&HotelRecord{})
}

type searchRow struct {
	HotelRecord
	MinPrice *float64
}

// NULLs sort last on every driver.
var sortClauses = map[models.HotelSort]string{
	models.SortRecommended: "CASE WHEN hotels.review_score IS NULL THEN 1 ELSE 0 END, hotels.review_score DESC, hotels.star_rating DESC",
	models.SortStarDesc:    "hotels.star_rating DESC",
	models.SortStarAsc:     "hotels.star_rating ASC",
	models.SortPriceAsc:    "CASE WHEN mp.min_price IS NULL THEN 1 ELSE 0 END, mp.min_price ASC",
	models.SortPriceDesc:   "CASE WHEN mp.min_price IS NULL THEN 1 ELSE 0 END, mp.min_price DESC",
	models.SortScoreDesc:   "CASE WHEN hotels.review_score IS NULL THEN 1 ELSE 0 END, hotels.review_score DESC",
}

func (r *gormHotelRepo) Search(ctx context.Context, q SearchQuery) ([]models.HotelSearchItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	minPrice := r.db.Table("room_types").
		Select("hotel_id, MIN(price) AS min_price").
		Where("max_guests > ?", 0).
		Group("hotel_id")

	tx := r.db.WithContext(ctx).Table("hotels").
		Select("hotels.*, mp.min_price").
		Joins("LEFT JOIN (?) AS mp ON mp.hotel_id = hotels.id", minPrice).
		Where("hotels.status = ?", statusActive)

	if q.City != "" {
		tx = tx.Where("hotels.region LIKE ?", "%"+q.City+"%")
	}
	if q.Keyword != "" {
		kw := "%" + strings.ToLower(q.Keyword) + "%"
		tx = tx.Where("LOWER(hotels.name_zh) LIKE ? OR LOWER(hotels.name_en) LIKE ? OR LOWER(hotels.address) LIKE ?", kw, kw, kw)
	}

	order, ok := sortClauses[q.Sort]
	if !ok {
		order = sortClauses[models.SortRecommended]
	}
	tx = tx.Order(order + ", hotels.id ASC")

	if q.PageSize > 0 {
		tx = tx.Limit(q.PageSize).Offset(max(q.Page-1, 0) * q.PageSize)
	}

	var rows []searchRow
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]models.HotelSearchItem, len(rows))
	for i, row := range rows {
		items[i] = models.HotelSearchItem{
			Hotel:       row.toModel(),
			MinPrice:    row.MinPrice,
			ReviewScore: row.ReviewScore,
			IsSoldOut:   row.MinPrice == nil,
		}
	}
	return items, nil
}

func (r *gormHotelRepo) GetByID(ctx context.Context, id int64) (*models.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec HotelRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, err
	}
	hotel := rec.toModel()
	return &hotel, nil
}
