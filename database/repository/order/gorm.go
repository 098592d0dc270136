// File: database/repository/order/gorm.go
package orderRepo

import (
	"context"
	"errors"
	"time"

	"hotelbook/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderRecord is the relational row behind models.Order.
type OrderRecord struct {
	ID              string `gorm:"primaryKey;size:36"`
	UserID          string `gorm:"index:idx_user_created;not null"`
	HotelID         int64  `gorm:"not null"`
	CheckInDate     string `gorm:"size:10;not null"`
	CheckOutDate    string `gorm:"size:10;not null"`
	Nights          int
	AdultCount      int
	ChildCount      int
	GuestName       string
	GuestPhone      string
	TotalAmount     float64
	PaidAmount      float64
	PaymentRef      string
	SpecialRequests string
	Status          string `gorm:"size:16;not null"`
	Rooms           datatypes.JSONSlice[models.OrderRoom]
	CreatedAt       time.Time `gorm:"index:idx_user_created"`
	RefundRef       string
	Deleted         bool `gorm:"not null;default:false"`
}

func (OrderRecord) TableName() string { return "orders" }

func newOrderRecord(o *models.Order) OrderRecord {
	return OrderRecord{
		ID:              o.ID,
		UserID:          o.UserID,
		HotelID:         o.HotelID,
		CheckInDate:     o.CheckInDate,
		CheckOutDate:    o.CheckOutDate,
		Nights:          o.Nights,
		AdultCount:      o.AdultCount,
		ChildCount:      o.ChildCount,
		GuestName:       o.GuestName,
		GuestPhone:      o.GuestPhone,
		TotalAmount:     o.TotalAmount,
		PaidAmount:      o.PaidAmount,
		PaymentRef:      o.PaymentRef,
		SpecialRequests: o.SpecialRequests,
		Status:          o.Status,
		Rooms:           o.Rooms,
		CreatedAt:       o.CreatedAt,
		RefundRef:       o.RefundRef,
		Deleted:         o.Deleted,
	}
}

func (r OrderRecord) toModel() models.Order {
	return models.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		HotelID:         r.HotelID,
		CheckInDate:     r.CheckInDate,
		CheckOutDate:    r.CheckOutDate,
		Nights:          r.Nights,
		AdultCount:      r.AdultCount,
		ChildCount:      r.ChildCount,
		GuestName:       r.GuestName,
		GuestPhone:      r.GuestPhone,
		TotalAmount:     r.TotalAmount,
		PaidAmount:      r.PaidAmount,
		PaymentRef:      r.PaymentRef,
		SpecialRequests: r.SpecialRequests,
		Status:          r.Status,
		Rooms:           r.Rooms,
		CreatedAt:       r.CreatedAt.UTC(),
		RefundRef:       r.RefundRef,
		Deleted:         r.Deleted,
	}
}

type gormOrderRepo struct {
	db *gorm.DB
}

func NewGormOrderRepo(db *gorm.DB) OrderRepository {
	return &gormOrderRepo{db: db}
}

// AutoMigrate creates or updates the orders table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderRecord{})
}

func (r *gormOrderRepo) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rec := newOrderRecord(order)
	return r.db.WithContext(ctx).Create(&rec).Error
}

func (r *gormOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec OrderRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	order := rec.toModel()
	return &order, nil
}

func (r *gormOrderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var recs []OrderRecord
	if err := r.db.WithContext(ctx).Where("user_id = ? AND deleted = ?", userID, false).Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	orders := make([]models.Order, len(recs))
	for i, rec := range recs {
		orders[i] = rec.toModel()
	}
	return orders, nil
}

func (r *gormOrderRepo) UpdateStatus(ctx context.Context, id, from, to, refundRef string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&OrderRecord{}).
		Where("id = ? AND status = ? AND deleted = ?", id, from, false).
		Updates(map[string]any{"status": to, "refund_ref": refundRef})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *gormOrderRepo) SoftDelete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&OrderRecord{}).
		Where("id = ? AND user_id = ? AND deleted = ?", id, userID, false).
		Update("deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
