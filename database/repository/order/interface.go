// File: database/repository/order/interface.go
package orderRepo

import (
	"context"
	"errors"

	"hotelbook/models"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// ListByUser returns a user's orders that are not deleted, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	// UpdateStatus moves a visible order from status from to status to and
	// records refundRef. ErrOrderNotFound when no such order is in status from.
	UpdateStatus(ctx context.Context, id, from, to, refundRef string) error
	// SoftDelete hides a user's order from ListByUser.
	SoftDelete(ctx context.Context, id, userID string) error
}
