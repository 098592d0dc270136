package order

import (
	"context"
	"time"

	"hotelbook/models"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, input models.PlaceOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
	RefundOrder(ctx context.Context, id, userID string) (*models.Order, error)
	DeleteOrder(ctx context.Context, id, userID string) error
}

// LedgerEnqueuer hands booked-count changes that failed inline to the background worker.
type LedgerEnqueuer interface {
	EnqueueInventoryIncrement(ctx context.Context, payload models.InventoryLedgerPayload) error
}

// IdempotencyStore remembers checkout keys. utils.RedisCache satisfies it.
type IdempotencyStore interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}
