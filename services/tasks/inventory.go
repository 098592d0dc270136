package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	inventoryRepo "hotelbook/database/repository/inventory"
	"hotelbook/models"

	"github.com/hibiken/asynq"
)

const TypeInventoryIncrement = "inventory:increment"

// MaxLedgerAttempts bounds the follow-up tasks spawned for partially applied ledgers.
const MaxLedgerAttempts = 10

// Enqueuer hands a ledger payload to the queue.
type Enqueuer interface {
	EnqueueInventoryIncrement(ctx context.Context, payload models.InventoryLedgerPayload) error
}

// LedgerError reports the lines of a ledger that were not applied.
type LedgerError struct {
	Failed []models.InventoryIncrement
	Err    error
}

func (e *LedgerError) Error() string { return e.Err.Error() }

func (e *LedgerError) Unwrap() error { return e.Err }

// LedgerTaskID is unique per order and attempt so a retried checkout cannot
// enqueue the same increments twice.
func LedgerTaskID(payload models.InventoryLedgerPayload) string {
	if payload.Attempt == 0 {
		return "ledger:" + payload.OrderID
	}
	return fmt.Sprintf("ledger:%s:%d", payload.OrderID, payload.Attempt)
}

// LedgerBackoff is the delay before follow-up attempt n: 10s doubling per
// attempt, capped at 10 minutes.
func LedgerBackoff(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	d := 10 * time.Second << min(attempt-1, 6)
	return min(d, 10*time.Minute)
}

// NewInventoryIncrementTask wraps a batch of booked-count changes. Follow-up
// attempts are scheduled after LedgerBackoff.
func NewInventoryIncrementTask(payload models.InventoryLedgerPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeInventoryIncrement, b)
	opts := []asynq.Option{
		asynq.TaskID(LedgerTaskID(payload)),
		asynq.MaxRetry(10),
		asynq.Timeout(30 * time.Second),
	}
	if payload.Attempt > 0 {
		opts = append(opts, asynq.ProcessIn(LedgerBackoff(payload.Attempt)))
	}
	return task, opts, nil
}

// LedgerLines expands order lines into one increment per room type and night.
func LedgerLines(rooms []models.OrderRoom, dates []string) []models.InventoryIncrement {
	lines := make([]models.InventoryIncrement, 0, len(rooms)*len(dates))
	for _, room := range rooms {
		for _, date := range dates {
			lines = append(lines, models.InventoryIncrement{RoomTypeID: room.RoomTypeID, Date: date, Delta: room.Quantity})
		}
	}
	return lines
}

// ApplyInventoryLedger writes every increment. On failure it returns a
// *LedgerError listing the lines that still need applying.
func ApplyInventoryLedger(ctx context.Context, repo inventoryRepo.InventoryRepository, payload models.InventoryLedgerPayload) error {
	var (
		errs   []error
		failed []models.InventoryIncrement
	)
	for _, line := range payload.Lines {
		if err := repo.IncrementBooked(ctx, line.RoomTypeID, line.Date, line.Delta); err != nil {
			errs = append(errs, fmt.Errorf("room type %d on %s: %w", line.RoomTypeID, line.Date, err))
			failed = append(failed, line)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &LedgerError{Failed: failed, Err: errors.Join(errs...)}
}

// LedgerQueue enqueues ledger tasks on asynq.
type LedgerQueue struct {
	Client *asynq.Client
}

func (q *LedgerQueue) EnqueueInventoryIncrement(ctx context.Context, payload models.InventoryLedgerPayload) error {
	task, opts, err := NewInventoryIncrementTask(payload)
	if err != nil {
		return err
	}
	_, err = q.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}
