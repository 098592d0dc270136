package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelbook/config"
	inventoryRepo "hotelbook/database/repository/inventory"
	"hotelbook/models"
	"hotelbook/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is the asynq connection shared by the worker and the enqueuing client.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewLedgerMux routes ledger tasks to their handlers. requeue receives the
// failed remainder of partially applied ledgers; nil retries the whole task.
func NewLedgerMux(repo inventoryRepo.InventoryRepository, requeue tasks.Enqueuer, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeInventoryIncrement, handleInventoryIncrement(repo, requeue, logger))
	return mux
}

// InitLedgerWorker runs the booked-count worker in background.
func InitLedgerWorker(repo inventoryRepo.InventoryRepository, requeue tasks.Enqueuer, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewLedgerMux(repo, requeue, logger)

	// Start Redis health monitor
	go monitorRedisConnection(logger)

	go func() {
		logger.Info("Starting ledger worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				break
			}
			logger.Error("Ledger worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Ledger worker gave up after max retry attempts")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

func handleInventoryIncrement(repo inventoryRepo.InventoryRepository, requeue tasks.Enqueuer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.InventoryLedgerPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid ledger payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		logger.Info("Applying inventory ledger",
			zap.String("orderId", p.OrderID), zap.Int("attempt", p.Attempt), zap.Int("lines", len(p.Lines)))
		err := tasks.ApplyInventoryLedger(ctx, repo, p)
		if err == nil {
			return nil
		}
		logger.Error("Inventory ledger failed", zap.String("orderId", p.OrderID), zap.Error(err))

		// Retrying the whole task would apply the successful lines twice, so
		// only the failed remainder goes back on the queue, delayed by
		// tasks.LedgerBackoff.
		var ledgerErr *tasks.LedgerError
		if !errors.As(err, &ledgerErr) || len(ledgerErr.Failed) == len(p.Lines) || requeue == nil {
			return err
		}
		if p.Attempt+1 >= tasks.MaxLedgerAttempts {
			logger.Error("Inventory ledger abandoned, booked counts need manual repair",
				zap.String("orderId", p.OrderID), zap.Any("lines", ledgerErr.Failed))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		followUp := models.InventoryLedgerPayload{OrderID: p.OrderID, Attempt: p.Attempt + 1, Lines: ledgerErr.Failed}
		if qerr := requeue.EnqueueInventoryIncrement(ctx, followUp); qerr != nil {
			logger.Error("Failed to requeue ledger remainder", zap.String("orderId", p.OrderID), zap.Error(qerr))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Queue Redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
