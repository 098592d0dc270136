package utils

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Pinger reports whether one backing service answers.
type Pinger func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Services  map[string]bool `json:"services"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy is true when every checked service answered.
func (h HealthStatus) Healthy() bool {
	for _, ok := range h.Services {
		if !ok {
			return false
		}
	}
	return true
}

// Down lists the services that failed the last check, sorted by name.
func (h HealthStatus) Down() []string {
	var down []string
	for name, ok := range h.Services {
		if !ok {
			down = append(down, name)
		}
	}
	sort.Strings(down)
	return down
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth pings every service once and stores the snapshot.
func CheckHealth(ctx context.Context, checks map[string]Pinger) HealthStatus {
	status := HealthStatus{Services: make(map[string]bool, len(checks)), CheckedAt: time.Now()}
	for name, ping := range checks {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		status.Services[name] = ping(pingCtx) == nil
		cancel()
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks and updates in-memory state
// until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, interval time.Duration, checks map[string]Pinger) {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	CheckHealth(ctx, checks)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, checks)
			}
		}
	}()
}
