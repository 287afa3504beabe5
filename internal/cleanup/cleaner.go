package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/mindly-app/duel-engine/internal/duel"
)

// Cleaner handles periodic expiry of abandoned duel sessions
type Cleaner struct {
	manager  duel.Manager
	interval time.Duration
}

// NewCleaner creates a new cleanup worker
func NewCleaner(manager duel.Manager, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Cleaner{
		manager:  manager,
		interval: interval,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// cleanup finds duels past their TTL and evicts them
func (c *Cleaner) cleanup(ctx context.Context) {
	expired, err := c.manager.GetExpired(ctx)
	if err != nil {
		slog.Error("failed to get expired duels", "error", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	slog.Info("found expired duels", "count", len(expired))

	for _, d := range expired {
		if err := c.manager.Expire(ctx, d.ID); err != nil {
			slog.Error("failed to expire duel", "error", err, "id", d.ID)
		}
	}
}
