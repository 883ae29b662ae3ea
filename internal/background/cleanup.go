package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/planovahq/planova-api/internal/repositories"
)

// CleanupManager periodically removes abandoned cart selections from the database
type CleanupManager struct {
	cartRepo *repositories.CartRepository
	logger   *slog.Logger
	interval time.Duration
	ttl      time.Duration
	stopCh   chan struct{}
}

// NewCleanupManager creates a new cleanup manager. Carts older than ttl are
// purged every interval.
func NewCleanupManager(
	cartRepo *repositories.CartRepository,
	logger *slog.Logger,
	interval time.Duration,
	ttl time.Duration,
) *CleanupManager {
	return &CleanupManager{
		cartRepo: cartRepo,
		logger:   logger,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic cleanup task
func (cm *CleanupManager) Start(ctx context.Context) {
	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	// Run immediately on startup
	cm.runCleanup(ctx)

	for {
		select {
		case <-ticker.C:
			cm.runCleanup(ctx)
		case <-cm.stopCh:
			cm.logger.Info("cleanup manager stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("cleanup manager context cancelled")
			return
		}
	}
}

func (cm *CleanupManager) runCleanup(ctx context.Context) {
	cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-cm.ttl)
	rowsDeleted, err := cm.cartRepo.DeleteOlderThan(cleanupCtx, cutoff)
	if err != nil {
		cm.logger.Error("failed to cleanup stale carts", slog.Any("error", err))
		return
	}

	if rowsDeleted > 0 {
		cm.logger.Info("stale cart cleanup completed", slog.Int64("rows_deleted", rowsDeleted))
	}
}

// Stop signals the cleanup manager to stop
func (cm *CleanupManager) Stop() {
	close(cm.stopCh)
}
