// Package retention prunes stale entries from the local article cache
// on a cron schedule so the on-disk footprint stays bounded.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/adhocore/gronx"

	"inkpress/pkg/config"
	"inkpress/pkg/logger"
	"inkpress/pkg/store"
)

// RunOnce deletes cached articles fetched before now-maxAge and
// reports how many were removed. Callers may invoke it directly for an
// on-demand sweep.
func RunOnce(maxAge time.Duration) (int, error) {
	if !store.Ready() {
		return 0, fmt.Errorf("local store not open")
	}
	cutoff := time.Now().Add(-maxAge)
	n, err := store.PruneCache(cutoff)
	if err != nil {
		logger.Error("cache_prune_failed", "error", err)
		return 0, err
	}
	logger.Info("cache_pruned", "removed", n, "cutoff", cutoff)
	return n, nil
}

// Start launches the pruning scheduler when retention is enabled.
// Returns a cancel func; the no-op cancel is returned when disabled.
func Start(ctx context.Context, ret config.RetentionConfig) (context.CancelFunc, error) {
	if !ret.Enabled {
		logger.Info("retention_disabled")
		return func() {}, nil
	}

	cronExpr := ret.Cron
	if cronExpr == "" {
		cronExpr = "0 * * * *"
	}
	if !gronx.IsValid(cronExpr) {
		logger.Error("retention_invalid_cron", "cron", ret.Cron)
		return nil, fmt.Errorf("invalid retention cron expression: %s", ret.Cron)
	}

	maxAge := ret.MaxAgeDuration()
	logger.Info("retention_enabled", "cron", cronExpr, "max_age", maxAge)

	ctx2, cancel := context.WithCancel(ctx)
	go runScheduler(ctx2, cronExpr, maxAge)
	return cancel, nil
}

// runScheduler computes the next tick with gronx and sleeps until it.
func runScheduler(ctx context.Context, cronExpr string, maxAge time.Duration) {
	for {
		select {
		case <-ctx.Done():
			logger.Info("retention_scheduler_stopping")
			return
		default:
		}

		now := time.Now().UTC()
		next, err := gronx.NextTickAfter(cronExpr, now, false)
		if err != nil {
			logger.Error("retention_nexttick_failed", "cron", cronExpr, "error", err)
			select {
			case <-time.After(30 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		select {
		case <-time.After(time.Until(next)):
		case <-ctx.Done():
			logger.Info("retention_scheduler_stopping")
			return
		}

		if _, err := RunOnce(maxAge); err != nil {
			logger.Error("retention_run_error", "error", err)
		}
	}
}
