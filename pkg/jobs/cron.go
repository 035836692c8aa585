// Package jobs runs the scheduled maintenance tasks.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/civicline/repcall/pkg/cache"
	"github.com/civicline/repcall/pkg/export"
	"github.com/robfig/cron/v3"
)

// CronManager manages scheduled jobs
type CronManager struct {
	cron          *cron.Cron
	exportService *export.Service
	cache         *cache.Client
	logger        *log.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(exportService *export.Service, cacheClient *cache.Client, logger *log.Logger) *CronManager {
	if logger == nil {
		logger = log.Default()
	}

	return &CronManager{
		cron:          cron.New(),
		exportService: exportService,
		cache:         cacheClient,
		logger:        logger,
	}
}

// SetupJobs configures all scheduled jobs
func (cm *CronManager) SetupJobs() error {
	cm.logger.Println("Setting up cron jobs...")

	// Daily at 3 AM: purge expired export files
	_, err := cm.cron.AddFunc("0 3 * * *", func() {
		cm.logger.Println("🕐 Running export purge job...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		purged, err := cm.exportService.PurgeExpired(ctx)
		if err != nil {
			cm.logger.Printf("❌ Failed to purge expired exports: %v", err)
			return
		}

		cm.logger.Printf("✅ Export purge completed, removed %d export(s)", purged)
	})
	if err != nil {
		return err
	}

	// Daily at 4 AM: drop cached zip lookups so stale entries never
	// outlive a day even if an invalidation was missed.
	_, err = cm.cron.AddFunc("0 4 * * *", func() {
		if cm.cache == nil {
			return
		}
		cm.logger.Println("🕐 Running cache sweep job...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := cm.cache.DeletePattern(ctx, cache.RepsByZipKey("*")); err != nil {
			cm.logger.Printf("❌ Failed to sweep representative cache: %v", err)
			return
		}

		cm.logger.Println("✅ Cache sweep completed")
	})
	if err != nil {
		return err
	}

	return nil
}

// Start begins running scheduled jobs
func (cm *CronManager) Start() {
	cm.cron.Start()
	cm.logger.Println("✅ Cron jobs started")
}

// Stop gracefully stops all scheduled jobs
func (cm *CronManager) Stop() {
	ctx := cm.cron.Stop()
	<-ctx.Done()
	cm.logger.Println("Cron jobs stopped")
}
