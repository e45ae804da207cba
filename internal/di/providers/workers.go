package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/giaphaapp/giapha-server/internal/logger"
	"github.com/giaphaapp/giapha-server/internal/service"
)

// SessionCleanupJob runs periodic session cleanup.
type SessionCleanupJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideSessionCleanupJob provides the periodic session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		// Initial cleanup on startup
		if count, err := storeHandle.DeleteExpiredSessions(ctx); err != nil {
			log.Warn("Initial session cleanup failed", "error", err)
		} else if count > 0 {
			log.Info("Initial session cleanup completed", "deleted", count)
		}

		for {
			select {
			case <-ticker.C:
				if count, err := storeHandle.DeleteExpiredSessions(ctx); err != nil {
					log.Warn("Session cleanup failed", "error", err)
				} else if count > 0 {
					log.Info("Session cleanup completed", "deleted", count)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Session cleanup job started")

	return &SessionCleanupJob{cancel: cancel}, nil
}

// TierSweepJob runs the reclassification sweep on startup and periodically
// afterwards, so records that slipped past write-time tightening are caught.
type TierSweepJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *TierSweepJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideTierSweepJob provides the periodic tier sweep job.
func ProvideTierSweepJob(i do.Injector) (*TierSweepJob, error) {
	auditService := do.MustInvoke[*service.AuditService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		// Initial sweep on startup
		if result, err := auditService.Sweep(ctx); err != nil {
			log.Warn("Initial tier sweep failed", "error", err)
		} else if result.Changed > 0 {
			log.Info("Initial tier sweep completed", "changed", result.Changed)
		}

		for {
			select {
			case <-ticker.C:
				if result, err := auditService.Sweep(ctx); err != nil {
					log.Warn("Tier sweep failed", "error", err)
				} else if result.Changed > 0 {
					log.Info("Tier sweep completed", "changed", result.Changed)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Tier sweep job started")

	return &TierSweepJob{cancel: cancel}, nil
}
