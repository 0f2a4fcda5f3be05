package jobs

import (
	"context"
	"log"
	"time"

	"github.com/DevRanbir/sparkcu-sub000/internal/config"
	"github.com/DevRanbir/sparkcu-sub000/internal/repository"
)

// StartSessionSweepJob periodically deletes expired and revoked admin
// sessions. Expiry is already enforced on every read; the sweep only keeps
// the table from accumulating dead rows.
func StartSessionSweepJob(ctx context.Context, cfg config.Config, store *repository.Store) {
	if !cfg.SessionSweepEnabled {
		return
	}
	interval := cfg.SessionSweepEvery
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
				removed, err := store.DeleteExpiredAdminSessions(tickCtx, time.Now().UTC())
				cancel()
				if err != nil {
					log.Printf("session sweep error: %v", err)
					continue
				}
				if removed > 0 {
					log.Printf("session sweep removed %d admin sessions", removed)
				}
			}
		}
	}()
}
