package workers

import (
	"context"
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/logger"
	"github.com/michealohagwam/dta-backend-clean/internal/services"

	"gorm.io/gorm"
)

// DashboardWorker pushes a fresh stats snapshot to every connected client on
// a fixed interval. Event-driven broadcasts from the services keep clients
// current between ticks; this worker covers connects that happen in between.
type DashboardWorker struct {
	db        *gorm.DB
	dashboard services.DashboardService
	interval  time.Duration
}

func NewDashboardWorker(db *gorm.DB, dashboard services.DashboardService, interval time.Duration) *DashboardWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DashboardWorker{
		db:        db,
		dashboard: dashboard,
		interval:  interval,
	}
}

func (w *DashboardWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *DashboardWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("dashboard worker started", "interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("dashboard worker stopped")
			return
		case <-ticker.C:
			w.dashboard.Broadcast(w.db)
		}
	}
}
