// Package scheduler owns the clock for the daily expiration sweep. The
// engine itself has no timers: it only maps (now, medicine) to decisions.
package scheduler

import (
	"context"
	"time"

	"github.com/JuanDluna/biosafe/internal/application/expiration"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// sweepTimeout bounds one sweep run including all fan-out deliveries.
const sweepTimeout = 5 * time.Minute

type sweeper interface {
	RunSweep(ctx context.Context) (expiration.SweepReport, error)
}

// Scheduler runs the expiration sweep on a fixed daily schedule.
type Scheduler struct {
	cron   *cron.Cron
	engine sweeper
	spec   string
}

// New creates a scheduler that fires the sweep per the cron spec, in UTC.
func New(engine sweeper, spec string) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		engine: engine,
		spec:   spec,
	}
}

// Start registers the sweep job and begins the cron loop.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.spec, s.runSweep); err != nil {
		zap.S().Errorw("failed to register sweep job", "spec", s.spec, "err", err)
		return
	}
	s.cron.Start()
	zap.S().Infow("expiration sweep scheduled", "spec", s.spec)
}

// Stop stops the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("expiration sweep scheduler stopped")
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	// Errors stay here: failing the job would only make cron's next run
	// redundant, and the sweep re-covers the same window daily anyway.
	if _, err := s.engine.RunSweep(ctx); err != nil {
		zap.S().Errorw("scheduled sweep failed", "err", err)
	}
}
