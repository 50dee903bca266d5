package scheduler

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/go-co-op/gocron/v2"

	"stayhub-backend/services"
)

// Scheduler owns the background jobs that keep event statuses and room
// display prices in line with the calendar.
type Scheduler struct {
	cron      gocron.Scheduler
	reconcile *services.ReconcileService
	logger    *slog.Logger
}

func New(reconcile *services.ReconcileService, logger *slog.Logger) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: cron, reconcile: reconcile, logger: logger}, nil
}

func sweepTime() (uint, uint) {
	hour, minute := 0, 5
	if raw := os.Getenv("SWEEP_HOUR"); raw != "" {
		if h, err := strconv.Atoi(raw); err == nil && h >= 0 && h < 24 {
			hour = h
		}
	}
	if raw := os.Getenv("SWEEP_MINUTE"); raw != "" {
		if m, err := strconv.Atoi(raw); err == nil && m >= 0 && m < 60 {
			minute = m
		}
	}
	return uint(hour), uint(minute)
}

// Start registers the daily sweep job and kicks off a catch-up sweep so a
// server that was down over midnight converges right away.
func (s *Scheduler) Start() error {
	hour, minute := sweepTime()
	_, err := s.cron.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(hour, minute, 0))),
		gocron.NewTask(s.runSweep),
		gocron.WithName("daily-pricing-sweep"),
	)
	if err != nil {
		return err
	}

	s.cron.Start()
	go s.runSweep()
	return nil
}

func (s *Scheduler) runSweep() {
	s.reconcile.DailySweep()
	if _, err := s.reconcile.RunSweep(); err != nil {
		s.logger.Error("price reconciliation failed", "error", err)
	}
}

func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}
