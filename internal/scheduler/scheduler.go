// Package scheduler runs the recurring ingestion jobs.
package scheduler

import (
	"fmt"
	"log"

	"finsight/internal/collector"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron tasks driving daily ingestion.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Symbols   []string
	Days      int
}

// NewScheduler creates a new Scheduler. symbols should already include the
// benchmark so beta stays computable.
func NewScheduler(col *collector.Collector, symbols []string, days int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Symbols:   symbols,
		Days:      days,
	}
}

// Register registers the daily refresh task under the given cron expression.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyRefresh); err != nil {
		return fmt.Errorf("register daily refresh: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the daily refresh immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyRefresh()
}

func (s *Scheduler) dailyRefresh() {
	log.Printf("[INFO] running daily refresh for %d symbols", len(s.Symbols))
	if err := s.Collector.RefreshAll(s.Symbols, s.Days); err != nil {
		log.Printf("[ERROR] daily refresh: %v", err)
	}
}
