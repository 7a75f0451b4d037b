package jobs

import (
	"context"
	"log"

	"github.com/nikolamilosevic/TransferHub/internal/pkg/subscriptions"
	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic housekeeping. The only job today is the
// subscription expiry sweep, which rewrites lapsed rows for reporting;
// entitlement checks are correct without it.
type Scheduler struct {
	cron *cron.Cron
	subs *subscriptions.Service
}

func NewScheduler(subs *subscriptions.Service) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		subs: subs,
	}
}

// Start registers the jobs and launches the cron loop in its own goroutine.
func (s *Scheduler) Start() error {
	// Hourly is plenty: the sweep only affects reporting views.
	_, err := s.cron.AddFunc("@hourly", s.sweepExpiredSubscriptions)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Print("Job scheduler started")
	return nil
}

// Stop halts the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Print("Job scheduler stopped")
}

func (s *Scheduler) sweepExpiredSubscriptions() {
	n, err := s.subs.ExpireLapsed(context.Background())
	if err != nil {
		log.Printf("subscription expiry sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("subscription expiry sweep marked %d subscriptions expired", n)
	}
}
