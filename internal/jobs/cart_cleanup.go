package jobs

import (
	"context"
	"log"
	"time"

	"bistro/internal/repositories"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the background maintenance jobs. Currently one: purging
// cart lines abandoned longer than the configured TTL.
type Scheduler struct {
	scheduler gocron.Scheduler
	cartRepo  repositories.CartRepository
	cartTTL   time.Duration
	interval  time.Duration
}

func NewScheduler(cartRepo repositories.CartRepository, cartTTL, interval time.Duration) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler: scheduler,
		cartRepo:  cartRepo,
		cartTTL:   cartTTL,
		interval:  interval,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.purgeAbandonedCarts),
	)
	return err
}

func (s *Scheduler) purgeAbandonedCarts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.cartTTL)
	purged, err := s.cartRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("Abandoned cart purge failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("Purged %d abandoned cart lines older than %s", purged, s.cartTTL)
	}
}

func (s *Scheduler) Start() {
	log.Printf("Starting background job scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return s.scheduler.Shutdown()
}
