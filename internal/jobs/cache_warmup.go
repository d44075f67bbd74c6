// Package jobs runs the background schedule: periodic warmup of the
// process-local category cache so the navigation tree never falls cold
// between the hourly expiries.
package jobs

import (
	"context"
	"log"
	"time"

	"storefront/internal/services"

	"github.com/go-co-op/gocron/v2"
)

const warmupInterval = 15 * time.Minute

// Scheduler owns the gocron instance and the warmup tasks registered on it.
type Scheduler struct {
	scheduler       gocron.Scheduler
	categoryService services.CategoryService
}

func NewScheduler(categoryService services.CategoryService) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler:       scheduler,
		categoryService: categoryService,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(warmupInterval),
		gocron.NewTask(s.warmCategoryTree),
		gocron.WithName("category-tree-warmup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running the schedule. The first warmup fires immediately so
// the tree is hot before the server takes traffic.
func (s *Scheduler) Start() {
	log.Printf("starting background scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	log.Printf("stopping background scheduler")
	return s.scheduler.Shutdown()
}

// warmCategoryTree walks the navigation lookups the storefront renders on
// every page, populating the local tier as a side effect.
func (s *Scheduler) warmCategoryTree() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()

	if _, err := s.categoryService.Sections(ctx); err != nil {
		log.Printf("category tree warmup: sections failed: %v", err)
		return
	}

	topLevel, err := s.categoryService.TopLevel(ctx)
	if err != nil {
		log.Printf("category tree warmup: top-level failed: %v", err)
		return
	}
	for _, top := range topLevel {
		if _, err := s.categoryService.Children(ctx, top.ID); err != nil {
			log.Printf("category tree warmup: children of %d failed: %v", top.ID, err)
		}
	}

	log.Printf("category tree warmup completed in %s (%d top-level categories)",
		time.Since(start).Round(time.Millisecond), len(topLevel))
}
