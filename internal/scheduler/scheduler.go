// Package scheduler runs the nightly capital-gains summary rebuild.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/duyet/finance-hub-sub002/internal/repository"
	"github.com/duyet/finance-hub-sub002/internal/service"
)

// rebuildConcurrency bounds how many users are recomputed at once. Each
// recompute holds its own per-(user, year) lock, so parallel users are safe.
const rebuildConcurrency = 4

// Scheduler refreshes the current tax year's summaries for every user with
// closed lots, on a cron schedule. The summaries are a materialized view, so
// a periodic full rebuild keeps them converged even if an online recompute
// was ever missed.
type Scheduler struct {
	cron         *cron.Cron
	lotRepo      *repository.LotRepository
	gainsService *service.GainsService
}

// New creates a Scheduler with the provided dependencies.
func New(lotRepo *repository.LotRepository, gainsService *service.GainsService) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		lotRepo:      lotRepo,
		gainsService: gainsService,
	}
}

// Start registers the rebuild job and starts the cron loop.
// An empty spec disables the scheduler.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		log.Println("Summary rebuild scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(spec, s.rebuildCurrentYear); err != nil {
		return fmt.Errorf("failed to schedule summary rebuild: %w", err)
	}

	s.cron.Start()
	log.Printf("Summary rebuild scheduled: %s", spec)
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) rebuildCurrentYear() {
	taxYear := time.Now().UTC().Year()
	start, end := repository.TaxYearBounds(taxYear)

	userIDs, err := s.lotRepo.GetUsersWithClosedLotsInYear(start, end)
	if err != nil {
		log.Printf("Summary rebuild: failed to list users: %v", err)
		return
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(rebuildConcurrency)

	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			if _, err := s.gainsService.RecomputeSummary(ctx, userID, taxYear); err != nil {
				return fmt.Errorf("user %s: %w", userID, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("Summary rebuild: %v", err)
		return
	}

	log.Printf("Summary rebuild complete: %d users, tax year %d", len(userIDs), taxYear)
}
