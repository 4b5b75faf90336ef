package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"jmorel/hellohunt/internal/scraper"
	"jmorel/hellohunt/logger"
)

// Scheduler wraps robfig/cron and re-runs the pipeline on an interval,
// so new offers are picked up as they are posted. Runs never overlap: a
// tick firing while the previous cycle is still scraping is skipped.
type Scheduler struct {
	cron   *cron.Cron
	worker *Worker
	params scraper.SearchParams
	spec   string
	mu     sync.Mutex
	log    *logger.Logger
}

// NewScheduler creates a Scheduler that fires every interval.
func NewScheduler(worker *Worker, params scraper.SearchParams, interval time.Duration) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		worker: worker,
		params: params,
		spec:   fmt.Sprintf("@every %s", interval),
		log:    logger.ForComponent("scheduler"),
	}
}

// Start registers the job and starts the scheduler. Also runs one scrape
// immediately so results arrive without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.WithField("spec", s.spec).Info().Msg("Planificateur démarré")

	go s.runOnce(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("Planificateur arrêté")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !s.mu.TryLock() {
		s.log.Warn().Msg("Cycle précédent toujours en cours, tour ignoré")
		return
	}
	defer s.mu.Unlock()
	summary, err := s.worker.Run(ctx, s.params)
	if err != nil {
		s.log.WithError(err).Error().Msg("Échec du cycle de scraping")
		return
	}
	s.log.WithFields(logger.Fields{
		"found": summary.Found,
		"kept":  summary.Kept,
	}).Info().Msg("Cycle de scraping terminé")
}
