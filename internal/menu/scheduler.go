package menu

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/sleekshop-go/internal/metrics"
	"github.com/donaldgifford/sleekshop-go/pkg/logger"
)

// Refresher rebuilds the menu for one language.
type Refresher interface {
	Refresh(ctx context.Context, lang string) error
}

// Scheduler periodically refreshes the menu cache for each language.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	languages []string
	timeout   time.Duration
	log       *slog.Logger
}

// NewScheduler creates a Scheduler that refreshes every interval.
func NewScheduler(
	refresher Refresher,
	interval time.Duration,
	languages []string,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:      c,
		refresher: refresher,
		languages: languages,
		timeout:   interval,
		log:       logger.Component(log, "menu-scheduler"),
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.RunOnce); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled refreshes.
func (s *Scheduler) Start() {
	s.log.Info("menu scheduler started", "languages", s.languages)
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("menu scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RunOnce refreshes every configured language. Failures are logged and
// counted; one failing language does not stop the others.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	for _, lang := range s.languages {
		if err := s.refresher.Refresh(ctx, lang); err != nil {
			metrics.MenuRefreshErrorsTotal.Inc()
			s.log.Error("scheduled menu refresh failed", "lang", lang, "error", err)
			continue
		}
		s.log.Debug("menu refreshed", "lang", lang)
	}
}
