package service

import (
	"context"
	"time"

	"go-stock-dashboard/pkg/logger"
	"go-stock-dashboard/pkg/telegram"

	"github.com/robfig/cron/v3"
)

// RefreshScheduler runs the sequential watchlist refresh on a cron schedule
// and optionally reports a digest to Telegram.
type RefreshScheduler struct {
	cron     *cron.Cron
	spec     string
	ingest   IngestService
	notifier telegram.Notifier
	log      *logger.Logger
}

// NewRefreshScheduler creates a scheduler. notifier may be nil; the digest is
// then skipped.
func NewRefreshScheduler(spec string, ingest IngestService, notifier telegram.Notifier, log *logger.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		cron:     cron.New(),
		spec:     spec,
		ingest:   ingest,
		notifier: notifier,
		log:      log,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *RefreshScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Refresh scheduler started", logger.StringField("cron_spec", s.spec))
	return nil
}

// Stop stops the cron loop and waits for a running refresh to finish.
func (s *RefreshScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *RefreshScheduler) run() {
	start := time.Now()
	updated, failed := s.ingest.UpdateMarketData(context.Background())

	if s.notifier == nil {
		return
	}
	digest := telegram.FormatRefreshDigest(telegram.RefreshDigest{
		StartedAt: start,
		Duration:  time.Since(start),
		Updated:   updated,
		Failed:    failed,
	})
	if err := s.notifier.SendMessage(digest); err != nil {
		s.log.Error("Failed to send refresh digest", logger.ErrorField(err))
	}
}
