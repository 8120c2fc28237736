package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
)

// CaseRefresher is the subset of the case use case the worker drives
type CaseRefresher interface {
	List(ctx context.Context) []model.CaseRecord
	RefreshDerived(ctx context.Context, id types.CaseID) (types.Outcome, error)
}

// AgeRefreshWorker periodically recomputes derived ages so they stay
// current while a long-running server crosses birthdays.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type AgeRefreshWorker struct {
	cases    CaseRefresher
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewAgeRefreshWorker creates a new worker refreshing every interval
func NewAgeRefreshWorker(cases CaseRefresher, interval time.Duration) *AgeRefreshWorker {
	return &AgeRefreshWorker{
		cases:    cases,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop. The first pass runs
// immediately in the background.
func (w *AgeRefreshWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("refresh interval must be positive", goerr.V("interval", w.interval))
	}

	logging.From(ctx).Info("Age refresh worker starting", "interval", w.interval.String())
	go w.run(ctx)
	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *AgeRefreshWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *AgeRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}

// refresh performs a single pass. A failing case is logged and skipped.
func (w *AgeRefreshWorker) refresh(ctx context.Context) int {
	logger := logging.From(ctx)
	updated := 0

	for _, rec := range w.cases.List(ctx) {
		if ctx.Err() != nil {
			return updated
		}

		outcome, err := w.cases.RefreshDerived(ctx, rec.ID)
		if err != nil {
			logger.Error("Failed to refresh derived fields", "case_id", rec.ID, "error", err.Error())
			continue
		}
		if outcome == types.OutcomeUpdated {
			updated++
		}
	}

	if updated > 0 {
		logger.Info("Derived ages refreshed", "updated", updated)
	}
	return updated
}
