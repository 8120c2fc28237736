package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"golang.org/x/sync/singleflight"
)

// SummaryUseCase drafts the final report of a case with the summary
// service
type SummaryUseCase struct {
	cases      *CaseUseCase
	summarizer interfaces.Summarizer
	group      singleflight.Group
}

func newSummaryUseCase(cases *CaseUseCase, summarizer interfaces.Summarizer) *SummaryUseCase {
	return &SummaryUseCase{
		cases:      cases,
		summarizer: summarizer,
	}
}

// Enabled reports whether a summary service is configured
func (uc *SummaryUseCase) Enabled() bool {
	return uc.summarizer != nil
}

type summaryResult struct {
	summary *model.CaseSummary
	outcome types.Outcome
}

// Generate summarizes a snapshot of the case and merges the drafted
// specialist opinion and recommendations into its final report. Edits made
// while the request is in flight are kept; only those two fields are
// overwritten. On failure nothing is changed.
//
// Concurrent calls for the same case share one request. The shared request
// is detached from every caller's cancellation: a caller whose ctx is done
// stops waiting, while the request runs on for the others and its result is
// still applied.
func (uc *SummaryUseCase) Generate(ctx context.Context, id types.CaseID) (*model.CaseSummary, types.Outcome, error) {
	if uc.summarizer == nil {
		return nil, types.OutcomeUnchanged, goerr.Wrap(ErrSummarizerNotConfigured, "cannot summarize case", goerr.V(CaseIDKey, id))
	}

	shared := context.WithoutCancel(ctx)
	ch := uc.group.DoChan(string(id), func() (any, error) {
		return uc.generate(shared, id)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, types.OutcomeUnchanged, res.Err
		}
		r := res.Val.(*summaryResult)
		return r.summary, r.outcome, nil

	case <-ctx.Done():
		return nil, types.OutcomeUnchanged, goerr.Wrap(ctx.Err(), "stopped waiting for summary", goerr.V(CaseIDKey, id))
	}
}

func (uc *SummaryUseCase) generate(ctx context.Context, id types.CaseID) (*summaryResult, error) {
	rec, ok := uc.cases.Find(ctx, id)
	if !ok {
		return &summaryResult{outcome: types.OutcomeNotFound}, nil
	}

	summary, err := uc.summarizer.Summarize(ctx, rec.Study)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to summarize case", goerr.V(CaseIDKey, id))
	}

	patch, err := fieldPatch(map[string]any{
		"specialistOpinion": summary.SpecialistOpinion,
		"recommendations":   summary.Recommendations,
	})
	if err != nil {
		return nil, err
	}

	outcome, err := uc.cases.UpdateSection(ctx, id, types.SectionFinalReport, patch)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to apply summary", goerr.V(CaseIDKey, id))
	}
	if !outcome.Found() {
		// Deleted while the request was in flight
		return &summaryResult{outcome: outcome}, nil
	}
	return &summaryResult{summary: summary, outcome: outcome}, nil
}

// SummaryTask is a Generate call running in the background
type SummaryTask struct {
	done    chan struct{}
	summary *model.CaseSummary
	outcome types.Outcome
	err     error
}

// Start runs Generate asynchronously. Cancelling ctx ends the task early
// with the context error; the underlying request is not aborted.
func (uc *SummaryUseCase) Start(ctx context.Context, id types.CaseID) *SummaryTask {
	task := &SummaryTask{done: make(chan struct{})}
	go func() {
		defer close(task.done)
		task.summary, task.outcome, task.err = uc.Generate(ctx, id)
	}()
	return task
}

// Done is closed when the task has finished
func (t *SummaryTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx is done
func (t *SummaryTask) Wait(ctx context.Context) (*model.CaseSummary, types.Outcome, error) {
	select {
	case <-t.done:
		return t.summary, t.outcome, t.err
	case <-ctx.Done():
		return nil, types.OutcomeUnchanged, goerr.Wrap(ctx.Err(), "stopped waiting for summary")
	}
}
