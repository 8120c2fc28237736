package interfaces

import (
	"context"

	"github.com/secmon-lab/casebook/pkg/domain/model"
)

// Summarizer drafts a case summary from a full case study
type Summarizer interface {
	Summarize(ctx context.Context, study model.CaseStudy) (*model.CaseSummary, error)
}
