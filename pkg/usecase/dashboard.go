package usecase

import (
	"strings"
	"time"

	"github.com/secmon-lab/casebook/pkg/domain/model"
)

// SourceFilterAll disables the referral source filter
const SourceFilterAll = "all"

// ComputeDashboard summarizes records as of now. A record counts as new
// when it was created between the first day of now's month (local
// midnight) and now. Records without a resolvable creation time are never
// new.
func ComputeDashboard(records []model.CaseRecord, now time.Time) model.Dashboard {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	dash := model.Dashboard{
		TotalCount:      len(records),
		ReferralSources: []model.SourceCount{},
		UniqueSources:   []string{},
	}

	index := make(map[string]int)
	for _, r := range records {
		if created, ok := r.CreatedTime(); ok && !created.Before(monthStart) && !created.After(now) {
			dash.NewThisMonth++
		}

		source := r.Study.GeneralInfo.ReferralSource
		if source == "" {
			continue
		}
		if i, ok := index[source]; ok {
			dash.ReferralSources[i].Count++
			continue
		}
		index[source] = len(dash.ReferralSources)
		dash.ReferralSources = append(dash.ReferralSources, model.SourceCount{Source: source, Count: 1})
		dash.UniqueSources = append(dash.UniqueSources, source)
	}

	return dash
}

// Filter returns the records whose child name or case number contains
// query (case-insensitive) and whose referral source equals source. An
// empty query or a source of "" or "all" matches everything.
func Filter(records []model.CaseRecord, query, source string) []model.CaseRecord {
	q := strings.ToLower(query)
	out := make([]model.CaseRecord, 0, len(records))
	for _, r := range records {
		g := r.Study.GeneralInfo
		if source != "" && source != SourceFilterAll && g.ReferralSource != source {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(g.ChildFullName), q) &&
			!strings.Contains(strings.ToLower(g.CaseNumber), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}
