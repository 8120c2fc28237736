package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/usecase"
)

func TestComputeDashboard(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	created := func(at time.Time, source string) model.CaseRecord {
		r := recordWith(func(s *model.CaseStudy) { s.GeneralInfo.ReferralSource = source })
		r.CreatedAt = at
		return r
	}

	t.Run("empty list", func(t *testing.T) {
		got := usecase.ComputeDashboard(nil, now)
		gt.Number(t, got.TotalCount).Equal(0)
		gt.Number(t, got.NewThisMonth).Equal(0)
		gt.Array(t, got.ReferralSources).Length(0)
		gt.Array(t, got.UniqueSources).Length(0)
	})

	t.Run("counts and histogram", func(t *testing.T) {
		records := []model.CaseRecord{
			created(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), "مدرسة"),
			created(time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC), "مستشفى"),
			created(time.Date(2026, 10, 18, 11, 0, 0, 0, time.UTC), "مدرسة"),
			created(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), ""),
		}

		got := usecase.ComputeDashboard(records, now)
		gt.Number(t, got.TotalCount).Equal(4)
		gt.Number(t, got.NewThisMonth).Equal(2)
		gt.Value(t, got.ReferralSources).Equal([]model.SourceCount{
			{Source: "مدرسة", Count: 2},
			{Source: "مستشفى", Count: 1},
		})
		gt.Value(t, got.UniqueSources).Equal([]string{"مدرسة", "مستشفى"})
	})

	t.Run("legacy ids provide creation time", func(t *testing.T) {
		inMonth := recordWith(func(s *model.CaseStudy) {})
		inMonth.ID = types.CaseID(fmt.Sprintf("case_%d", time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC).UnixMilli()))
		old := recordWith(func(s *model.CaseStudy) {})
		old.ID = types.CaseID(fmt.Sprintf("case_%d", time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC).UnixMilli()))
		unknown := recordWith(func(s *model.CaseStudy) {})
		unknown.ID = "imported"

		got := usecase.ComputeDashboard([]model.CaseRecord{inMonth, old, unknown}, now)
		gt.Number(t, got.TotalCount).Equal(3)
		gt.Number(t, got.NewThisMonth).Equal(1)
	})

	t.Run("month boundary uses clock location", func(t *testing.T) {
		loc := time.FixedZone("AST", 3*60*60)
		localNow := time.Date(2026, 10, 18, 12, 0, 0, 0, loc)
		// 2026-10-01 00:30 local is still September in UTC
		r := created(time.Date(2026, 9, 30, 21, 30, 0, 0, time.UTC), "")

		got := usecase.ComputeDashboard([]model.CaseRecord{r}, localNow)
		gt.Number(t, got.NewThisMonth).Equal(1)
	})
}

func TestFilter(t *testing.T) {
	records := []model.CaseRecord{
		recordWith(func(s *model.CaseStudy) {
			s.GeneralInfo.ChildFullName = "Sara Ali"
			s.GeneralInfo.CaseNumber = "A-100"
			s.GeneralInfo.ReferralSource = "school"
		}),
		recordWith(func(s *model.CaseStudy) {
			s.GeneralInfo.ChildFullName = "Omar"
			s.GeneralInfo.CaseNumber = "B-200"
			s.GeneralInfo.ReferralSource = "hospital"
		}),
	}

	testCases := []struct {
		name   string
		query  string
		source string
		want   int
	}{
		{name: "no filter", want: 2},
		{name: "all source", source: usecase.SourceFilterAll, want: 2},
		{name: "name case-insensitive", query: "sara", want: 1},
		{name: "case number", query: "b-2", want: 1},
		{name: "source", source: "hospital", want: 1},
		{name: "query and source", query: "sara", source: "hospital", want: 0},
		{name: "no match", query: "zzz", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Array(t, usecase.Filter(records, tc.query, tc.source)).Length(tc.want)
		})
	}
}
