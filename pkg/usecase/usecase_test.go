package usecase_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/repository/memory"
	"github.com/secmon-lab/casebook/pkg/usecase"
)

var testNow = time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func newTestUseCases(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, *memory.Memory) {
	t.Helper()
	kv := memory.New()
	uc := usecase.New(context.Background(), kv, append([]usecase.Option{
		usecase.WithClock(fixedClock),
		usecase.WithSaveStatusDelay(time.Second),
	}, opts...)...)
	t.Cleanup(uc.Close)
	return uc, kv
}

func withMovingClock(now *time.Time) usecase.Option {
	return usecase.WithClock(func() time.Time {
		return *now
	})
}

func patchOf(t *testing.T, fields map[string]any) model.SectionPatch {
	t.Helper()
	patch := model.SectionPatch{}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		gt.NoError(t, err).Required()
		patch[k] = raw
	}
	return patch
}

func storedRecords(t *testing.T, kv *memory.Memory) []model.CaseRecord {
	t.Helper()
	data, err := kv.Get(context.Background(), usecase.DefaultCasesKey)
	gt.NoError(t, err).Required()
	gt.Value(t, data).NotNil().Required()

	var records []model.CaseRecord
	gt.NoError(t, json.Unmarshal(data, &records)).Required()
	return records
}

type fakeSummarizer struct {
	mu     sync.Mutex
	calls  int
	result *model.CaseSummary
	err    error
	gate   chan struct{}
	seen   []model.CaseStudy
}

func (f *fakeSummarizer) Summarize(ctx context.Context, study model.CaseStudy) (*model.CaseSummary, error) {
	f.mu.Lock()
	f.calls++
	f.seen = append(f.seen, study)
	f.mu.Unlock()

	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	s := *f.result
	return &s, nil
}

func (f *fakeSummarizer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNew_LoadsPersistedState(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	first := usecase.New(ctx, kv, usecase.WithClock(fixedClock))
	created := first.Case.Create(ctx)
	first.Branding.Save(ctx, model.BrandingSettings{OrganizationName: "مركز الأمل"})
	first.Close()

	second := usecase.New(ctx, kv, usecase.WithClock(fixedClock))
	defer second.Close()

	records := second.Case.List(ctx)
	gt.Array(t, records).Length(1).Required()
	gt.Value(t, records[0].ID).Equal(created.ID)
	gt.Value(t, second.Branding.Get(ctx).OrganizationName).Equal("مركز الأمل")

	// Selection is session state and not restored
	_, ok := second.Case.Active(ctx)
	gt.Bool(t, ok).False()
}

func TestNew_CorruptStateStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	gt.NoError(t, kv.Put(ctx, usecase.DefaultCasesKey, []byte("{not json"))).Required()
	gt.NoError(t, kv.Put(ctx, usecase.DefaultBrandingKey, []byte("[]"))).Required()

	uc := usecase.New(ctx, kv, usecase.WithDefaultBranding(model.BrandingSettings{OrganizationName: "default"}))
	defer uc.Close()

	gt.Array(t, uc.Case.List(ctx)).Length(0)
	gt.Value(t, uc.Branding.Get(ctx).OrganizationName).Equal("default")
}

func TestNew_CustomStorageKeys(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	uc := usecase.New(ctx, kv, usecase.WithStorageKeys("cases_v2", ""))
	defer uc.Close()

	uc.Case.Create(ctx)

	data, err := kv.Get(ctx, "cases_v2")
	gt.NoError(t, err).Required()
	gt.Value(t, data).NotNil()

	legacy, err := kv.Get(ctx, usecase.DefaultCasesKey)
	gt.NoError(t, err).Required()
	gt.Value(t, legacy).Nil()
}
