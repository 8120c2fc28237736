package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model"
)

// Default storage keys, compatible with data saved by earlier versions
const (
	DefaultCasesKey    = "special_ed_case_files"
	DefaultBrandingKey = "special_ed_branding_settings"
)

type UseCases struct {
	Case     *CaseUseCase
	Summary  *SummaryUseCase
	Branding *BrandingUseCase

	tracker *SaveStatusTracker
}

type options struct {
	summarizer      interfaces.Summarizer
	clock           func() time.Time
	saveStatusDelay time.Duration
	casesKey        string
	brandingKey     string
	defaultBranding model.BrandingSettings
	template        func() model.CaseStudy
}

type Option func(*options)

func WithSummarizer(s interfaces.Summarizer) Option {
	return func(o *options) {
		o.summarizer = s
	}
}

func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func WithSaveStatusDelay(d time.Duration) Option {
	return func(o *options) {
		o.saveStatusDelay = d
	}
}

// WithStorageKeys overrides the KVStore keys. Empty values keep the
// defaults.
func WithStorageKeys(cases, branding string) Option {
	return func(o *options) {
		if cases != "" {
			o.casesKey = cases
		}
		if branding != "" {
			o.brandingKey = branding
		}
	}
}

// WithDefaultBranding sets the settings used until branding is first saved
func WithDefaultBranding(b model.BrandingSettings) Option {
	return func(o *options) {
		o.defaultBranding = b
	}
}

// WithCaseTemplate replaces the empty study used for new cases
func WithCaseTemplate(template func() model.CaseStudy) Option {
	return func(o *options) {
		o.template = template
	}
}

// New loads persisted state from kv and builds the use cases. Missing or
// unreadable state starts empty.
func New(ctx context.Context, kv interfaces.KVStore, opts ...Option) *UseCases {
	o := &options{
		clock:           time.Now,
		saveStatusDelay: DefaultSaveStatusDelay,
		casesKey:        DefaultCasesKey,
		brandingKey:     DefaultBrandingKey,
		template:        model.NewCaseStudy,
	}
	for _, opt := range opts {
		opt(o)
	}

	tracker := NewSaveStatusTracker(o.saveStatusDelay)
	cases := newCaseUseCase(ctx, kv, o.casesKey, o.clock, tracker, o.template)

	return &UseCases{
		Case:     cases,
		Summary:  newSummaryUseCase(cases, o.summarizer),
		Branding: newBrandingUseCase(ctx, kv, o.brandingKey, o.defaultBranding),
		tracker:  tracker,
	}
}

// Close stops background timers
func (uc *UseCases) Close() {
	uc.tracker.Stop()
}
