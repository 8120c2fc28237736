package usecase

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/interfaces"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/utils/errutil"
	"github.com/secmon-lab/casebook/pkg/utils/logging"
)

// ageField is derived from birthDate and never accepted from callers
const ageField = "age"

// CaseUseCase owns the ordered case list and the active case. Every
// mutation replaces the affected record and writes the whole list through
// to the KVStore.
type CaseUseCase struct {
	kv       interfaces.KVStore
	key      string
	clock    func() time.Time
	tracker  *SaveStatusTracker
	template func() model.CaseStudy

	mu       sync.Mutex
	records  []model.CaseRecord
	activeID types.CaseID
}

func newCaseUseCase(ctx context.Context, kv interfaces.KVStore, key string, clock func() time.Time, tracker *SaveStatusTracker, template func() model.CaseStudy) *CaseUseCase {
	records := Load(ctx, kv, key, func() []model.CaseRecord {
		return []model.CaseRecord{}
	})

	logging.From(ctx).Debug("case list loaded", "count", len(records), "key", key)

	return &CaseUseCase{
		kv:       kv,
		key:      key,
		clock:    clock,
		tracker:  tracker,
		template: template,
		records:  records,
	}
}

// persist writes the current list. The caller must hold uc.mu. The write
// is detached from ctx cancellation so an applied change always reaches the
// store. A failed write is reported but the in-memory state is kept.
func (uc *CaseUseCase) persist(ctx context.Context) {
	if err := Save(context.WithoutCancel(ctx), uc.kv, uc.key, uc.records); err != nil {
		_ = errutil.Handle(ctx, err, "failed to persist case list")
	}
}

func (uc *CaseUseCase) indexOf(id types.CaseID) int {
	return slices.IndexFunc(uc.records, func(r model.CaseRecord) bool {
		return r.ID == id
	})
}

// List returns copies of all records in insertion order
func (uc *CaseUseCase) List(ctx context.Context) []model.CaseRecord {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]model.CaseRecord, len(uc.records))
	for i, r := range uc.records {
		out[i] = r.Clone()
	}
	return out
}

// Create appends a record built from the empty template and makes it the
// active case
func (uc *CaseUseCase) Create(ctx context.Context) model.CaseRecord {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	rec := model.CaseRecord{
		ID:        types.NewCaseID(),
		CreatedAt: uc.clock(),
		Study:     uc.template().Clone(),
	}
	uc.records = append(uc.records, rec)
	uc.activeID = rec.ID
	uc.persist(ctx)

	logging.From(ctx).Info("case created", "case_id", rec.ID)
	return rec.Clone()
}

func (uc *CaseUseCase) Find(ctx context.Context, id types.CaseID) (model.CaseRecord, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexOf(id)
	if idx < 0 {
		return model.CaseRecord{}, false
	}
	return uc.records[idx].Clone(), true
}

// UpdateSection merges patch into one section of the case. An unknown id
// is reported as OutcomeNotFound without error. An invalid patch returns an
// error and leaves the case unchanged.
func (uc *CaseUseCase) UpdateSection(ctx context.Context, id types.CaseID, section types.SectionKey, patch model.SectionPatch) (types.Outcome, error) {
	if !section.IsValid() {
		return types.OutcomeUnchanged, goerr.Wrap(model.ErrUnknownSection, "cannot update case",
			goerr.V(CaseIDKey, id),
			goerr.V(model.SectionKeyKey, section))
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexOf(id)
	if idx < 0 {
		return types.OutcomeNotFound, nil
	}

	if section == types.SectionGeneralInfo {
		patch = maps.Clone(patch)
		delete(patch, ageField)
	}

	updated := uc.records[idx].Clone()
	if err := updated.Study.MergeSection(section, patch); err != nil {
		return types.OutcomeUnchanged, goerr.Wrap(err, "failed to merge section", goerr.V(CaseIDKey, id))
	}
	if err := updated.Study.NormalizeEntryIDs(section); err != nil {
		return types.OutcomeUnchanged, goerr.Wrap(err, "failed to normalize list entries", goerr.V(CaseIDKey, id))
	}
	if section == types.SectionGeneralInfo {
		deriveAge(&updated.Study, uc.clock())
	}

	uc.records[idx] = updated
	uc.persist(ctx)
	uc.tracker.Mark()

	return types.OutcomeUpdated, nil
}

// deriveAge recomputes the age when a birth date is set. A cleared birth
// date leaves the previous age in place.
func deriveAge(study *model.CaseStudy, now time.Time) bool {
	if study.GeneralInfo.BirthDate == "" {
		return false
	}
	age := model.DeriveAge(study.GeneralInfo.BirthDate, now)
	if age == study.GeneralInfo.Age {
		return false
	}
	study.GeneralInfo.Age = age
	return true
}

// RefreshDerived recomputes derived fields against the current clock and
// writes only when something changed
func (uc *CaseUseCase) RefreshDerived(ctx context.Context, id types.CaseID) (types.Outcome, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexOf(id)
	if idx < 0 {
		return types.OutcomeNotFound, nil
	}

	updated := uc.records[idx].Clone()
	if !deriveAge(&updated.Study, uc.clock()) {
		return types.OutcomeUnchanged, nil
	}

	uc.records[idx] = updated
	uc.persist(ctx)
	uc.tracker.Mark()
	return types.OutcomeUpdated, nil
}

// Delete removes the case and clears the active selection when it pointed
// at it. Callers are expected to have confirmed the deletion.
func (uc *CaseUseCase) Delete(ctx context.Context, id types.CaseID) types.Outcome {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexOf(id)
	if idx < 0 {
		return types.OutcomeNotFound
	}

	uc.records = slices.Delete(uc.records, idx, idx+1)
	if uc.activeID == id {
		uc.activeID = ""
	}
	uc.persist(ctx)

	logging.From(ctx).Info("case deleted", "case_id", id)
	return types.OutcomeUpdated
}

func (uc *CaseUseCase) Select(ctx context.Context, id types.CaseID) types.Outcome {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.indexOf(id) < 0 {
		return types.OutcomeNotFound
	}
	if uc.activeID == id {
		return types.OutcomeUnchanged
	}
	uc.activeID = id
	return types.OutcomeUpdated
}

func (uc *CaseUseCase) ClearActive(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.activeID = ""
}

// Active returns the selected case. A selection whose case no longer exists
// is treated as no selection.
func (uc *CaseUseCase) Active(ctx context.Context) (model.CaseRecord, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.activeID == "" {
		return model.CaseRecord{}, false
	}
	idx := uc.indexOf(uc.activeID)
	if idx < 0 {
		return model.CaseRecord{}, false
	}
	return uc.records[idx].Clone(), true
}

// Suggestions aggregates autocomplete values over the current list
func (uc *CaseUseCase) Suggestions(ctx context.Context) model.AutocompleteSuggestions {
	return ComputeSuggestions(uc.List(ctx))
}

// Dashboard computes list statistics at the current clock
func (uc *CaseUseCase) Dashboard(ctx context.Context) model.Dashboard {
	return ComputeDashboard(uc.List(ctx), uc.clock())
}

// SaveStatus reports the save indicator state
func (uc *CaseUseCase) SaveStatus() types.SaveStatus {
	return uc.tracker.Status()
}

// fieldPatch builds a section patch from field values
func fieldPatch(fields map[string]any) (model.SectionPatch, error) {
	patch := make(model.SectionPatch, len(fields))
	for name, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode field", goerr.V(model.FieldNameKey, name))
		}
		patch[name] = raw
	}
	return patch, nil
}
