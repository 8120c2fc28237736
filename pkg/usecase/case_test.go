package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/domain/types"
	"github.com/secmon-lab/casebook/pkg/usecase"
)

func TestCaseUseCase_Create(t *testing.T) {
	uc, kv := newTestUseCases(t)
	ctx := context.Background()

	a := uc.Case.Create(ctx)
	b := uc.Case.Create(ctx)

	gt.Value(t, a.ID).NotEqual(b.ID)
	gt.Value(t, a.CreatedAt).Equal(testNow)
	gt.Array(t, a.Study.FamilyInfo.Siblings).Length(0)

	active, ok := uc.Case.Active(ctx)
	gt.Bool(t, ok).True()
	gt.Value(t, active.ID).Equal(b.ID)

	records := uc.Case.List(ctx)
	gt.Array(t, records).Length(2).Required()
	gt.Value(t, records[0].ID).Equal(a.ID)
	gt.Value(t, records[1].ID).Equal(b.ID)

	gt.Array(t, storedRecords(t, kv)).Length(2)
}

func TestCaseUseCase_CreateUsesIndependentTemplate(t *testing.T) {
	uc, _ := newTestUseCases(t)
	ctx := context.Background()

	a := uc.Case.Create(ctx)
	b := uc.Case.Create(ctx)

	outcome, err := uc.Case.UpdateSection(ctx, a.ID, types.SectionFamilyInfo, patchOf(t, map[string]any{
		"siblings": []map[string]any{{"name": "أحمد"}},
	}))
	gt.NoError(t, err).Required()
	gt.Value(t, outcome).Equal(types.OutcomeUpdated)

	got, ok := uc.Case.Find(ctx, b.ID)
	gt.Bool(t, ok).True()
	gt.Array(t, got.Study.FamilyInfo.Siblings).Length(0)
}

func TestCaseUseCase_CreateClonesCustomTemplate(t *testing.T) {
	shared := model.NewCaseStudy()
	shared.FamilyInfo.FamilyIncomeSource = []string{"راتب"}
	shared.FamilyInfo.Siblings = []model.Sibling{{ID: "s1", Name: "أحمد"}}

	uc, _ := newTestUseCases(t, usecase.WithCaseTemplate(func() model.CaseStudy {
		return shared
	}))
	ctx := context.Background()

	a := uc.Case.Create(ctx)

	// The template owner later reuses its slices in place
	shared.FamilyInfo.FamilyIncomeSource[0] = "معاش"
	shared.FamilyInfo.Siblings[0].Name = "changed"

	got, ok := uc.Case.Find(ctx, a.ID)
	gt.Bool(t, ok).True().Required()
	gt.Value(t, got.Study.FamilyInfo.FamilyIncomeSource).Equal([]string{"راتب"})
	gt.Value(t, got.Study.FamilyInfo.Siblings[0].Name).Equal("أحمد")
}

func TestCaseUseCase_ListReturnsCopies(t *testing.T) {
	uc, _ := newTestUseCases(t)
	ctx := context.Background()
	rec := uc.Case.Create(ctx)

	list := uc.Case.List(ctx)
	list[0].Study.GeneralInfo.ChildFullName = "mutated"

	got, ok := uc.Case.Find(ctx, rec.ID)
	gt.Bool(t, ok).True()
	gt.Value(t, got.Study.GeneralInfo.ChildFullName).Equal("")
}

func TestCaseUseCase_UpdateSection(t *testing.T) {
	t.Run("merges fields and keeps others", func(t *testing.T) {
		uc, kv := newTestUseCases(t)
		ctx := context.Background()
		rec := uc.Case.Create(ctx)

		_, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionGeneralInfo, patchOf(t, map[string]any{
			"childFullName": "سارة",
			"caseNumber":    "A-1",
		}))
		gt.NoError(t, err).Required()

		outcome, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionGeneralInfo, patchOf(t, map[string]any{
			"nationality": "سعودي",
		}))
		gt.NoError(t, err).Required()
		gt.Value(t, outcome).Equal(types.OutcomeUpdated)

		got, ok := uc.Case.Find(ctx, rec.ID)
		gt.Bool(t, ok).True()
		gt.Value(t, got.Study.GeneralInfo.ChildFullName).Equal("سارة")
		gt.Value(t, got.Study.GeneralInfo.CaseNumber).Equal("A-1")
		gt.Value(t, got.Study.GeneralInfo.Nationality).Equal("سعودي")

		stored := storedRecords(t, kv)
		gt.Array(t, stored).Length(1).Required()
		gt.Value(t, stored[0].Study.GeneralInfo.Nationality).Equal("سعودي")
	})

	t.Run("unknown id is not found without error", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		uc.Case.Create(ctx)

		outcome, err := uc.Case.UpdateSection(ctx, "missing", types.SectionGeneralInfo, patchOf(t, map[string]any{
			"childFullName": "x",
		}))
		gt.NoError(t, err)
		gt.Value(t, outcome).Equal(types.OutcomeNotFound)
		gt.Value(t, uc.Case.SaveStatus()).Equal(types.SaveStatusIdle)
	})

	t.Run("unknown field is rejected and nothing is applied", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		rec := uc.Case.Create(ctx)

		_, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionGeneralInfo, patchOf(t, map[string]any{
			"childFullName": "سارة",
			"favoriteColor": "blue",
		}))
		gt.Error(t, err).Is(model.ErrUnknownField)

		got, _ := uc.Case.Find(ctx, rec.ID)
		gt.Value(t, got.Study.GeneralInfo.ChildFullName).Equal("")
	})

	t.Run("wrong field type is rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		rec := uc.Case.Create(ctx)

		_, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionFamilyInfo, patchOf(t, map[string]any{
			"parentsSeparated": "yes",
		}))
		gt.Error(t, err).Is(model.ErrInvalidFieldData)
	})

	t.Run("unknown section is rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		rec := uc.Case.Create(ctx)

		_, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionKey("hobbies"), patchOf(t, map[string]any{}))
		gt.Error(t, err).Is(model.ErrUnknownSection)
	})

	t.Run("age is derived from birth date and cannot be written", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		rec := uc.Case.Create(ctx)

		_, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionGeneralInfo, patchOf(t, map[string]any{
			"age": "99",
		}))
		gt.NoError(t, err).Required()
		got, _ := uc.Case.Find(ctx, rec.ID)
		gt.Value(t, got.Study.GeneralInfo.Age).Equal("")

		_, err = uc.Case.UpdateSection(ctx, rec.ID, types.SectionGeneralInfo, patchOf(t, map[string]any{
			"birthDate": "2024-10-18",
			"age":       "99",
		}))
		gt.NoError(t, err).Required()
		got, _ = uc.Case.Find(ctx, rec.ID)
		gt.Value(t, got.Study.GeneralInfo.Age).Equal(model.DeriveAge("2024-10-18", testNow))
		gt.Value(t, got.Study.GeneralInfo.Age).NotEqual("")
	})

	t.Run("list entries get ids", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		rec := uc.Case.Create(ctx)

		_, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionMedicalHistory, patchOf(t, map[string]any{
			"medications": []map[string]any{{"name": "a"}, {"name": "b"}},
		}))
		gt.NoError(t, err).Required()

		got, _ := uc.Case.Find(ctx, rec.ID)
		meds := got.Study.MedicalHistory.Medications
		gt.Array(t, meds).Length(2).Required()
		gt.String(t, meds[0].ID).NotEqual("")
		gt.Value(t, meds[0].ID).NotEqual(meds[1].ID)
	})

	t.Run("duplicate entry ids are rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		rec := uc.Case.Create(ctx)

		_, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionFamilyInfo, patchOf(t, map[string]any{
			"siblings": []map[string]any{{"id": "s1"}, {"id": "s1"}},
		}))
		gt.Error(t, err).Is(model.ErrDuplicateEntryID)
	})

	t.Run("marks save status", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		rec := uc.Case.Create(ctx)

		_, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionFinalReport, patchOf(t, map[string]any{
			"recommendations": "متابعة",
		}))
		gt.NoError(t, err).Required()
		gt.Value(t, uc.Case.SaveStatus()).Equal(types.SaveStatusSaved)
	})

	t.Run("failed write keeps in-memory state", func(t *testing.T) {
		uc, kv := newTestUseCases(t)
		ctx := context.Background()
		rec := uc.Case.Create(ctx)

		kv.FailPuts(errors.New("quota exceeded"))
		outcome, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionGeneralInfo, patchOf(t, map[string]any{
			"childFullName": "سارة",
		}))
		gt.NoError(t, err).Required()
		gt.Value(t, outcome).Equal(types.OutcomeUpdated)

		got, _ := uc.Case.Find(ctx, rec.ID)
		gt.Value(t, got.Study.GeneralInfo.ChildFullName).Equal("سارة")
		gt.Value(t, storedRecords(t, kv)[0].Study.GeneralInfo.ChildFullName).Equal("")
	})
}

func TestCaseUseCase_RefreshDerived(t *testing.T) {
	uc, _ := newTestUseCases(t)
	ctx := context.Background()
	rec := uc.Case.Create(ctx)

	outcome, err := uc.Case.RefreshDerived(ctx, rec.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, outcome).Equal(types.OutcomeUnchanged)

	_, err = uc.Case.UpdateSection(ctx, rec.ID, types.SectionGeneralInfo, patchOf(t, map[string]any{
		"birthDate": "2020-01-01",
	}))
	gt.NoError(t, err).Required()

	outcome, err = uc.Case.RefreshDerived(ctx, rec.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, outcome).Equal(types.OutcomeUnchanged)

	outcome, err = uc.Case.RefreshDerived(ctx, "missing")
	gt.NoError(t, err).Required()
	gt.Value(t, outcome).Equal(types.OutcomeNotFound)
}

func TestCaseUseCase_RefreshDerivedUpdatesStaleAge(t *testing.T) {
	ctx := context.Background()
	now := testNow
	uc, _ := newTestUseCases(t, withMovingClock(&now))
	rec := uc.Case.Create(ctx)

	_, err := uc.Case.UpdateSection(ctx, rec.ID, types.SectionGeneralInfo, patchOf(t, map[string]any{
		"birthDate": "2025-10-18",
	}))
	gt.NoError(t, err).Required()
	before, _ := uc.Case.Find(ctx, rec.ID)

	now = now.AddDate(0, 2, 0)
	outcome, err := uc.Case.RefreshDerived(ctx, rec.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, outcome).Equal(types.OutcomeUpdated)

	after, _ := uc.Case.Find(ctx, rec.ID)
	gt.Value(t, after.Study.GeneralInfo.Age).NotEqual(before.Study.GeneralInfo.Age)
	gt.Value(t, after.Study.GeneralInfo.Age).Equal(model.DeriveAge("2025-10-18", now))
}

func TestCaseUseCase_Delete(t *testing.T) {
	t.Run("deleting active case clears selection", func(t *testing.T) {
		uc, kv := newTestUseCases(t)
		ctx := context.Background()
		a := uc.Case.Create(ctx)
		b := uc.Case.Create(ctx)

		gt.Value(t, uc.Case.Delete(ctx, b.ID)).Equal(types.OutcomeUpdated)
		_, ok := uc.Case.Active(ctx)
		gt.Bool(t, ok).False()

		records := uc.Case.List(ctx)
		gt.Array(t, records).Length(1).Required()
		gt.Value(t, records[0].ID).Equal(a.ID)
		gt.Array(t, storedRecords(t, kv)).Length(1)
	})

	t.Run("deleting another case keeps selection", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		ctx := context.Background()
		a := uc.Case.Create(ctx)
		b := uc.Case.Create(ctx)

		uc.Case.Delete(ctx, a.ID)
		active, ok := uc.Case.Active(ctx)
		gt.Bool(t, ok).True()
		gt.Value(t, active.ID).Equal(b.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		gt.Value(t, uc.Case.Delete(context.Background(), "missing")).Equal(types.OutcomeNotFound)
	})
}

func TestCaseUseCase_Selection(t *testing.T) {
	uc, _ := newTestUseCases(t)
	ctx := context.Background()
	a := uc.Case.Create(ctx)
	uc.Case.Create(ctx)

	gt.Value(t, uc.Case.Select(ctx, a.ID)).Equal(types.OutcomeUpdated)
	gt.Value(t, uc.Case.Select(ctx, a.ID)).Equal(types.OutcomeUnchanged)
	gt.Value(t, uc.Case.Select(ctx, "missing")).Equal(types.OutcomeNotFound)

	active, ok := uc.Case.Active(ctx)
	gt.Bool(t, ok).True()
	gt.Value(t, active.ID).Equal(a.ID)

	uc.Case.ClearActive(ctx)
	_, ok = uc.Case.Active(ctx)
	gt.Bool(t, ok).False()
}
