package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

func TestNewCaseStudy_NoAliasing(t *testing.T) {
	a := model.NewCaseStudy()
	b := model.NewCaseStudy()

	a.FamilyInfo.Siblings = append(a.FamilyInfo.Siblings, model.Sibling{ID: "s1", Name: "Ali"})
	a.MedicalHistory.Medications = append(a.MedicalHistory.Medications, model.Medication{ID: "m1"})

	gt.Array(t, b.FamilyInfo.Siblings).Length(0)
	gt.Array(t, b.MedicalHistory.Medications).Length(0)
	gt.Value(t, b).Equal(model.NewCaseStudy())
}

func TestCaseStudy_Clone(t *testing.T) {
	orig := model.NewCaseStudy()
	orig.FamilyInfo.Siblings = []model.Sibling{{ID: "s1", Name: "Ali"}}
	orig.FamilyInfo.FamilyIncomeSource = []string{"salary"}

	cloned := orig.Clone()
	cloned.FamilyInfo.Siblings[0].Name = "Omar"
	cloned.FamilyInfo.FamilyIncomeSource[0] = "pension"

	gt.Value(t, orig.FamilyInfo.Siblings[0].Name).Equal("Ali")
	gt.Value(t, orig.FamilyInfo.FamilyIncomeSource[0]).Equal("salary")
}

func TestCaseRecord_CreatedTime(t *testing.T) {
	t.Run("explicit creation time wins", func(t *testing.T) {
		now := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
		rec := model.CaseRecord{ID: "case_1", CreatedAt: now}
		ts, ok := rec.CreatedTime()
		gt.Bool(t, ok).True()
		gt.Bool(t, ts.Equal(now)).True()
	})

	t.Run("falls back to legacy ID", func(t *testing.T) {
		rec := model.CaseRecord{ID: "case_1700000000000"}
		ts, ok := rec.CreatedTime()
		gt.Bool(t, ok).True()
		gt.Value(t, ts.UnixMilli()).Equal(int64(1700000000000))
	})

	t.Run("unknown when neither is present", func(t *testing.T) {
		rec := model.CaseRecord{ID: types.NewCaseID()}
		_, ok := rec.CreatedTime()
		gt.Bool(t, ok).False()
	})
}

func TestCaseRecord_JSONRoundTrip(t *testing.T) {
	rec := model.CaseRecord{
		ID:        types.NewCaseID(),
		CreatedAt: time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC),
		Study:     model.NewCaseStudy(),
	}
	rec.Study.GeneralInfo.ChildFullName = "سارة"
	rec.Study.FamilyInfo.ParentsSeparated = true
	rec.Study.FamilyInfo.Siblings = []model.Sibling{{ID: "s1", Name: "Ali", Age: "7"}}
	rec.Study.MedicalHistory.Medications = []model.Medication{{ID: "m1", Name: "Iron", Dose: "5ml"}}
	rec.Study.FinalReport.Recommendations = "- speech therapy\n- OT"

	raw, err := json.Marshal([]model.CaseRecord{rec})
	gt.NoError(t, err).Required()

	var decoded []model.CaseRecord
	gt.NoError(t, json.Unmarshal(raw, &decoded)).Required()
	gt.Array(t, decoded).Length(1).Required()
	gt.Value(t, decoded[0].ID).Equal(rec.ID)
	gt.Bool(t, decoded[0].CreatedAt.Equal(rec.CreatedAt)).True()
	gt.Value(t, decoded[0].Study).Equal(rec.Study)
}

func TestCaseRecord_LegacyBlob(t *testing.T) {
	blob := `[{"id":"case_1700000000000","study":{"generalInfo":{"childFullName":"Lina","referralSource":"school"},"familyInfo":{"siblings":[]}}}]`

	var records []model.CaseRecord
	gt.NoError(t, json.Unmarshal([]byte(blob), &records)).Required()
	gt.Array(t, records).Length(1).Required()
	gt.Value(t, records[0].Study.GeneralInfo.ChildFullName).Equal("Lina")
	gt.Bool(t, records[0].CreatedAt.IsZero()).True()

	_, ok := records[0].CreatedTime()
	gt.Bool(t, ok).True()
}
