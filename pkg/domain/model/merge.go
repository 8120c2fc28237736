package model

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// SectionPatch is a partial section update keyed by JSON field name
type SectionPatch map[string]json.RawMessage

// MergeSection applies patch to the named section field by field. Fields
// absent from the patch keep their value; present fields, including whole
// lists, replace the previous value. On error the study is left untouched.
func (s *CaseStudy) MergeSection(key types.SectionKey, patch SectionPatch) error {
	var err error
	switch key {
	case types.SectionGeneralInfo:
		err = mergeInto(&s.GeneralInfo, key, patch)
	case types.SectionFamilyInfo:
		err = mergeInto(&s.FamilyInfo, key, patch)
	case types.SectionMedicalHistory:
		err = mergeInto(&s.MedicalHistory, key, patch)
	case types.SectionDevelopmentalHistory:
		err = mergeInto(&s.DevelopmentalHistory, key, patch)
	case types.SectionCurrentPerformance:
		err = mergeInto(&s.CurrentPerformance, key, patch)
	case types.SectionFinalReport:
		err = mergeInto(&s.FinalReport, key, patch)
	default:
		return goerr.Wrap(ErrUnknownSection, "cannot merge", goerr.V(SectionKeyKey, key))
	}
	return err
}

func mergeInto[T any](dst *T, key types.SectionKey, patch SectionPatch) error {
	current, err := json.Marshal(dst)
	if err != nil {
		return goerr.Wrap(err, "failed to encode section", goerr.V(SectionKeyKey, key))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(current, &fields); err != nil {
		return goerr.Wrap(err, "failed to decode section", goerr.V(SectionKeyKey, key))
	}

	for name, value := range patch {
		if _, ok := fields[name]; !ok {
			return goerr.Wrap(ErrUnknownField, "field is not part of section",
				goerr.V(SectionKeyKey, key),
				goerr.V(FieldNameKey, name))
		}
		fields[name] = value
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return goerr.Wrap(ErrInvalidFieldData, "failed to encode merged section",
			goerr.V(SectionKeyKey, key),
			goerr.V("cause", err.Error()))
	}

	// Decode into a fresh value so no list backing array is shared with dst.
	var out T
	dec := json.NewDecoder(bytes.NewReader(merged))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return goerr.Wrap(ErrInvalidFieldData, "field value has wrong type",
			goerr.V(SectionKeyKey, key),
			goerr.V("cause", err.Error()))
	}

	*dst = out
	return nil
}

// NormalizeEntryIDs assigns IDs to list entries of the named section that
// have none and rejects duplicate IDs within a list.
func (s *CaseStudy) NormalizeEntryIDs(key types.SectionKey) error {
	switch key {
	case types.SectionFamilyInfo:
		if err := normalizeIDs(key, s.FamilyInfo.Siblings,
			func(e *Sibling) *string { return &e.ID }); err != nil {
			return err
		}
		return normalizeIDs(key, s.FamilyInfo.RelativesConditionsDetails,
			func(e *RelativeWithCondition) *string { return &e.ID })
	case types.SectionMedicalHistory:
		return normalizeIDs(key, s.MedicalHistory.Medications,
			func(e *Medication) *string { return &e.ID })
	}
	return nil
}

func normalizeIDs[E any](key types.SectionKey, entries []E, idOf func(*E) *string) error {
	seen := make(map[string]struct{}, len(entries))
	for i := range entries {
		id := idOf(&entries[i])
		if *id == "" {
			*id = types.NewEntryID()
		}
		if _, dup := seen[*id]; dup {
			return goerr.Wrap(ErrDuplicateEntryID, "list entry IDs must be unique",
				goerr.V(SectionKeyKey, key),
				goerr.V(EntryIDKey, *id))
		}
		seen[*id] = struct{}{}
	}
	return nil
}
