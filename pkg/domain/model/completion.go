package model

import (
	"encoding/json"

	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// IsSectionComplete reports whether a section holds any data: a non-empty
// list, a true flag, a non-empty string or a non-zero number. A nil
// section is incomplete. This is a presence heuristic, not validation.
func IsSectionComplete(section any) bool {
	if section == nil {
		return false
	}

	raw, err := json.Marshal(section)
	if err != nil {
		return false
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}

	for _, v := range fields {
		if isTruthy(v) {
			return true
		}
	}
	return false
}

func isTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case []any:
		return len(val) > 0
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

// Completion evaluates every section of the study
func (s *CaseStudy) Completion() map[types.SectionKey]bool {
	result := make(map[types.SectionKey]bool, len(types.AllSectionKeys()))
	for _, key := range types.AllSectionKeys() {
		result[key] = IsSectionComplete(s.Section(key))
	}
	return result
}
