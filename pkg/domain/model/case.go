package model

import (
	"time"

	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// CaseRecord is one child's case study plus its identity
type CaseRecord struct {
	ID        types.CaseID `json:"id"`
	CreatedAt time.Time    `json:"createdAt,omitzero"`
	Study     CaseStudy    `json:"study"`
}

// Clone returns a deep copy of the record
func (c CaseRecord) Clone() CaseRecord {
	return CaseRecord{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		Study:     c.Study.Clone(),
	}
}

// CreatedTime returns the creation time of the record. Records stored
// before CreatedAt existed fall back to the timestamp embedded in their
// legacy ID; false is returned when neither is available.
func (c CaseRecord) CreatedTime() (time.Time, bool) {
	if !c.CreatedAt.IsZero() {
		return c.CreatedAt, true
	}
	return c.ID.LegacyTimestamp()
}

// DisplayName returns the child's name, or fallback when empty
func (c CaseRecord) DisplayName(fallback string) string {
	if c.Study.GeneralInfo.ChildFullName == "" {
		return fallback
	}
	return c.Study.GeneralInfo.ChildFullName
}
