package types

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CaseID identifies a case record. New IDs are UUIDv7; IDs written by
// older clients have the form "case_<unix millis>".
type CaseID string

const legacyCaseIDPrefix = "case_"

// NewCaseID returns a fresh, never reused case ID
func NewCaseID() CaseID {
	return CaseID(uuid.Must(uuid.NewV7()).String())
}

func (id CaseID) String() string {
	return string(id)
}

// LegacyTimestamp extracts the creation time encoded in a legacy ID.
// It returns false when the ID does not carry a parseable timestamp.
func (id CaseID) LegacyTimestamp() (time.Time, bool) {
	s := string(id)
	if !strings.HasPrefix(s, legacyCaseIDPrefix) {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(strings.TrimPrefix(s, legacyCaseIDPrefix), 10, 64)
	if err != nil || millis <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// NewEntryID returns an ID for an entry of a nested list (siblings,
// medications, relatives).
func NewEntryID() string {
	return uuid.NewString()
}
