package types

// Outcome reports what an id-addressed mutation did. A lookup miss is an
// outcome, not an error.
type Outcome string

const (
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeNotFound  Outcome = "not_found"
)

// Found reports whether the addressed record existed
func (o Outcome) Found() bool {
	return o == OutcomeUpdated || o == OutcomeUnchanged
}

func (o Outcome) String() string {
	return string(o)
}

// SaveStatus is the state shown by the "changes saved" indicator
type SaveStatus string

const (
	SaveStatusIdle  SaveStatus = "idle"
	SaveStatusSaved SaveStatus = "saved"
)

func (s SaveStatus) String() string {
	return string(s)
}
