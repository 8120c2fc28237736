package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrUnknownSection   = goerr.New("unknown section")
	ErrUnknownField     = goerr.New("unknown field in section")
	ErrInvalidFieldData = goerr.New("invalid field data")
	ErrDuplicateEntryID = goerr.New("duplicate entry ID in list")
)

// Context keys for error values
const (
	SectionKeyKey = "section"
	FieldNameKey  = "field"
	EntryIDKey    = "entry_id"
)
