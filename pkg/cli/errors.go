package cli

import "errors"

var (
	errCaseIDRequired     = errors.New("case ID argument is required")
	errCaseNotFound       = errors.New("case not found")
	errUnknownFormat      = errors.New("unknown report format")
	errDeletionCancelled  = errors.New("deletion cancelled")
	errSummaryUnavailable = errors.New("summary service is not configured")
)
