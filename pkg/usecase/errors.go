package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrSummarizerNotConfigured = errors.New("summary service is not configured")
	ErrInvalidLogo             = errors.New("logo must be a non-empty image")
	ErrLogoTooLarge            = errors.New("logo exceeds size limit")
)

// Context keys for error values
const (
	CaseIDKey     = "case_id"
	StorageKeyKey = "storage_key"
)
