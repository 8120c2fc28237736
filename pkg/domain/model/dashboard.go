package model

import "github.com/secmon-lab/casebook/pkg/domain/types"

// AutocompleteSuggestions maps a suggestion key to distinct prior values
type AutocompleteSuggestions map[types.SuggestionKey][]string

// SourceCount is one bar of the referral source histogram
type SourceCount struct {
	Source string `json:"label"`
	Count  int    `json:"count"`
}

// Dashboard holds the summary statistics of the case list
type Dashboard struct {
	TotalCount      int           `json:"totalCount"`
	NewThisMonth    int           `json:"newThisMonth"`
	ReferralSources []SourceCount `json:"referralSources"`
	UniqueSources   []string      `json:"uniqueSources"`
}
