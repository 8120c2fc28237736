package model

// CaseSummary is the drafted output of the generative summary service
type CaseSummary struct {
	Summary           string `json:"geminiSummary"`
	SpecialistOpinion string `json:"specialistOpinion"`
	Recommendations   string `json:"recommendations"`
}
