package types

import "fmt"

// SectionKey identifies one of the fixed sections of a case study
type SectionKey string

const (
	SectionGeneralInfo          SectionKey = "generalInfo"
	SectionFamilyInfo           SectionKey = "familyInfo"
	SectionMedicalHistory       SectionKey = "medicalHistory"
	SectionDevelopmentalHistory SectionKey = "developmentalHistory"
	SectionCurrentPerformance   SectionKey = "currentPerformance"
	SectionFinalReport          SectionKey = "finalReport"
)

// AllSectionKeys returns all section keys in form order
func AllSectionKeys() []SectionKey {
	return []SectionKey{
		SectionGeneralInfo,
		SectionFamilyInfo,
		SectionMedicalHistory,
		SectionDevelopmentalHistory,
		SectionCurrentPerformance,
		SectionFinalReport,
	}
}

// IsValid checks if the section key is one of the known sections
func (k SectionKey) IsValid() bool {
	switch k {
	case SectionGeneralInfo,
		SectionFamilyInfo,
		SectionMedicalHistory,
		SectionDevelopmentalHistory,
		SectionCurrentPerformance,
		SectionFinalReport:
		return true
	default:
		return false
	}
}

// String returns the string representation of the section key
func (k SectionKey) String() string {
	return string(k)
}

// ParseSectionKey parses a string into a SectionKey
func ParseSectionKey(s string) (SectionKey, error) {
	key := SectionKey(s)
	if !key.IsValid() {
		return "", fmt.Errorf("invalid section key: %s", s)
	}
	return key, nil
}
