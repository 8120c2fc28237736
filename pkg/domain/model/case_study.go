package model

import (
	"slices"

	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// Gender values accepted by the general information section
const (
	GenderMale   = "ذكر"
	GenderFemale = "أنثى"
)

// CaseStudy is the fixed-shape aggregate of the six form sections.
// JSON names follow the stored blob format.
type CaseStudy struct {
	GeneralInfo          GeneralInfo          `json:"generalInfo"`
	FamilyInfo           FamilyInfo           `json:"familyInfo"`
	MedicalHistory       MedicalHistory       `json:"medicalHistory"`
	DevelopmentalHistory DevelopmentalHistory `json:"developmentalHistory"`
	CurrentPerformance   CurrentPerformance   `json:"currentPerformance"`
	FinalReport          FinalReport          `json:"finalReport"`
}

type GeneralInfo struct {
	CaseNumber       string `json:"caseNumber"`
	ChildFullName    string `json:"childFullName" masq:"secret"`
	Gender           string `json:"gender"`
	BirthDate        string `json:"birthDate"`
	Age              string `json:"age"`
	Nationality      string `json:"nationality"`
	BirthPlace       string `json:"birthPlace"`
	GuardianName     string `json:"guardianName" masq:"secret"`
	GuardianRelation string `json:"guardianRelation"`
	ContactHome      string `json:"contactHome" masq:"secret"`
	ContactMobile    string `json:"contactMobile" masq:"secret"`
	ContactWork      string `json:"contactWork" masq:"secret"`
	Address          string `json:"address" masq:"secret"`
	ReferralSource   string `json:"referralSource"`
	ReferralDate     string `json:"referralDate"`
	ReferralReason   string `json:"referralReason"`
}

type FamilyInfo struct {
	FatherName                 string                  `json:"fatherName" masq:"secret"`
	FatherBirthDate            string                  `json:"fatherBirthDate"`
	FatherEducation            string                  `json:"fatherEducation"`
	FatherProfession           string                  `json:"fatherProfession"`
	MotherName                 string                  `json:"motherName" masq:"secret"`
	MotherBirthDate            string                  `json:"motherBirthDate"`
	MotherEducation            string                  `json:"motherEducation"`
	MotherProfession           string                  `json:"motherProfession"`
	ParentsRelationship        string                  `json:"parentsRelationship"`
	WhoChildLivesWith          string                  `json:"whoChildLivesWith"`
	FamilyIncomeSource         []string                `json:"familyIncomeSource"`
	MonthlyIncome              string                  `json:"monthlyIncome"`
	ParentsSeparated           bool                    `json:"parentsSeparated"`
	FamilyPressures            string                  `json:"familyPressures"`
	Siblings                   []Sibling               `json:"siblings"`
	RelativesWithConditions    bool                    `json:"relativesWithConditions"`
	RelativesConditionsDetails []RelativeWithCondition `json:"relativesConditionsDetails"`
	RelativesConditionReport   string                  `json:"relativesConditionReport"`
}

type Sibling struct {
	ID             string `json:"id"`
	Name           string `json:"name" masq:"secret"`
	Gender         string `json:"gender"`
	BirthDate      string `json:"birthDate"`
	Age            string `json:"age"`
	HealthStatus   string `json:"healthStatus"`
	EducationLevel string `json:"educationLevel"`
	Profession     string `json:"profession"`
}

type RelativeWithCondition struct {
	ID           string `json:"id"`
	Condition    string `json:"condition"`
	Relationship string `json:"relationship"`
}

type MedicalHistory struct {
	MotherAgeAtPregnancy   string       `json:"motherAgeAtPregnancy"`
	PregnancyDuration      string       `json:"pregnancyDuration"`
	PregnancyType          string       `json:"pregnancyType"`
	PregnancyComplications string       `json:"pregnancyComplications"`
	BirthType              string       `json:"birthType"`
	BirthWeight            string       `json:"birthWeight"`
	BirthLength            string       `json:"birthLength"`
	OxygenDeprivation      bool         `json:"oxygenDeprivation"`
	ApgarScore             string       `json:"apgarScore"`
	UsedBirthTools         bool         `json:"usedBirthTools"`
	PostNatalIssues        string       `json:"postNatalIssues"`
	Incubator              bool         `json:"incubator"`
	IncubatorReason        string       `json:"incubatorReason"`
	IncubatorDuration      string       `json:"incubatorDuration"`
	Medications            []Medication `json:"medications"`
}

type Medication struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	Dose     string `json:"dose"`
	Duration string `json:"duration"`
	Effects  string `json:"effects"`
}

type DevelopmentalHistory struct {
	CrawlingAge           string `json:"crawlingAge"`
	SittingAge            string `json:"sittingAge"`
	WalkingAge            string `json:"walkingAge"`
	FirstWordAge          string `json:"firstWordAge"`
	FirstSentenceAge      string `json:"firstSentenceAge"`
	TeethingAge           string `json:"teethingAge"`
	UnusualGrowthSymptoms string `json:"unusualGrowthSymptoms"`
	LanguageRegression    string `json:"languageRegression"`
	RegressionAge         string `json:"regressionAge"`
}

type CurrentPerformance struct {
	SelfCareSkills      string `json:"selfCareSkills"`
	SocialSkills        string `json:"socialSkills"`
	CommunicationSkills string `json:"communicationSkills"`
	AcademicSkills      string `json:"academicSkills"`
	MotorSkills         string `json:"motorSkills"`
	SensoryProfile      string `json:"sensoryProfile"`
	ChildInterests      string `json:"childInterests"`
	ChildDislikes       string `json:"childDislikes"`
}

type FinalReport struct {
	SpecialistOpinion string `json:"specialistOpinion"`
	Recommendations   string `json:"recommendations"`
}

// NewCaseStudy returns the empty template used for new cases. Every call
// returns an independent value.
func NewCaseStudy() CaseStudy {
	return CaseStudy{
		FamilyInfo: FamilyInfo{
			FamilyIncomeSource:         []string{},
			Siblings:                   []Sibling{},
			RelativesConditionsDetails: []RelativeWithCondition{},
		},
		MedicalHistory: MedicalHistory{
			Medications: []Medication{},
		},
	}
}

// Clone returns a deep copy of the study. Nil lists stay nil.
func (s CaseStudy) Clone() CaseStudy {
	c := s
	c.FamilyInfo.FamilyIncomeSource = slices.Clone(s.FamilyInfo.FamilyIncomeSource)
	c.FamilyInfo.Siblings = slices.Clone(s.FamilyInfo.Siblings)
	c.FamilyInfo.RelativesConditionsDetails = slices.Clone(s.FamilyInfo.RelativesConditionsDetails)
	c.MedicalHistory.Medications = slices.Clone(s.MedicalHistory.Medications)
	return c
}

// Section returns the value of the named section, or nil for an unknown key
func (s *CaseStudy) Section(key types.SectionKey) any {
	switch key {
	case types.SectionGeneralInfo:
		return s.GeneralInfo
	case types.SectionFamilyInfo:
		return s.FamilyInfo
	case types.SectionMedicalHistory:
		return s.MedicalHistory
	case types.SectionDevelopmentalHistory:
		return s.DevelopmentalHistory
	case types.SectionCurrentPerformance:
		return s.CurrentPerformance
	case types.SectionFinalReport:
		return s.FinalReport
	default:
		return nil
	}
}

// SectionPtr returns a pointer to the named section for in-place decoding,
// or nil for an unknown key.
func (s *CaseStudy) SectionPtr(key types.SectionKey) any {
	switch key {
	case types.SectionGeneralInfo:
		return &s.GeneralInfo
	case types.SectionFamilyInfo:
		return &s.FamilyInfo
	case types.SectionMedicalHistory:
		return &s.MedicalHistory
	case types.SectionDevelopmentalHistory:
		return &s.DevelopmentalHistory
	case types.SectionCurrentPerformance:
		return &s.CurrentPerformance
	case types.SectionFinalReport:
		return &s.FinalReport
	default:
		return nil
	}
}
