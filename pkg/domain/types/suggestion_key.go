package types

// SuggestionKey names one autocomplete suggestion set
type SuggestionKey string

const (
	SuggestNationalities          SuggestionKey = "nationalities"
	SuggestBirthPlaces            SuggestionKey = "birthPlaces"
	SuggestGuardianRelations      SuggestionKey = "guardianRelations"
	SuggestReferralSources        SuggestionKey = "referralSources"
	SuggestReferralReasons        SuggestionKey = "referralReasons"
	SuggestFatherEducations       SuggestionKey = "fatherEducations"
	SuggestFatherProfessions      SuggestionKey = "fatherProfessions"
	SuggestMotherEducations       SuggestionKey = "motherEducations"
	SuggestMotherProfessions      SuggestionKey = "motherProfessions"
	SuggestParentsRelationships   SuggestionKey = "parentsRelationships"
	SuggestWhoChildLivesWiths     SuggestionKey = "whoChildLivesWiths"
	SuggestFamilyPressures        SuggestionKey = "familyPressures"
	SuggestPregnancyTypes         SuggestionKey = "pregnancyTypes"
	SuggestBirthTypes             SuggestionKey = "birthTypes"
	SuggestPregnancyComplications SuggestionKey = "pregnancyComplications"
	SuggestPostNatalIssues        SuggestionKey = "postNatalIssues"
	SuggestUnusualGrowthSymptoms  SuggestionKey = "unusualGrowthSymptoms"
	SuggestLanguageRegressions    SuggestionKey = "languageRegressions"
	SuggestSelfCareSkills         SuggestionKey = "selfCareSkills"
	SuggestSocialSkills           SuggestionKey = "socialSkills"
	SuggestCommunicationSkills    SuggestionKey = "communicationSkills"
	SuggestAcademicSkills         SuggestionKey = "academicSkills"
	SuggestMotorSkills            SuggestionKey = "motorSkills"
	SuggestSensoryProfiles        SuggestionKey = "sensoryProfiles"
	SuggestChildInterests         SuggestionKey = "childInterests"
	SuggestChildDislikes          SuggestionKey = "childDislikes"
)

// AllSuggestionKeys returns every tracked suggestion key
func AllSuggestionKeys() []SuggestionKey {
	return []SuggestionKey{
		SuggestNationalities,
		SuggestBirthPlaces,
		SuggestGuardianRelations,
		SuggestReferralSources,
		SuggestReferralReasons,
		SuggestFatherEducations,
		SuggestFatherProfessions,
		SuggestMotherEducations,
		SuggestMotherProfessions,
		SuggestParentsRelationships,
		SuggestWhoChildLivesWiths,
		SuggestFamilyPressures,
		SuggestPregnancyTypes,
		SuggestBirthTypes,
		SuggestPregnancyComplications,
		SuggestPostNatalIssues,
		SuggestUnusualGrowthSymptoms,
		SuggestLanguageRegressions,
		SuggestSelfCareSkills,
		SuggestSocialSkills,
		SuggestCommunicationSkills,
		SuggestAcademicSkills,
		SuggestMotorSkills,
		SuggestSensoryProfiles,
		SuggestChildInterests,
		SuggestChildDislikes,
	}
}
