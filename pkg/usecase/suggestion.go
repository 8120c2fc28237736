package usecase

import (
	"slices"
	"strings"

	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/domain/types"
)

// ComputeSuggestions collects the distinct trimmed values of the free-text
// fields that offer autocomplete. Every key is present in the result and
// each list is sorted.
func ComputeSuggestions(records []model.CaseRecord) model.AutocompleteSuggestions {
	sets := make(map[types.SuggestionKey]map[string]struct{})
	for _, key := range types.AllSuggestionKeys() {
		sets[key] = make(map[string]struct{})
	}

	add := func(key types.SuggestionKey, value string) {
		if v := strings.TrimSpace(value); v != "" {
			sets[key][v] = struct{}{}
		}
	}

	for _, r := range records {
		g := r.Study.GeneralInfo
		add(types.SuggestNationalities, g.Nationality)
		add(types.SuggestBirthPlaces, g.BirthPlace)
		add(types.SuggestGuardianRelations, g.GuardianRelation)
		add(types.SuggestReferralSources, g.ReferralSource)
		add(types.SuggestReferralReasons, g.ReferralReason)

		f := r.Study.FamilyInfo
		add(types.SuggestFatherEducations, f.FatherEducation)
		add(types.SuggestFatherProfessions, f.FatherProfession)
		add(types.SuggestMotherEducations, f.MotherEducation)
		add(types.SuggestMotherProfessions, f.MotherProfession)
		add(types.SuggestParentsRelationships, f.ParentsRelationship)
		add(types.SuggestWhoChildLivesWiths, f.WhoChildLivesWith)
		add(types.SuggestFamilyPressures, f.FamilyPressures)

		m := r.Study.MedicalHistory
		add(types.SuggestPregnancyTypes, m.PregnancyType)
		add(types.SuggestBirthTypes, m.BirthType)
		add(types.SuggestPregnancyComplications, m.PregnancyComplications)
		add(types.SuggestPostNatalIssues, m.PostNatalIssues)

		d := r.Study.DevelopmentalHistory
		add(types.SuggestUnusualGrowthSymptoms, d.UnusualGrowthSymptoms)
		add(types.SuggestLanguageRegressions, d.LanguageRegression)

		p := r.Study.CurrentPerformance
		add(types.SuggestSelfCareSkills, p.SelfCareSkills)
		add(types.SuggestSocialSkills, p.SocialSkills)
		add(types.SuggestCommunicationSkills, p.CommunicationSkills)
		add(types.SuggestAcademicSkills, p.AcademicSkills)
		add(types.SuggestMotorSkills, p.MotorSkills)
		add(types.SuggestSensoryProfiles, p.SensoryProfile)
		add(types.SuggestChildInterests, p.ChildInterests)
		add(types.SuggestChildDislikes, p.ChildDislikes)
	}

	result := make(model.AutocompleteSuggestions, len(sets))
	for key, set := range sets {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		slices.Sort(values)
		result[key] = values
	}
	return result
}
