package services

import "github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"

// ClassificationRule assigns Type when Match holds
type ClassificationRule struct {
	Type  entities.FacilityType
	Match Matcher
}

// classificationRules are evaluated in order; the first match wins.
var classificationRules = []ClassificationRule{
	{
		Type: entities.FacilityTypeVaccinationCenter,
		Match: Matcher{
			Tags:         map[string][]string{"healthcare": {"vaccination"}},
			NameKeywords: []string{"vaccination", "immunization"},
		},
	},
	{
		Type: entities.FacilityTypeWomensHealth,
		Match: Matcher{
			Tags:         map[string][]string{"healthcare": {"birthing_centre"}},
			NameKeywords: []string{"women", "gynecology", "maternity"},
		},
	},
	{
		Type:  entities.FacilityTypeHospital,
		Match: Matcher{Tags: map[string][]string{"amenity": {"hospital"}, "healthcare": {"hospital"}}},
	},
	{
		Type:  entities.FacilityTypeClinic,
		Match: Matcher{Tags: map[string][]string{"amenity": {"clinic"}, "healthcare": {"clinic"}}},
	},
	{
		Type:  entities.FacilityTypeMedicalPractice,
		Match: Matcher{Tags: map[string][]string{"amenity": {"doctors"}}},
	},
	{
		Type:  entities.FacilityTypeHealthCenter,
		Match: Matcher{Tags: map[string][]string{"healthcare": {"centre"}, "amenity": {"health_centre"}}},
	},
}

// ClassifyFacility maps a record's tags and name to a display category
func ClassifyFacility(tags map[string]string, name string) entities.FacilityType {
	f := newFacilityText(tags, name)
	for _, rule := range classificationRules {
		if rule.Match.matches(f) {
			return rule.Type
		}
	}
	return entities.FacilityTypeHealthcareFacility
}
