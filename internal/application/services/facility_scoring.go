package services

import "github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"

// ScoringRule awards Weight points when Match holds. When BoostNameKeywords
// is set and the name contains one of them, BoostWeight is awarded instead.
type ScoringRule struct {
	Name              string
	Weight            int
	Match             Matcher
	BoostWeight       int
	BoostNameKeywords []string
}

func (r ScoringRule) points(f facilityText) int {
	if !r.Match.matches(f) {
		return 0
	}
	if len(r.BoostNameKeywords) > 0 && containsAny(f.name, r.BoostNameKeywords) {
		return r.BoostWeight
	}
	return r.Weight
}

// ScoringTable is an additive set of rules estimating how likely a facility
// is to offer HPV vaccination. Rules are independent; a record can match
// several of them.
type ScoringTable struct {
	Rules []ScoringRule
}

// Score returns the total priority for a facility
func (t *ScoringTable) Score(tags map[string]string, name string) int {
	total, _ := t.ScoreBreakdown(tags, name)
	return total
}

// ScoreBreakdown returns the total priority and the rules that contributed to it
func (t *ScoringTable) ScoreBreakdown(tags map[string]string, name string) (int, []entities.PriorityReason) {
	f := newFacilityText(tags, name)
	total := 0
	var breakdown []entities.PriorityReason
	for _, rule := range t.Rules {
		p := rule.points(f)
		if p <= 0 {
			continue
		}
		total += p
		breakdown = append(breakdown, entities.PriorityReason{Rule: rule.Name, Points: p})
	}
	return total, breakdown
}

// GovernmentMatcher identifies facilities run by central, state or municipal bodies
var GovernmentMatcher = Matcher{
	Tags: map[string][]string{"operator:type": {"government"}},
	NameKeywords: []string{
		"government", "district", "municipal", "corporation",
		"phc", "chc", "primary health", "community health",
	},
	OperatorKeywords: []string{"government", "public"},
}

// KnownHealthcareChains are private hospital groups that commonly stock HPV vaccines
var KnownHealthcareChains = []string{
	"apollo", "fortis", "max", "manipal", "narayana", "aster", "care", "cloudnine",
}

// DefaultScoringTable returns the tuned rule set used for ranking
func DefaultScoringTable() *ScoringTable {
	return &ScoringTable{Rules: []ScoringRule{
		{
			Name:   "vaccination",
			Weight: 100,
			Match: Matcher{
				Tags:         map[string][]string{"healthcare": {"vaccination"}},
				NameKeywords: []string{"vaccination", "immunization"},
			},
		},
		{
			Name:   "hpv",
			Weight: 90,
			Match: Matcher{
				NameKeywords: []string{"hpv", "cervical", "gardasil", "cervavac"},
			},
		},
		{
			Name:   "womens_health",
			Weight: 75,
			Match: Matcher{
				Tags:         map[string][]string{"healthcare": {"birthing_centre"}},
				TagKeywords:  map[string][]string{"healthcare:speciality": {"gynecology", "obstetrics"}},
				NameKeywords: []string{"women", "maternity", "gynecology", "obstetric"},
			},
		},
		{
			Name:   "government",
			Weight: 65,
			Match:  GovernmentMatcher,
		},
		{
			Name:   "hospital",
			Weight: 45,
			Match: Matcher{
				Tags: map[string][]string{"amenity": {"hospital"}, "healthcare": {"hospital"}},
			},
			BoostWeight:       55,
			BoostNameKeywords: []string{"medical college", "institute", "aiims", "multi", "super", "teaching"},
		},
		{
			Name:   "clinic",
			Weight: 35,
			Match: Matcher{
				Tags: map[string][]string{"amenity": {"clinic"}, "healthcare": {"clinic"}},
			},
		},
		{
			Name:   "doctors",
			Weight: 25,
			Match: Matcher{
				Tags: map[string][]string{"amenity": {"doctors"}},
			},
		},
		{
			Name:   "emergency",
			Weight: 15,
			Match: Matcher{
				Tags: map[string][]string{"emergency": {"yes"}},
			},
		},
		{
			Name:   "known_chain",
			Weight: 20,
			Match: Matcher{
				NameKeywords:     KnownHealthcareChains,
				OperatorKeywords: KnownHealthcareChains,
			},
		},
	}}
}

// IsGovernmentFacility reports whether the record looks government-run
func IsGovernmentFacility(tags map[string]string, name string) bool {
	return GovernmentMatcher.matches(newFacilityText(tags, name))
}
