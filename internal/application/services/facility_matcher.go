package services

import "strings"

// facilityText is the normalised view of a record that rules match against.
type facilityText struct {
	tags     map[string]string
	name     string
	operator string
}

func newFacilityText(tags map[string]string, name string) facilityText {
	if tags == nil {
		tags = map[string]string{}
	}
	return facilityText{
		tags:     tags,
		name:     strings.ToLower(name),
		operator: strings.ToLower(tags["operator"]),
	}
}

// Matcher describes the tag values and keywords that satisfy a rule. A
// Matcher matches when any one of its conditions holds.
type Matcher struct {
	// Tags holds exact tag values, e.g. amenity -> [hospital]. Values are
	// trimmed and compared case-insensitively, so "Hospital" matches hospital.
	Tags map[string][]string
	// TagKeywords holds lower-case substrings searched in tag values.
	TagKeywords map[string][]string
	// NameKeywords are lower-case substrings searched in the facility name.
	NameKeywords []string
	// OperatorKeywords are lower-case substrings searched in the operator tag.
	OperatorKeywords []string
}

func (m Matcher) matches(f facilityText) bool {
	for key, values := range m.Tags {
		actual := strings.TrimSpace(f.tags[key])
		if actual == "" {
			continue
		}
		for _, v := range values {
			if strings.EqualFold(actual, v) {
				return true
			}
		}
	}
	for key, keywords := range m.TagKeywords {
		if containsAny(strings.ToLower(f.tags[key]), keywords) {
			return true
		}
	}
	return containsAny(f.name, m.NameKeywords) || containsAny(f.operator, m.OperatorKeywords)
}

func containsAny(s string, keywords []string) bool {
	if s == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
