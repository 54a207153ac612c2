package entities

// SearchStatus distinguishes a ranked result from the empty-result state
type SearchStatus string

const (
	SearchStatusOK        SearchStatus = "ok"
	SearchStatusNoResults SearchStatus = "no_results"
)

// ResolvedLocation is the outcome of geocoding free-text input
type ResolvedLocation struct {
	Query       string      `json:"query"`
	DisplayName string      `json:"displayName"`
	Coordinates Coordinates `json:"coordinates"`
}

// FacilitySearchResult is the ordered outcome of one facility search
type FacilitySearchResult struct {
	SearchID     string       `json:"searchId"`
	Location     string       `json:"location"`
	Origin       Coordinates  `json:"origin"`
	ResolvedName string       `json:"resolvedName,omitempty"`
	RadiusKm     float64      `json:"radiusKm"`
	Status       SearchStatus `json:"status"`
	Facilities   []Facility   `json:"facilities"`
	Count        int          `json:"count"`
	Suggestions  []string     `json:"suggestions,omitempty"`
}

// NoResultsSuggestions is the guidance shown when a search finds nothing
var NoResultsSuggestions = []string{
	"The location name wasn't recognized",
	"Try a nearby major city name instead",
	"Use your 6-digit PIN code for better results",
	"Limited healthcare facilities are mapped online in this area",
}
