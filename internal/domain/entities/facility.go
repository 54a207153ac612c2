package entities

// FacilityType is the human-readable category shown for a facility
type FacilityType string

const (
	FacilityTypeVaccinationCenter  FacilityType = "Vaccination Center"
	FacilityTypeWomensHealth       FacilityType = "Women's Health"
	FacilityTypeHospital           FacilityType = "Hospital"
	FacilityTypeClinic             FacilityType = "Clinic"
	FacilityTypeMedicalPractice    FacilityType = "Medical Practice"
	FacilityTypeHealthCenter       FacilityType = "Health Center"
	FacilityTypeHealthcareFacility FacilityType = "Healthcare Facility"
)

// FacilityTypes lists every category in display order
var FacilityTypes = []FacilityType{
	FacilityTypeVaccinationCenter,
	FacilityTypeWomensHealth,
	FacilityTypeHospital,
	FacilityTypeClinic,
	FacilityTypeMedicalPractice,
	FacilityTypeHealthCenter,
	FacilityTypeHealthcareFacility,
}

const (
	// DefaultFacilityName is used when a record carries no usable name tag
	DefaultFacilityName = "Healthcare Facility"

	// AddressNotAvailable is the sentinel for records without address tags
	AddressNotAvailable = "Address not available"

	// PhoneNotAvailable is the sentinel for records without a phone tag
	PhoneNotAvailable = "Phone not available"
)

// Coordinates represents geographical coordinates in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinates are within the WGS84 ranges
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// RawFacilityRecord is a single element returned by the facility query service
type RawFacilityRecord struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Coordinates *Coordinates      `json:"coordinates,omitempty"`
	Tags        map[string]string `json:"tags"`
}

// PriorityReason is the number of points one scoring rule contributed
type PriorityReason struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

// Facility is an enriched, display-ready facility
type Facility struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Type          FacilityType     `json:"type"`
	Address       string           `json:"address"`
	Phone         string           `json:"phone,omitempty"`
	Website       string           `json:"website,omitempty"`
	Coordinates   Coordinates      `json:"coordinates"`
	DistanceKm    float64          `json:"distanceKm"`
	Priority      int              `json:"priority"`
	PriorityBasis []PriorityReason `json:"priorityBasis,omitempty"`
	IsGovernment  bool             `json:"isGovernment"`
	Operator      string           `json:"operator,omitempty"`
	DirectionsURL string           `json:"directionsUrl"`
	PhoneLink     string           `json:"phoneLink,omitempty"`
}

// DisplayPhone returns the phone number or the not-available sentinel
func (f Facility) DisplayPhone() string {
	if f.Phone == "" {
		return PhoneNotAvailable
	}
	return f.Phone
}
