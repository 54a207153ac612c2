package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

// DefaultResultLimit is the maximum number of facilities returned per search
const DefaultResultLimit = 10

const directionsBaseURL = "https://www.google.com/maps/dir/?api=1&destination="

// RankFacilities enriches raw records, orders them by priority (descending)
// then distance (ascending), and truncates to limit. Records without
// coordinates are dropped. A limit <= 0 keeps every record.
func RankFacilities(origin entities.Coordinates, records []entities.RawFacilityRecord, table *ScoringTable, limit int) []entities.Facility {
	if table == nil {
		table = DefaultScoringTable()
	}

	facilities := make([]entities.Facility, 0, len(records))
	for _, record := range records {
		if record.Coordinates == nil || !record.Coordinates.Valid() {
			continue
		}
		facilities = append(facilities, enrichFacility(origin, record, table))
	}

	sort.SliceStable(facilities, func(i, j int) bool {
		if facilities[i].Priority != facilities[j].Priority {
			return facilities[i].Priority > facilities[j].Priority
		}
		return facilities[i].DistanceKm < facilities[j].DistanceKm
	})

	if limit > 0 && len(facilities) > limit {
		facilities = facilities[:limit]
	}
	return facilities
}

func enrichFacility(origin entities.Coordinates, record entities.RawFacilityRecord, table *ScoringTable) entities.Facility {
	tags := record.Tags
	if tags == nil {
		tags = map[string]string{}
	}
	coords := *record.Coordinates
	name := FacilityName(tags)
	phone := firstTag(tags, "phone", "contact:phone")
	priority, basis := table.ScoreBreakdown(tags, name)

	return entities.Facility{
		ID:            record.ID,
		Name:          name,
		Type:          ClassifyFacility(tags, name),
		Address:       FormatAddress(tags),
		Phone:         phone,
		Website:       firstTag(tags, "website", "contact:website"),
		Coordinates:   coords,
		DistanceKm:    DistanceKm(origin, coords),
		Priority:      priority,
		PriorityBasis: basis,
		IsGovernment:  IsGovernmentFacility(tags, name),
		Operator:      strings.TrimSpace(tags["operator"]),
		DirectionsURL: DirectionsURL(coords),
		PhoneLink:     PhoneLink(phone),
	}
}

// FacilityName picks the display name from name, name:en or name:hi
func FacilityName(tags map[string]string) string {
	if name := firstTag(tags, "name", "name:en", "name:hi"); name != "" {
		return name
	}
	return entities.DefaultFacilityName
}

// FormatAddress joins the available address tags with ", "
func FormatAddress(tags map[string]string) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{
		firstTag(tags, "addr:housenumber"),
		firstTag(tags, "addr:street"),
		firstTag(tags, "addr:locality", "addr:suburb"),
		firstTag(tags, "addr:city"),
		firstTag(tags, "addr:state"),
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return entities.AddressNotAvailable
	}
	return strings.Join(parts, ", ")
}

// DirectionsURL returns a maps link routing to the given coordinates
func DirectionsURL(c entities.Coordinates) string {
	return fmt.Sprintf("%s%g,%g", directionsBaseURL, c.Latitude, c.Longitude)
}

// PhoneLink returns a tel: URI keeping only digits and '+'. It is empty when
// nothing dialable remains.
func PhoneLink(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "tel:" + b.String()
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(tags[k]); v != "" {
			return v
		}
	}
	return ""
}
