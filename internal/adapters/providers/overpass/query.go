package overpass

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

type tagSelector struct {
	key   string
	value string
}

// facilitySelectors are the category tags searched around the origin,
// roughly in the order of how likely each is to offer HPV vaccination.
var facilitySelectors = []tagSelector{
	{"healthcare", "vaccination"},
	{"amenity", "hospital"},
	{"healthcare", "hospital"},
	{"amenity", "clinic"},
	{"healthcare", "clinic"},
	{"healthcare", "centre"},
	{"amenity", "health_centre"},
	{"healthcare", "birthing_centre"},
	{"amenity", "doctors"},
}

// BuildQuery returns the Overpass QL union of node and way clauses for every
// facility selector within radiusMeters of center. Ways are returned with
// their centroid via "out center".
func BuildQuery(center entities.Coordinates, radiusMeters int, serverTimeout time.Duration) string {
	lat := strconv.FormatFloat(center.Latitude, 'f', -1, 64)
	lng := strconv.FormatFloat(center.Longitude, 'f', -1, 64)
	around := fmt.Sprintf("(around:%d,%s,%s)", radiusMeters, lat, lng)

	timeoutSeconds := int(serverTimeout / time.Second)
	if timeoutSeconds <= 0 {
		timeoutSeconds = 25
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n(\n", timeoutSeconds)
	for _, sel := range facilitySelectors {
		for _, kind := range []string{"node", "way"} {
			fmt.Fprintf(&b, "  %s[%q=%q]%s;\n", kind, sel.key, sel.value, around)
		}
	}
	b.WriteString(");\nout center;\n")
	return b.String()
}
