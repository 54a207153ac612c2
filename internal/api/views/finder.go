package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

// Badge is the priority label shown on a facility card
type Badge struct {
	Label string
	Class string
}

// PriorityBadge maps a priority score to its display badge
func PriorityBadge(priority int) Badge {
	switch {
	case priority >= 85:
		return Badge{Label: "HIGH PRIORITY", Class: "priority-high"}
	case priority >= 60:
		return Badge{Label: "RECOMMENDED", Class: "priority-recommended"}
	case priority >= 35:
		return Badge{Label: "GOOD OPTION", Class: "priority-good"}
	default:
		return Badge{Label: "AVAILABLE", Class: "priority-available"}
	}
}

var typeColors = map[entities.FacilityType]string{
	entities.FacilityTypeVaccinationCenter:  "#ff9800",
	entities.FacilityTypeWomensHealth:       "#e91e63",
	entities.FacilityTypeHospital:           "#f44336",
	entities.FacilityTypeClinic:             "#4CAF50",
	entities.FacilityTypeMedicalPractice:    "#9c27b0",
	entities.FacilityTypeHealthCenter:       "#2196F3",
	entities.FacilityTypeHealthcareFacility: "#607d8b",
}

// TypeColor returns the chip colour for a facility category
func TypeColor(t entities.FacilityType) string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return typeColors[entities.FacilityTypeHealthcareFacility]
}

var funcs = template.FuncMap{
	"badge": PriorityBadge,
	"km": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
	// Colours come from the fixed table above.
	"typeStyle": func(t entities.FacilityType) template.CSS {
		return template.CSS("background-color: " + TypeColor(t))
	},
	// tel: is not on the html/template URL allowlist; PhoneLink output is
	// restricted to digits and '+'.
	"tel": func(link string) template.URL {
		if !strings.HasPrefix(link, "tel:") {
			return template.URL("#")
		}
		return template.URL(link)
	},
}

// Renderer renders the vaccination finder HTML fragments
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded finder templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("finder").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse finder templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Loading renders the in-progress indicator
func (r *Renderer) Loading(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "loading", nil)
}

// Results renders a search result, falling back to the empty view when the
// result holds no facilities.
func (r *Renderer) Results(w io.Writer, result *entities.FacilitySearchResult) error {
	if result == nil || len(result.Facilities) == 0 {
		location := ""
		if result != nil {
			location = result.Location
		}
		return r.NoResults(w, location)
	}
	return r.tmpl.ExecuteTemplate(w, "results", result)
}

// NoResults renders the empty-result guidance
func (r *Renderer) NoResults(w io.Writer, location string) error {
	return r.tmpl.ExecuteTemplate(w, "no_results", struct {
		Location    string
		Suggestions []string
	}{
		Location:    location,
		Suggestions: entities.NoResultsSuggestions,
	})
}

// Error renders a failure message with an optional retry link
func (r *Renderer) Error(w io.Writer, message, retryURL string) error {
	return r.tmpl.ExecuteTemplate(w, "error", struct {
		Message  string
		RetryURL string
	}{
		Message:  message,
		RetryURL: retryURL,
	})
}
