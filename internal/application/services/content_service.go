package services

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

//go:embed data/content.yaml
var defaultContent []byte

// ContentService serves the static educational content
type ContentService struct {
	content   *entities.Content
	checklist map[string]struct{}
}

// NewContentService parses the embedded content document
func NewContentService() (*ContentService, error) {
	return NewContentServiceFromYAML(defaultContent)
}

// NewContentServiceFromYAML parses a content document
func NewContentServiceFromYAML(data []byte) (*ContentService, error) {
	var content entities.Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}

	checklist := make(map[string]struct{}, len(content.Checklist))
	for _, item := range content.Checklist {
		if item.ID == "" {
			return nil, fmt.Errorf("checklist item %q has no id", item.Label)
		}
		if _, dup := checklist[item.ID]; dup {
			return nil, fmt.Errorf("duplicate checklist item id %q", item.ID)
		}
		checklist[item.ID] = struct{}{}
	}

	return &ContentService{content: &content, checklist: checklist}, nil
}

// MythsFacts returns the myth and fact pairs
func (s *ContentService) MythsFacts() []entities.MythFact {
	return s.content.MythsFacts
}

// FAQ returns the frequently asked questions
func (s *ContentService) FAQ() []entities.FAQItem {
	return s.content.FAQ
}

// Timeline returns the prevention timeline
func (s *ContentService) Timeline() []entities.TimelineEvent {
	return s.content.Timeline
}

// Checklist returns the prevention checklist catalogue
func (s *ContentService) Checklist() []entities.ChecklistItem {
	return s.content.Checklist
}

// ChecklistProgress computes progress from the completed item ids held by the
// client. Unknown and repeated ids are ignored.
func (s *ContentService) ChecklistProgress(completed []string) entities.ChecklistProgress {
	seen := make(map[string]struct{}, len(completed))
	items := make([]string, 0, len(completed))
	for _, id := range completed {
		if _, known := s.checklist[id]; !known {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, id)
	}

	total := len(s.content.Checklist)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(len(items)) / float64(total) * 100))
	}

	return entities.ChecklistProgress{
		Completed:  len(items),
		Total:      total,
		Percentage: percentage,
		Summary:    fmt.Sprintf("%d/%d completed (%d%%)", len(items), total, percentage),
		Items:      items,
	}
}
