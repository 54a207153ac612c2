package entities

// MythFact pairs a common misconception with the corresponding fact
type MythFact struct {
	Myth string `json:"myth" yaml:"myth"`
	Fact string `json:"fact" yaml:"fact"`
}

// FAQItem is a single question and answer
type FAQItem struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// TimelineEvent is one milestone in the prevention timeline
type TimelineEvent struct {
	Age         string `json:"age" yaml:"age"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// ChecklistItem is a prevention step the user can tick off on their device
type ChecklistItem struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Content is the complete educational content document
type Content struct {
	MythsFacts []MythFact      `json:"mythsFacts" yaml:"myths_facts"`
	FAQ        []FAQItem       `json:"faq" yaml:"faq"`
	Timeline   []TimelineEvent `json:"timeline" yaml:"timeline"`
	Checklist  []ChecklistItem `json:"checklist" yaml:"checklist"`
}

// ChecklistProgress summarises how many checklist items are complete
type ChecklistProgress struct {
	Completed  int      `json:"completed"`
	Total      int      `json:"total"`
	Percentage int      `json:"percentage"`
	Summary    string   `json:"summary"`
	Items      []string `json:"items"`
}
