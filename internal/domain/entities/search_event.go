package entities

import (
	"time"
)

// SearchEvent records the outcome of one facility search for analytics.
type SearchEvent struct {
	ID          string       `json:"id"`
	Query       string       `json:"query"`
	Status      SearchStatus `json:"status"`
	ResultCount int          `json:"result_count"`
	ErrorType   string       `json:"error_type,omitempty"`
	LatencyMs   int64        `json:"latency_ms"`
	Latitude    float64      `json:"latitude,omitempty"`
	Longitude   float64      `json:"longitude,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// SearchStatusFailed marks a search event that ended in an error
const SearchStatusFailed SearchStatus = "failed"
