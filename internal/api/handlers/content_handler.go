package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zatekoja/hpv-prevention/backend/internal/application/services"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/hpv-prevention/backend/pkg/errors"
)

const maxBodyBytes = 64 << 10

// ContentHandler serves educational content and the self-assessment tools
type ContentHandler struct {
	content *services.ContentService
	risk    *services.RiskAssessmentService
}

// NewContentHandler creates a new content handler
func NewContentHandler(content *services.ContentService, risk *services.RiskAssessmentService) *ContentHandler {
	return &ContentHandler{
		content: content,
		risk:    risk,
	}
}

// MythsFacts handles GET /api/content/myths-facts
func (h *ContentHandler) MythsFacts(w http.ResponseWriter, r *http.Request) {
	items := h.content.MythsFacts()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// FAQ handles GET /api/content/faq
func (h *ContentHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	items := h.content.FAQ()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// Timeline handles GET /api/content/timeline
func (h *ContentHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	items := h.content.Timeline()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// Checklist handles GET /api/content/checklist
func (h *ContentHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	items := h.content.Checklist()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// ChecklistProgressRequest carries the item ids the client has ticked
type ChecklistProgressRequest struct {
	Completed []string `json:"completed"`
}

// ChecklistProgress handles POST /api/checklist/progress
func (h *ContentHandler) ChecklistProgress(w http.ResponseWriter, r *http.Request) {
	var req ChecklistProgressRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, h.content.ChecklistProgress(req.Completed))
}

// AssessRisk handles POST /api/risk-assessment
func (h *ContentHandler) AssessRisk(w http.ResponseWriter, r *http.Request) {
	var req entities.RiskAssessment
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.risk.Assess(req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid request body")
	}
	return nil
}
