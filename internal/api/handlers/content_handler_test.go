package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/hpv-prevention/backend/internal/api/handlers"
	"github.com/zatekoja/hpv-prevention/backend/internal/application/services"
	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

func newContentHandler(t *testing.T) *handlers.ContentHandler {
	t.Helper()
	content, err := services.NewContentService()
	require.NoError(t, err)
	return handlers.NewContentHandler(content, services.NewRiskAssessmentService())
}

func TestContentHandler_MythsFacts(t *testing.T) {
	handler := newContentHandler(t)

	rec := httptest.NewRecorder()
	handler.MythsFacts(rec, httptest.NewRequest(http.MethodGet, "/api/content/myths-facts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Items []entities.MythFact `json:"items"`
		Count int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 6, body.Count)
	assert.Equal(t, "You can get HPV from toilet seats", body.Items[2].Myth)
}

func TestContentHandler_StaticLists(t *testing.T) {
	handler := newContentHandler(t)

	for path, fn := range map[string]http.HandlerFunc{
		"/api/content/faq":       handler.FAQ,
		"/api/content/timeline":  handler.Timeline,
		"/api/content/checklist": handler.Checklist,
	} {
		rec := httptest.NewRecorder()
		fn(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		var body struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), path)
		assert.Positive(t, body.Count, path)
	}
}

func TestContentHandler_ChecklistProgress(t *testing.T) {
	handler := newContentHandler(t)
	total := len(embeddedChecklist(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checklist/progress",
		strings.NewReader(`{"completed": ["check-vaccine", "check-screening", "unknown-item"]}`))
	handler.ChecklistProgress(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body entities.ChecklistProgress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Completed)
	assert.Equal(t, total, body.Total)
	assert.Equal(t, []string{"check-vaccine", "check-screening"}, body.Items)
}

func embeddedChecklist(t *testing.T) []entities.ChecklistItem {
	t.Helper()
	content, err := services.NewContentService()
	require.NoError(t, err)
	return content.Checklist()
}

func TestContentHandler_ChecklistProgress_BadBody(t *testing.T) {
	handler := newContentHandler(t)

	rec := httptest.NewRecorder()
	handler.ChecklistProgress(rec, httptest.NewRequest(http.MethodPost, "/api/checklist/progress", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION")
}

func TestContentHandler_AssessRisk(t *testing.T) {
	handler := newContentHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/risk-assessment",
		strings.NewReader(`{"age":"18-26","vaccination":"fully-vaccinated","screening":"regular","riskFactors":["smoking"]}`))
	handler.AssessRisk(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body entities.RiskAssessmentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Recommendations, 3)
	assert.NotEmpty(t, body.Disclaimer)
}

func TestContentHandler_AssessRisk_MissingField(t *testing.T) {
	handler := newContentHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/risk-assessment", strings.NewReader(`{"age":"18-26"}`))
	handler.AssessRisk(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), services.MsgAssessmentIncomplete)
}
