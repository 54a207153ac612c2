package handlers

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/zatekoja/hpv-prevention/backend/internal/api/views"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hpv-prevention/backend/pkg/errors"
)

// FinderPageHandler serves the vaccination finder HTML fragments
type FinderPageHandler struct {
	finder   FacilityFinder
	renderer *views.Renderer
}

// NewFinderPageHandler creates a new finder page handler
func NewFinderPageHandler(finder FacilityFinder, renderer *views.Renderer) *FinderPageHandler {
	return &FinderPageHandler{
		finder:   finder,
		renderer: renderer,
	}
}

// Loading handles GET /finder/loading
func (h *FinderPageHandler) Loading(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.renderer.Loading(&buf); err != nil {
		h.renderFailure(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Results handles GET /finder/results?location=...
func (h *FinderPageHandler) Results(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")

	var buf bytes.Buffer
	result, err := h.finder.FindNearby(r.Context(), location)
	if err != nil {
		status := http.StatusInternalServerError
		message := "internal server error"
		if appErr, ok := apperrors.As(err); ok {
			status = statusForError(appErr.Type)
			message = appErr.Message
		}
		if status >= http.StatusInternalServerError {
			observability.LoggerFromContext(r.Context()).Error().Err(err).Str("location", location).Msg("finder search failed")
		}

		retry := ""
		if apperrors.IsType(err, apperrors.ErrorTypeServiceUnavailable) {
			retry = "/finder/results?location=" + url.QueryEscape(location)
		}
		if renderErr := h.renderer.Error(&buf, message, retry); renderErr != nil {
			h.renderFailure(w, r, renderErr)
			return
		}
		writeHTML(w, status, buf.Bytes())
		return
	}

	if err := h.renderer.Results(&buf, result); err != nil {
		h.renderFailure(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (h *FinderPageHandler) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("failed to render finder template")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write(body)
}
