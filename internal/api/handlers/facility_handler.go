package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	"github.com/zatekoja/hpv-prevention/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hpv-prevention/backend/pkg/errors"
)

// FacilityFinder is the search surface the facility handlers depend on
type FacilityFinder interface {
	FindNearby(ctx context.Context, input string) (*entities.FacilitySearchResult, error)
}

// FacilityHandler handles facility search HTTP requests
type FacilityHandler struct {
	finder FacilityFinder
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(finder FacilityFinder) *FacilityHandler {
	return &FacilityHandler{
		finder: finder,
	}
}

// FindNearby handles GET /api/facilities/nearby?location=...
func (h *FacilityHandler) FindNearby(w http.ResponseWriter, r *http.Request) {
	result, err := h.finder.FindNearby(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Helper functions

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError writes err using its AppError type to pick the status
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("unhandled error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := statusForError(appErr.Type)
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("error_type", string(appErr.Type)).Msg("request failed")
	}

	respondWithJSON(w, status, map[string]string{
		"error": appErr.Message,
		"code":  string(appErr.Type),
	})
}

func statusForError(t apperrors.ErrorType) int {
	switch t {
	case apperrors.ErrorTypeInputMissing, apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeLocationNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeServiceUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
