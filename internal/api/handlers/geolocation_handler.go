package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
)

// LocationResolver geocodes free-text location input
type LocationResolver interface {
	ResolveLocation(ctx context.Context, input string) (*entities.ResolvedLocation, error)
}

// GeolocationHandler handles geolocation endpoints.
type GeolocationHandler struct {
	resolver LocationResolver
}

// NewGeolocationHandler creates a new geolocation handler.
func NewGeolocationHandler(resolver LocationResolver) *GeolocationHandler {
	return &GeolocationHandler{resolver: resolver}
}

// Geocode handles GET /api/geocode?location=...
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	location, err := h.resolver.ResolveLocation(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, location)
}
