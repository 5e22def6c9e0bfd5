package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	BaseResponse
	Error   string    `json:"error"`
	Details *[]string `json:"details,omitempty"`
	Code    *string   `json:"error_code,omitempty"`
}

type BaseResponse struct {
	Ok bool `json:"ok"`
}

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails, logs the error and sends a plain text response
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// respondWithDomainError maps the error taxonomy to HTTP statuses.
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidRole):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrJoinCodeExpired),
		errors.Is(err, domain.ErrInvitationExpired):
		respondWithError(w, http.StatusGone, err.Error())
	case errors.Is(err, domain.ErrAlreadyReviewed),
		errors.Is(err, domain.ErrAlreadyResolved),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrCrossOrganization),
		errors.Is(err, domain.ErrEmailMismatch):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrOrganizationNotFound),
		errors.Is(err, domain.ErrSiteNotFound),
		errors.Is(err, domain.ErrMemberNotFound),
		errors.Is(err, domain.ErrAssignmentNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrInvitationNotFound),
		errors.Is(err, domain.ErrJoinRequestNotFound),
		errors.Is(err, domain.ErrJoinCodeNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// callerFrom pulls the authenticated user id off the request context.
func callerFrom(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return uuid.Nil, false
	}
	return callerID, true
}

// pathID parses a uuid path parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
