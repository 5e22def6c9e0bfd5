// internal/handler/invitation.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/dangerclosesec/orgward/internal/service"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type InvitationHandler struct {
	invitationService *service.InvitationService
}

func NewInvitationHandler(invitationService *service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

type InviteRequest struct {
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
	SiteID   *uuid.UUID `json:"site_id"`
	TTLHours int        `json:"ttl_hours"`
}

type InvitationResponse struct {
	BaseResponse
	Invitation *model.Invitation `json:"invitation"`
}

func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	invitation, err := h.invitationService.Invite(r.Context(), callerID, service.InviteInput{
		OrganizationID: orgID,
		Email:          req.Email,
		Role:           req.Role,
		SiteID:         req.SiteID,
		TTL:            time.Duration(req.TTLHours) * time.Hour,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Invitation create error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, InvitationResponse{BaseResponse: BaseResponse{Ok: true}, Invitation: invitation})
}

func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	invitations, err := h.invitationService.ListForOrg(r.Context(), callerID, orgID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "invitations": invitations})
}

func (h *InvitationHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	invitationID, ok := pathID(w, r, "invitationID")
	if !ok {
		return
	}

	invitation, err := h.invitationService.Redeem(r.Context(), callerID, invitationID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, InvitationResponse{BaseResponse: BaseResponse{Ok: true}, Invitation: invitation})
}

func (h *InvitationHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	invitationID, ok := pathID(w, r, "invitationID")
	if !ok {
		return
	}

	invitation, err := h.invitationService.Revoke(r.Context(), callerID, invitationID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, InvitationResponse{BaseResponse: BaseResponse{Ok: true}, Invitation: invitation})
}
