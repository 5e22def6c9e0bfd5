// internal/handler/join_request.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/dangerclosesec/orgward/internal/service"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type JoinRequestHandler struct {
	joinRequestService *service.JoinRequestService
}

func NewJoinRequestHandler(joinRequestService *service.JoinRequestService) *JoinRequestHandler {
	return &JoinRequestHandler{joinRequestService: joinRequestService}
}

type SubmitJoinRequestRequest struct {
	Message *string `json:"message"`
}

type JoinRequestResponse struct {
	BaseResponse
	JoinRequest *model.JoinRequest `json:"join_request"`
}

func (h *JoinRequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	// An empty body is a bare request with no message.
	var req SubmitJoinRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	request, err := h.joinRequestService.Submit(r.Context(), callerID, service.SubmitJoinRequestInput{
		OrganizationID: orgID,
		Message:        req.Message,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Join request submit error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, JoinRequestResponse{BaseResponse: BaseResponse{Ok: true}, JoinRequest: request})
}

func (h *JoinRequestHandler) ListForOrg(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	requests, err := h.joinRequestService.ListForOrg(r.Context(), callerID, orgID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "join_requests": requests})
}

func (h *JoinRequestHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}

	requests, err := h.joinRequestService.ListOwn(r.Context(), callerID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "join_requests": requests})
}

func (h *JoinRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "requestID")
	if !ok {
		return
	}

	request, err := h.joinRequestService.Get(r.Context(), callerID, requestID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, JoinRequestResponse{BaseResponse: BaseResponse{Ok: true}, JoinRequest: request})
}

type ApproveJoinRequestRequest struct {
	Role   model.Role `json:"role"`
	SiteID *uuid.UUID `json:"site_id"`
}

func (h *JoinRequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "requestID")
	if !ok {
		return
	}

	var req ApproveJoinRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	request, err := h.joinRequestService.Approve(r.Context(), callerID, requestID, service.ReviewJoinRequestInput{
		Role:   req.Role,
		SiteID: req.SiteID,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Join request approve error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, JoinRequestResponse{BaseResponse: BaseResponse{Ok: true}, JoinRequest: request})
}

func (h *JoinRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "requestID")
	if !ok {
		return
	}

	request, err := h.joinRequestService.Reject(r.Context(), callerID, requestID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, JoinRequestResponse{BaseResponse: BaseResponse{Ok: true}, JoinRequest: request})
}
