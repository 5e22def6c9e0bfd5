// internal/handler/organization.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/dangerclosesec/orgward/internal/service"
	chmw "github.com/go-chi/chi/v5/middleware"
)

type OrganizationHandler struct {
	orgService      *service.OrganizationService
	joinCodeService *service.JoinCodeService
}

func NewOrganizationHandler(orgService *service.OrganizationService, joinCodeService *service.JoinCodeService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:      orgService,
		joinCodeService: joinCodeService,
	}
}

type OrganizationResponse struct {
	BaseResponse
	Organization *model.Organization `json:"organization"`
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var input service.CreateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.orgService.Create(r.Context(), callerID, input)
	if err != nil {
		slog.ErrorContext(r.Context(), "Organization create error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, OrganizationResponse{BaseResponse: BaseResponse{Ok: true}, Organization: org})
}

func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}

	orgs, err := h.orgService.ListForCaller(r.Context(), callerID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "organizations": orgs})
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	org, err := h.orgService.Get(r.Context(), callerID, orgID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, OrganizationResponse{BaseResponse: BaseResponse{Ok: true}, Organization: org})
}

func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	if err := h.orgService.Delete(r.Context(), callerID, orgID); err != nil {
		slog.ErrorContext(r.Context(), "Organization delete error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type IssueJoinCodeRequest struct {
	TTLHours int `json:"ttl_hours"`
}

type IssueJoinCodeResponse struct {
	BaseResponse
	JoinCode  string    `json:"join_code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *OrganizationHandler) IssueJoinCode(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	// TTL is optional; an empty body keeps the default.
	var req IssueJoinCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.joinCodeService.Issue(r.Context(), callerID, orgID, time.Duration(req.TTLHours)*time.Hour)
	if err != nil {
		slog.ErrorContext(r.Context(), "Join code issue error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithDomainError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, IssueJoinCodeResponse{
		BaseResponse: BaseResponse{Ok: true},
		JoinCode:     output.JoinCode,
		ExpiresAt:    output.ExpiresAt,
	})
}

type RedeemJoinCodeRequest struct {
	Code string `json:"code"`
}

func (h *OrganizationHandler) RedeemJoinCode(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req RedeemJoinCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.joinCodeService.Redeem(r.Context(), callerID, req.Code)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, OrganizationResponse{BaseResponse: BaseResponse{Ok: true}, Organization: org})
}

type SiteResponse struct {
	BaseResponse
	Site *model.Site `json:"site"`
}

func (h *OrganizationHandler) CreateSite(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	var input service.CreateSiteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()
	input.OrganizationID = orgID

	site, err := h.orgService.CreateSite(r.Context(), callerID, input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, SiteResponse{BaseResponse: BaseResponse{Ok: true}, Site: site})
}

func (h *OrganizationHandler) ListSites(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	sites, err := h.orgService.ListSites(r.Context(), callerID, orgID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "sites": sites})
}

func (h *OrganizationHandler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	siteID, ok := pathID(w, r, "siteID")
	if !ok {
		return
	}

	if err := h.orgService.DeleteSite(r.Context(), callerID, siteID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
