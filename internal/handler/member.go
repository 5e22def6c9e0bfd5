// internal/handler/member.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/dangerclosesec/orgward/internal/service"
	"github.com/google/uuid"
)

type MemberHandler struct {
	memberService *service.MemberService
}

func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	members, err := h.memberService.List(r.Context(), callerID, orgID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "members": members})
}

type SetRoleRequest struct {
	Role   model.Role `json:"role"`
	SiteID *uuid.UUID `json:"site_id"`
}

type MemberResponse struct {
	BaseResponse
	Member *model.Member `json:"member"`
}

func (h *MemberHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "memberID")
	if !ok {
		return
	}

	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	member, err := h.memberService.SetRole(r.Context(), callerID, memberID, req.Role, req.SiteID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MemberResponse{BaseResponse: BaseResponse{Ok: true}, Member: member})
}

func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "memberID")
	if !ok {
		return
	}

	if err := h.memberService.Remove(r.Context(), callerID, memberID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *MemberHandler) AssignSite(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "memberID")
	if !ok {
		return
	}
	siteID, ok := pathID(w, r, "siteID")
	if !ok {
		return
	}

	assignment, err := h.memberService.AssignSite(r.Context(), callerID, memberID, siteID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"ok": true, "assignment": assignment})
}

func (h *MemberHandler) UnassignSite(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "memberID")
	if !ok {
		return
	}
	siteID, ok := pathID(w, r, "siteID")
	if !ok {
		return
	}

	if err := h.memberService.UnassignSite(r.Context(), callerID, memberID, siteID); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

func (h *MemberHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	callerID, ok := callerFrom(w, r)
	if !ok {
		return
	}
	memberID, ok := pathID(w, r, "memberID")
	if !ok {
		return
	}

	assignments, err := h.memberService.ListAssignments(r.Context(), callerID, memberID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "assignments": assignments})
}
