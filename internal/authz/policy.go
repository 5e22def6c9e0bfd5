// internal/authz/policy.go
package authz

import (
	"github.com/dangerclosesec/orgward/internal/model"
)

// Per-entity access predicates. Each one reduces to organization
// membership and role; nothing is visible beyond the caller's own
// organizations. These gate every read and write in the service
// layer.

// CanReadMember allows members of the same organization.
func CanReadMember(c Caller, member model.Member) bool {
	return c.MemberOf(member.OrganizationID)
}

// CanWriteMember allows admins of the member's organization.
func CanWriteMember(c Caller, member model.Member) bool {
	return c.IsAdmin(member.OrganizationID)
}

// CanListMembers allows members of the organization.
func CanListMembers(c Caller, org model.Organization) bool {
	return c.MemberOf(org.ID)
}

// CanReadInvitation allows admins of the issuing organization only.
func CanReadInvitation(c Caller, invitation model.Invitation) bool {
	return c.IsAdmin(invitation.OrganizationID)
}

// CanWriteInvitation allows admins of the issuing organization only.
func CanWriteInvitation(c Caller, invitation model.Invitation) bool {
	return c.IsAdmin(invitation.OrganizationID)
}

// CanReadJoinRequest allows admins of the target organization and the
// requester themselves.
func CanReadJoinRequest(c Caller, request model.JoinRequest) bool {
	return c.IsAdmin(request.OrganizationID) || request.UserID == c.UserID
}

// CanSubmitJoinRequest allows a caller to create a request only on
// their own behalf.
func CanSubmitJoinRequest(c Caller, request model.JoinRequest) bool {
	return request.UserID == c.UserID
}

// CanReviewJoinRequest allows admins of the target organization.
func CanReviewJoinRequest(c Caller, request model.JoinRequest) bool {
	return c.IsAdmin(request.OrganizationID)
}

// CanReadSiteAssignment allows members of the organization the
// assignment's member belongs to.
func CanReadSiteAssignment(c Caller, member model.Member) bool {
	return c.MemberOf(member.OrganizationID)
}

// CanWriteSiteAssignment allows admins of that organization.
func CanWriteSiteAssignment(c Caller, member model.Member) bool {
	return c.IsAdmin(member.OrganizationID)
}

// CanReadSite allows members of the owning organization whose site
// scope covers the site. Org-scoped records inherit this predicate:
// visibility never widens past the caller's organizations.
func CanReadSite(c Caller, site model.Site) bool {
	if !c.MemberOf(site.OrganizationID) {
		return false
	}
	return c.SiteScope(site.OrganizationID).Contains(site.ID)
}

// CanWriteSite allows admins of the owning organization.
func CanWriteSite(c Caller, site model.Site) bool {
	return c.IsAdmin(site.OrganizationID)
}
