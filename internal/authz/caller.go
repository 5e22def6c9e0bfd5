// internal/authz/caller.go

// Package authz holds the capability evaluator and the per-entity
// access predicates. Everything here is pure: predicates operate on
// an immutable caller snapshot and entity values, never on storage,
// so they are total, side-effect-free, and safe to evaluate per row.
package authz

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/google/uuid"
)

// Caller is an immutable snapshot of one user's memberships and site
// assignments, captured once per operation.
type Caller struct {
	UserID      uuid.UUID
	memberships map[uuid.UUID]model.Member // keyed by organization id
	assignments map[uuid.UUID][]uuid.UUID  // member id -> site ids
}

// NewCaller builds a snapshot from membership and assignment rows.
// Rows not belonging to the user are ignored.
func NewCaller(userID uuid.UUID, memberships []model.Member, assignments []model.MemberSiteAssignment) Caller {
	c := Caller{
		UserID:      userID,
		memberships: make(map[uuid.UUID]model.Member, len(memberships)),
		assignments: make(map[uuid.UUID][]uuid.UUID, len(assignments)),
	}
	for _, m := range memberships {
		if m.UserID != userID {
			continue
		}
		c.memberships[m.OrganizationID] = m
	}
	for _, a := range assignments {
		c.assignments[a.MemberID] = append(c.assignments[a.MemberID], a.SiteID)
	}
	return c
}

// Organizations returns the ids of every organization the caller has
// a membership in.
func (c Caller) Organizations() []uuid.UUID {
	orgs := make([]uuid.UUID, 0, len(c.memberships))
	for orgID := range c.memberships {
		orgs = append(orgs, orgID)
	}
	return orgs
}

// MemberOf reports whether the caller has any membership in the
// organization.
func (c Caller) MemberOf(orgID uuid.UUID) bool {
	_, ok := c.memberships[orgID]
	return ok
}

// IsAdmin reports whether the caller holds the admin role in the
// organization. A caller with no membership row is never an admin.
func (c Caller) IsAdmin(orgID uuid.UUID) bool {
	m, ok := c.memberships[orgID]
	return ok && m.Role == model.RoleAdmin
}

// SiteScope describes which of an organization's sites the caller may
// see. Unscoped means all of them.
type SiteScope struct {
	Unscoped bool
	SiteIDs  []uuid.UUID
}

// Contains reports whether the scope covers the given site.
func (s SiteScope) Contains(siteID uuid.UUID) bool {
	if s.Unscoped {
		return true
	}
	for _, id := range s.SiteIDs {
		if id == siteID {
			return true
		}
	}
	return false
}

// SiteScope computes the caller's effective site scope within the
// organization. Admins are unscoped. Non-admins are scoped to the
// union of their site assignments and the membership's single site
// column; with neither set they are unscoped, seeing all sites.
func (c Caller) SiteScope(orgID uuid.UUID) SiteScope {
	m, ok := c.memberships[orgID]
	if !ok {
		return SiteScope{}
	}
	if m.Role == model.RoleAdmin {
		return SiteScope{Unscoped: true}
	}

	var sites []uuid.UUID
	sites = append(sites, c.assignments[m.ID]...)
	if m.SiteID != nil {
		seen := false
		for _, id := range sites {
			if id == *m.SiteID {
				seen = true
				break
			}
		}
		if !seen {
			sites = append(sites, *m.SiteID)
		}
	}
	if len(sites) == 0 {
		return SiteScope{Unscoped: true}
	}
	return SiteScope{SiteIDs: sites}
}

// MembershipSource provides the rows an Evaluator snapshots.
type MembershipSource interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Member, error)
	FindAssignmentsByUser(ctx context.Context, userID uuid.UUID) ([]model.MemberSiteAssignment, error)
}

// Evaluator loads caller snapshots from the membership store. The
// snapshot is taken once; every predicate evaluated against it is
// then pure.
type Evaluator struct {
	source MembershipSource
}

func NewEvaluator(source MembershipSource) *Evaluator {
	return &Evaluator{source: source}
}

// Snapshot captures the caller's memberships and site assignments.
func (e *Evaluator) Snapshot(ctx context.Context, userID uuid.UUID) (Caller, error) {
	memberships, err := e.source.FindByUser(ctx, userID)
	if err != nil {
		return Caller{}, fmt.Errorf("loading caller memberships: %w", err)
	}
	assignments, err := e.source.FindAssignmentsByUser(ctx, userID)
	if err != nil {
		return Caller{}, fmt.Errorf("loading caller site assignments: %w", err)
	}
	return NewCaller(userID, memberships, assignments), nil
}
