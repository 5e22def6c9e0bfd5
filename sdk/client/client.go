// Package client is a small HTTP client for the orgward API. It
// depends only on the standard library so it can be vendored into
// services that call orgward without pulling the server's dependency
// tree.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Config represents the configuration for the orgward client
type Config struct {
	// BaseURL is the base URL of the orgward service
	BaseURL string
	// Token is the bearer token presented on every request
	Token string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:8080",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Client is the orgward API client
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new orgward client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

// Organization is the wire representation of an organization.
type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedByID string    `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Site is the wire representation of a site.
type Site struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Member is the wire representation of a membership.
type Member struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	UserID         string    `json:"user_id"`
	Role           string    `json:"role"`
	SiteID         *string   `json:"site_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SiteAssignment is the wire representation of a member/site link.
type SiteAssignment struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	SiteID    string    `json:"site_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Invitation is the wire representation of an invitation.
type Invitation struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	SiteID         *string   `json:"site_id,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// JoinRequest is the wire representation of a join request.
type JoinRequest struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	UserID         string     `json:"user_id"`
	Message        *string    `json:"message,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	ReviewedBy     *string    `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
}

type organizationEnvelope struct {
	Ok           bool          `json:"ok"`
	Organization *Organization `json:"organization"`
}

type siteEnvelope struct {
	Ok   bool  `json:"ok"`
	Site *Site `json:"site"`
}

type memberEnvelope struct {
	Ok     bool    `json:"ok"`
	Member *Member `json:"member"`
}

type invitationEnvelope struct {
	Ok         bool        `json:"ok"`
	Invitation *Invitation `json:"invitation"`
}

type joinRequestEnvelope struct {
	Ok          bool         `json:"ok"`
	JoinRequest *JoinRequest `json:"join_request"`
}

// CreateOrganizationRequest represents an organization creation request
type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

// CreateOrganization creates an organization; the caller becomes its
// first admin.
func (c *Client) CreateOrganization(ctx context.Context, req *CreateOrganizationRequest) (*Organization, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	endpoint := fmt.Sprintf("%s/api/orgs", c.config.BaseURL)
	var resp organizationEnvelope
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return resp.Organization, nil
}

// ListOrganizations lists the organizations the caller belongs to
func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	endpoint := fmt.Sprintf("%s/api/orgs", c.config.BaseURL)
	var resp struct {
		Ok            bool           `json:"ok"`
		Organizations []Organization `json:"organizations"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Organizations, nil
}

// GetOrganization retrieves one organization by ID
func (c *Client) GetOrganization(ctx context.Context, orgID string) (*Organization, error) {
	if orgID == "" {
		return nil, errors.New("org_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/orgs/%s", c.config.BaseURL, orgID)
	var resp organizationEnvelope
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Organization, nil
}

// DeleteOrganization removes an organization and everything it owns.
// Admin only.
func (c *Client) DeleteOrganization(ctx context.Context, orgID string) error {
	if orgID == "" {
		return errors.New("org_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/orgs/%s", c.config.BaseURL, orgID)
	return c.delete(ctx, endpoint)
}

// IssueJoinCodeRequest represents a join code issue request
type IssueJoinCodeRequest struct {
	TTLHours int `json:"ttl_hours,omitempty"`
}

// IssueJoinCodeResponse represents an issued join code
type IssueJoinCodeResponse struct {
	Ok        bool      `json:"ok"`
	JoinCode  string    `json:"join_code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IssueJoinCode issues a fresh join code for the organization,
// invalidating any previous one. Admin only.
func (c *Client) IssueJoinCode(ctx context.Context, orgID string, req *IssueJoinCodeRequest) (*IssueJoinCodeResponse, error) {
	if orgID == "" {
		return nil, errors.New("org_id is required")
	}
	if req == nil {
		req = &IssueJoinCodeRequest{}
	}

	endpoint := fmt.Sprintf("%s/api/orgs/%s/join-code", c.config.BaseURL, orgID)
	var resp IssueJoinCodeResponse
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RedeemJoinCode resolves a join code to its organization. It does not
// create a membership; follow up with SubmitJoinRequest.
func (c *Client) RedeemJoinCode(ctx context.Context, code string) (*Organization, error) {
	if code == "" {
		return nil, errors.New("code is required")
	}

	endpoint := fmt.Sprintf("%s/api/join-code/redeem", c.config.BaseURL)
	var resp organizationEnvelope
	if err := c.post(ctx, endpoint, map[string]string{"code": code}, &resp); err != nil {
		return nil, err
	}
	return resp.Organization, nil
}

// ListMembers lists the organization's members
func (c *Client) ListMembers(ctx context.Context, orgID string) ([]Member, error) {
	if orgID == "" {
		return nil, errors.New("org_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/orgs/%s/members", c.config.BaseURL, orgID)
	var resp struct {
		Ok      bool     `json:"ok"`
		Members []Member `json:"members"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Members, nil
}

// SetMemberRoleRequest represents a role change request
type SetMemberRoleRequest struct {
	Role   string  `json:"role"`
	SiteID *string `json:"site_id,omitempty"`
}

// SetMemberRole changes a member's role and single-site scope. Admin only.
func (c *Client) SetMemberRole(ctx context.Context, memberID string, req *SetMemberRoleRequest) (*Member, error) {
	if memberID == "" {
		return nil, errors.New("member_id is required")
	}
	if req == nil || req.Role == "" {
		return nil, errors.New("role is required")
	}

	endpoint := fmt.Sprintf("%s/api/members/%s/role", c.config.BaseURL, memberID)
	var resp memberEnvelope
	if err := c.put(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return resp.Member, nil
}

// RemoveMember deletes a membership and its site assignments. Admin only.
func (c *Client) RemoveMember(ctx context.Context, memberID string) error {
	if memberID == "" {
		return errors.New("member_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/members/%s", c.config.BaseURL, memberID)
	return c.delete(ctx, endpoint)
}

// ListMemberSites lists a member's site assignments
func (c *Client) ListMemberSites(ctx context.Context, memberID string) ([]SiteAssignment, error) {
	if memberID == "" {
		return nil, errors.New("member_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/members/%s/sites", c.config.BaseURL, memberID)
	var resp struct {
		Ok          bool             `json:"ok"`
		Assignments []SiteAssignment `json:"assignments"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Assignments, nil
}

// AssignMemberSite scopes a member to an additional site. Admin only.
func (c *Client) AssignMemberSite(ctx context.Context, memberID, siteID string) (*SiteAssignment, error) {
	if memberID == "" || siteID == "" {
		return nil, errors.New("member_id and site_id are required")
	}

	endpoint := fmt.Sprintf("%s/api/members/%s/sites/%s", c.config.BaseURL, memberID, siteID)
	var resp struct {
		Ok         bool            `json:"ok"`
		Assignment *SiteAssignment `json:"assignment"`
	}
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Assignment, nil
}

// UnassignMemberSite removes one member/site link. Admin only.
func (c *Client) UnassignMemberSite(ctx context.Context, memberID, siteID string) error {
	if memberID == "" || siteID == "" {
		return errors.New("member_id and site_id are required")
	}

	endpoint := fmt.Sprintf("%s/api/members/%s/sites/%s", c.config.BaseURL, memberID, siteID)
	return c.delete(ctx, endpoint)
}

// CreateSiteRequest represents a site creation request
type CreateSiteRequest struct {
	Name string `json:"name"`
}

// CreateSite adds a site to the organization. Admin only.
func (c *Client) CreateSite(ctx context.Context, orgID string, req *CreateSiteRequest) (*Site, error) {
	if orgID == "" {
		return nil, errors.New("org_id is required")
	}
	if req == nil || req.Name == "" {
		return nil, errors.New("name is required")
	}

	endpoint := fmt.Sprintf("%s/api/orgs/%s/sites", c.config.BaseURL, orgID)
	var resp siteEnvelope
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return resp.Site, nil
}

// ListSites lists the organization's sites visible to the caller
func (c *Client) ListSites(ctx context.Context, orgID string) ([]Site, error) {
	if orgID == "" {
		return nil, errors.New("org_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/orgs/%s/sites", c.config.BaseURL, orgID)
	var resp struct {
		Ok    bool   `json:"ok"`
		Sites []Site `json:"sites"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Sites, nil
}

// DeleteSite removes a site. Admin only.
func (c *Client) DeleteSite(ctx context.Context, siteID string) error {
	if siteID == "" {
		return errors.New("site_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/sites/%s", c.config.BaseURL, siteID)
	return c.delete(ctx, endpoint)
}

// CreateInvitationRequest represents an invitation creation request
type CreateInvitationRequest struct {
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	SiteID   *string `json:"site_id,omitempty"`
	TTLHours int     `json:"ttl_hours,omitempty"`
}

// CreateInvitation invites an email address into the organization with
// a pre-assigned role. Admin only.
func (c *Client) CreateInvitation(ctx context.Context, orgID string, req *CreateInvitationRequest) (*Invitation, error) {
	if orgID == "" {
		return nil, errors.New("org_id is required")
	}
	if req == nil || req.Email == "" || req.Role == "" {
		return nil, errors.New("email and role are required")
	}

	endpoint := fmt.Sprintf("%s/api/orgs/%s/invitations", c.config.BaseURL, orgID)
	var resp invitationEnvelope
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return resp.Invitation, nil
}

// ListInvitations lists the organization's invitations. Admin only.
func (c *Client) ListInvitations(ctx context.Context, orgID string) ([]Invitation, error) {
	if orgID == "" {
		return nil, errors.New("org_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/orgs/%s/invitations", c.config.BaseURL, orgID)
	var resp struct {
		Ok          bool         `json:"ok"`
		Invitations []Invitation `json:"invitations"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Invitations, nil
}

// RedeemInvitation accepts an invitation addressed to the caller's
// email, creating or updating the membership.
func (c *Client) RedeemInvitation(ctx context.Context, invitationID string) (*Invitation, error) {
	if invitationID == "" {
		return nil, errors.New("invitation_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/invitations/%s/redeem", c.config.BaseURL, invitationID)
	var resp invitationEnvelope
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Invitation, nil
}

// RevokeInvitation cancels a pending invitation. Admin only.
func (c *Client) RevokeInvitation(ctx context.Context, invitationID string) (*Invitation, error) {
	if invitationID == "" {
		return nil, errors.New("invitation_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/invitations/%s/revoke", c.config.BaseURL, invitationID)
	var resp invitationEnvelope
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Invitation, nil
}

// SubmitJoinRequestRequest represents a join request submission
type SubmitJoinRequestRequest struct {
	Message *string `json:"message,omitempty"`
}

// SubmitJoinRequest asks to join the organization. Submitting again
// while a request is pending returns the pending request.
func (c *Client) SubmitJoinRequest(ctx context.Context, orgID string, req *SubmitJoinRequestRequest) (*JoinRequest, error) {
	if orgID == "" {
		return nil, errors.New("org_id is required")
	}
	if req == nil {
		req = &SubmitJoinRequestRequest{}
	}

	endpoint := fmt.Sprintf("%s/api/orgs/%s/join-requests", c.config.BaseURL, orgID)
	var resp joinRequestEnvelope
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return resp.JoinRequest, nil
}

// ListJoinRequests lists the organization's join requests. Admin only.
func (c *Client) ListJoinRequests(ctx context.Context, orgID string) ([]JoinRequest, error) {
	if orgID == "" {
		return nil, errors.New("org_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/orgs/%s/join-requests", c.config.BaseURL, orgID)
	var resp struct {
		Ok           bool          `json:"ok"`
		JoinRequests []JoinRequest `json:"join_requests"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.JoinRequests, nil
}

// ListOwnJoinRequests lists the caller's join requests across
// organizations.
func (c *Client) ListOwnJoinRequests(ctx context.Context) ([]JoinRequest, error) {
	endpoint := fmt.Sprintf("%s/api/join-requests", c.config.BaseURL)
	var resp struct {
		Ok           bool          `json:"ok"`
		JoinRequests []JoinRequest `json:"join_requests"`
	}
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.JoinRequests, nil
}

// GetJoinRequest retrieves one join request
func (c *Client) GetJoinRequest(ctx context.Context, requestID string) (*JoinRequest, error) {
	if requestID == "" {
		return nil, errors.New("request_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/join-requests/%s", c.config.BaseURL, requestID)
	var resp joinRequestEnvelope
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.JoinRequest, nil
}

// ApproveJoinRequestRequest represents a join request approval
type ApproveJoinRequestRequest struct {
	Role   string  `json:"role"`
	SiteID *string `json:"site_id,omitempty"`
}

// ApproveJoinRequest approves a pending request with the granted role
// and optional site. Admin only.
func (c *Client) ApproveJoinRequest(ctx context.Context, requestID string, req *ApproveJoinRequestRequest) (*JoinRequest, error) {
	if requestID == "" {
		return nil, errors.New("request_id is required")
	}
	if req == nil || req.Role == "" {
		return nil, errors.New("role is required")
	}

	endpoint := fmt.Sprintf("%s/api/join-requests/%s/approve", c.config.BaseURL, requestID)
	var resp joinRequestEnvelope
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return resp.JoinRequest, nil
}

// RejectJoinRequest rejects a pending request. Admin only.
func (c *Client) RejectJoinRequest(ctx context.Context, requestID string) (*JoinRequest, error) {
	if requestID == "" {
		return nil, errors.New("request_id is required")
	}

	endpoint := fmt.Sprintf("%s/api/join-requests/%s/reject", c.config.BaseURL, requestID)
	var resp joinRequestEnvelope
	if err := c.post(ctx, endpoint, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.JoinRequest, nil
}

// APIError defines a standardized error response from the API
type APIError struct {
	StatusCode int      `json:"-"`
	Code       string   `json:"error_code,omitempty"`
	Message    string   `json:"error"`
	Details    []string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s (Status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

func (c *Client) post(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	return c.send(ctx, http.MethodPost, endpoint, req, resp)
}

func (c *Client) put(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	return c.send(ctx, http.MethodPut, endpoint, req, resp)
}

func (c *Client) get(ctx context.Context, endpoint string, resp interface{}) error {
	return c.send(ctx, http.MethodGet, endpoint, nil, resp)
}

func (c *Client) delete(ctx context.Context, endpoint string) error {
	return c.send(ctx, http.MethodDelete, endpoint, nil, nil)
}

// send performs a request to the specified endpoint, marshaling req as
// the JSON body when non-nil and unmarshaling the response into resp
// when non-nil.
func (c *Client) send(ctx context.Context, method, endpoint string, req interface{}, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	var body *bytes.Buffer
	if req != nil {
		reqBody, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(reqBody)
	} else {
		body = bytes.NewBuffer(nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.config.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		// Try to decode error response
		var apiErr APIError
		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil {
			// If we can't decode the error, create a generic one
			return &APIError{
				StatusCode: httpResp.StatusCode,
				Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
			}
		}

		apiErr.StatusCode = httpResp.StatusCode
		return &apiErr
	}

	if resp == nil {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
