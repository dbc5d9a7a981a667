package auth

import "cctv-admin-gateway/internal/rbac"

// UnverifiedClaims is the decoded payload of a session token.
//
// The name is deliberate: the gateway does not check the token signature
// before using these fields for routing and UI-personalization decisions.
// Nothing here may be treated as a verified identity; every mutating or
// sensitive read goes through the authenticated proxy to the backend,
// which re-validates the token on every call.
type UnverifiedClaims struct {
	Subject   string    `json:"sub"`
	Email     string    `json:"email"`
	Role      rbac.Role `json:"role"`
	CompanyID int64     `json:"company_id"`
	ExpiresAt int64     `json:"exp"`
}

// DisplayEmail is what the UI shows for the session owner.
func (c UnverifiedClaims) DisplayEmail() string {
	if c.Email != "" {
		return c.Email
	}
	return c.Subject
}
