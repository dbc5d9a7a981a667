package audit

import (
	"time"

	"cctv-admin-gateway/internal/rbac"
)

// Event is an immutable, append-only record of an auth decision.
//
// Invariants:
// - Events are never updated or deleted.
// - Email/role/ip capture is best-effort; never block an auth flow on
//   audit failures.
//
// Storage recommendation (Postgres):
// - Table auth_events with an INSERT-only policy.
// - Optional: partition by time for retention.

type Event struct {
	ID string `json:"id" db:"id"`

	// Type indicates the auth decision being recorded.
	Type EventType `json:"type" db:"type"`

	// Email is the session owner (or attempted login identity).
	Email string `json:"email,omitempty" db:"email"`
	// Role is the decoded session role, if any.
	Role rbac.Role `json:"role,omitempty" db:"role"`
	// CompanyID is the tenant embedded in the session token; zero for
	// superadmin sessions and failed logins.
	CompanyID int64 `json:"company_id,omitempty" db:"company_id"`

	// IPAddress is the resolved client IP when available.
	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`

	// Path is the denied route for access_denied events.
	Path string `json:"path,omitempty" db:"path"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeLogin        EventType = "login"
	EventTypeLoginFailed  EventType = "login_failed"
	EventTypeLogout       EventType = "logout"
	EventTypeAccessDenied EventType = "access_denied"
)
