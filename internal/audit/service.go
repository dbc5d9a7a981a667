package audit

import (
	"context"
	"errors"
	"time"

	"cctv-admin-gateway/internal/rbac"

	"github.com/google/uuid"
)

// Repository is the persistence contract for auth events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records auth decisions for internal ops.
//
// IMPORTANT:
// - The trail is internal-only; do not expose records to tenant users.
// - Callers must treat logging as best-effort and drop errors.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogLogin records a login attempt, successful or not.
func (s *Service) LogLogin(ctx context.Context, email, ip string, success bool) error {
	t := EventTypeLogin
	if !success {
		t = EventTypeLoginFailed
	}
	return s.Append(ctx, Event{
		Type:      t,
		Email:     email,
		IPAddress: ip,
	})
}

// LogLogout records a session teardown.
func (s *Service) LogLogout(ctx context.Context, email string, role rbac.Role, companyID int64, ip string) error {
	return s.Append(ctx, Event{
		Type:      EventTypeLogout,
		Email:     email,
		Role:      role,
		CompanyID: companyID,
		IPAddress: ip,
	})
}

// LogAccessDenied records a route the policy turned away.
func (s *Service) LogAccessDenied(ctx context.Context, email string, role rbac.Role, companyID int64, path, ip string) error {
	return s.Append(ctx, Event{
		Type:      EventTypeAccessDenied,
		Email:     email,
		Role:      role,
		CompanyID: companyID,
		Path:      path,
		IPAddress: ip,
	})
}
