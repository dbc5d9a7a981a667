package audit

import (
	"context"
	"testing"

	"cctv-admin-gateway/internal/rbac"
)

func TestService_AppendRequiresType(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Append(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error for missing type")
	}
	if len(repo.Events()) != 0 {
		t.Fatalf("invalid event must not be stored")
	}
}

func TestService_AssignsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.LogAccessDenied(context.Background(), "u@example.com", rbac.RoleUser, 3, "/companies", "1.2.3.4"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs := repo.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event")
	}
	e := evs[0]
	if e.ID == "" || e.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp assigned: %+v", e)
	}
	if e.Type != EventTypeAccessDenied || e.Path != "/companies" || e.IPAddress != "1.2.3.4" {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestService_LoginOutcomes(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	_ = svc.LogLogin(context.Background(), "a@b.c", "1.2.3.4", true)
	_ = svc.LogLogin(context.Background(), "a@b.c", "1.2.3.4", false)

	evs := repo.Events()
	if len(evs) != 2 || evs[0].Type != EventTypeLogin || evs[1].Type != EventTypeLoginFailed {
		t.Fatalf("unexpected events: %+v", evs)
	}
}
