package auth

import (
	"context"
	"errors"

	"cctv-admin-gateway/internal/rbac"
)

type ctxKey int

const (
	ctxSubject ctxKey = iota
	ctxEmail
	ctxRole
	ctxCompanyID
)

// WithIdentity stores the decoded session identity in the request context.
func WithIdentity(ctx context.Context, claims UnverifiedClaims) context.Context {
	ctx = context.WithValue(ctx, ctxSubject, claims.Subject)
	ctx = context.WithValue(ctx, ctxEmail, claims.Email)
	ctx = context.WithValue(ctx, ctxRole, claims.Role)
	ctx = context.WithValue(ctx, ctxCompanyID, claims.CompanyID)
	return ctx
}

func Subject(ctx context.Context) (string, error) {
	if s, ok := ctx.Value(ctxSubject).(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("subject not in context")
}

func Email(ctx context.Context) (string, error) {
	if s, ok := ctx.Value(ctxEmail).(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("email not in context")
}

func Role(ctx context.Context) (rbac.Role, error) {
	if r, ok := ctx.Value(ctxRole).(rbac.Role); ok && r != "" {
		return r, nil
	}
	return "", errors.New("role not in context")
}

func CompanyID(ctx context.Context) (int64, error) {
	if id, ok := ctx.Value(ctxCompanyID).(int64); ok && id != 0 {
		return id, nil
	}
	return 0, errors.New("company_id not in context")
}
