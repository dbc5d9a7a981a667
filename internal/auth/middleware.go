package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cctv-admin-gateway/internal/rbac"

	"github.com/gin-gonic/gin"
)

// Paths reachable without a session: the login page, the login call
// itself, and static assets.
var publicPaths = map[string]struct{}{
	"/login":          {},
	"/api/auth/login": {},
	"/favicon.ico":    {},
	"/healthz":        {},
}

const publicAssetPrefix = "/static/"

// DenialRecorder receives access-gate denials for the audit trail.
// Recording is best-effort; the gate never blocks on it.
type DenialRecorder interface {
	LogAccessDenied(ctx context.Context, email string, role rbac.Role, companyID int64, path, ip string) error
}

// Gate is the per-request authorization check run before any route.
type Gate struct {
	Policy   *rbac.Policy
	Verifier *Verifier // nil means decode-only gating
	Denials  DenialRecorder
	Now      func() time.Time
}

// Middleware enforces the route policy on every request.
//
// Public paths pass through untouched. Otherwise: no cookie redirects to
// /login, a session whose role the policy rejects redirects to /, and an
// allowed session proceeds with its identity attached to the request
// context. The decision is pure path-plus-cookie, so repeating it on the
// same request state always routes the same way.
func (g Gate) Middleware() gin.HandlerFunc {
	now := g.Now
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if isPublicPath(path) {
			c.Next()
			return
		}

		token, err := c.Cookie(TokenCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, ok := DecodeUnverified(token)
		if ok && !g.Verifier.Valid(token, now()) {
			ok = false
		}

		role := rbac.Role("")
		if ok {
			role = claims.Role
		}
		if !g.Policy.IsAllowed(path, role) {
			// An undecodable cookie is the same as no session; send it
			// to login rather than bouncing / to itself.
			if role == "" {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
			if g.Denials != nil {
				_ = g.Denials.LogAccessDenied(c.Request.Context(), claims.DisplayEmail(), role, claims.CompanyID, path, c.ClientIP())
			}
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		if ok {
			c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), claims))
		}
		c.Next()
	}
}

func isPublicPath(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	return strings.HasPrefix(path, publicAssetPrefix)
}
