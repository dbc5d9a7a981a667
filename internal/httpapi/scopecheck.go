package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"

	"cctv-admin-gateway/internal/auth"
	"cctv-admin-gateway/internal/rbac"

	"github.com/gin-gonic/gin"
)

// UserManagementGuard applies the tenant-scoping rules to account
// management calls before they are forwarded to the backend.
//
// The backend independently enforces the same matrix; this guard exists
// so a forbidden transition dies here instead of costing a network call,
// and so a client-supplied tenant id can never cross the boundary on
// behalf of a tenant-bound session.
//
// It runs inside the proxy catch-all, so it matches on the forwarded
// path suffix rather than on a registered route.
func UserManagementGuard() gin.HandlerFunc {
	userPath := regexp.MustCompile(`^/api/users/[^/]+$`)

	return func(c *gin.Context) {
		suffix := c.Param("path")

		switch {
		case c.Request.Method == http.MethodPost && suffix == "/api/register":
			guardRegister(c)
		case c.Request.Method == http.MethodPut && userPath.MatchString(suffix):
			guardRoleEdit(c)
		case c.Request.Method == http.MethodDelete && userPath.MatchString(suffix):
			guardDelete(c)
		}
	}
}

func actorRole(c *gin.Context) (rbac.Role, bool) {
	raw, err := auth.Role(c.Request.Context())
	if err != nil {
		return "", false
	}
	role, err := rbac.ParseRole(string(raw))
	if err != nil {
		return "", false
	}
	return role, true
}

func guardRegister(c *gin.Context) {
	actor, ok := actorRole(c)
	if !ok || actor == rbac.RoleUser {
		forbid(c)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, loginBodyLimit))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	targetStr, _ := payload["role"].(string)
	target, err := rbac.ParseRole(targetStr)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	if actor == rbac.RoleSuperAdmin {
		_, tenantSelected := payload["company_id"]
		if !rbac.CanAssignRole(actor, tenantSelected, target) {
			forbid(c)
			return
		}
		restoreBody(c, body)
		return
	}

	// company_admin: only plain users, and only inside its own tenant.
	if !rbac.CanAssignRole(actor, true, target) {
		forbid(c)
		return
	}
	companyID, err := auth.CompanyID(c.Request.Context())
	if err != nil {
		forbid(c)
		return
	}
	// Whatever tenant the client asked for, the session's tenant wins.
	payload["company_id"] = companyID
	scrubbed, err := json.Marshal(payload)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	restoreBody(c, scrubbed)
}

func guardRoleEdit(c *gin.Context) {
	actor, ok := actorRole(c)
	if !ok || actor == rbac.RoleUser {
		forbid(c)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, loginBodyLimit))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	var payload struct {
		Role string `json:"role"`
	}
	_ = json.Unmarshal(body, &payload)
	if payload.Role == "" {
		restoreBody(c, body)
		return
	}

	next, err := rbac.ParseRole(payload.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	// The edit path never mints a superadmin, and a company_admin must
	// never end up demoted to user. The gateway does not know the
	// target's current role, so for company_admin actors any edit to
	// "user" is refused; the only transition that loses is a no-op.
	if next == rbac.RoleSuperAdmin {
		forbid(c)
		return
	}
	if actor == rbac.RoleCompanyAdmin && next == rbac.RoleUser {
		forbid(c)
		return
	}
	restoreBody(c, body)
}

func guardDelete(c *gin.Context) {
	actor, ok := actorRole(c)
	if !ok || actor == rbac.RoleUser {
		forbid(c)
		return
	}
}

func forbid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}

func restoreBody(c *gin.Context, body []byte) {
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	c.Request.ContentLength = int64(len(body))
}
