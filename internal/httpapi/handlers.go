package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"cctv-admin-gateway/internal/audit"
	"cctv-admin-gateway/internal/auth"
	"cctv-admin-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups the session endpoints for dependency injection.
// Keep these thin: mediate between the browser and the backend login
// API, never interpret backend business logic.

type Handlers struct {
	// APIBase is the backend origin, e.g. http://localhost:8080.
	APIBase string
	// Client performs the one outbound call per request.
	Client *http.Client
	// CookieSecure marks the session cookie Secure (on in production).
	CookieSecure bool
	// Audit is optional; nil disables the trail.
	Audit *audit.Service
}

const loginBodyLimit = 1 << 20 // credentials payloads are tiny

type loginSuccess struct {
	// The backend historically used both names; accept either.
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for a session cookie.
//
// The credentials body is forwarded verbatim to the backend login
// endpoint. A backend rejection is relayed status-and-body unchanged so
// the user sees the backend's own message. A 2xx response that carries
// no usable token field is a distinct failure: the backend accepted the
// credentials but we could not establish a session.
func (h Handlers) Login(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, loginBodyLimit))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.APIBase+"/api/login", bytes.NewReader(body))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "bad login request"})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := h.Client.Do(req)
	if err != nil {
		logger.FromGin(c).Error("login upstream unreachable", "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "login upstream unreachable"})
		return
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "login upstream unreachable"})
		return
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		h.logLogin(c, body, false)
		c.Data(res.StatusCode, res.Header.Get("Content-Type"), resBody)
		c.Abort()
		return
	}

	var ok loginSuccess
	_ = json.Unmarshal(resBody, &ok)
	token := ok.Token
	if token == "" {
		token = ok.AccessToken
	}
	if token == "" {
		logger.FromGin(c).Error("login upstream returned no usable token")
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "upstream returned no usable token"})
		return
	}

	h.logLogin(c, body, true)

	c.SetSameSite(http.SameSiteLaxMode)
	// The token never reaches script; the cookie is the only copy.
	c.SetCookie(auth.TokenCookie, token, 0, "/", "", h.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Logout clears the session cookie and sends the browser back to login.
func (h Handlers) Logout(c *gin.Context) {
	if tok, err := c.Cookie(auth.TokenCookie); err == nil && h.Audit != nil {
		if claims, decoded := auth.DecodeUnverified(tok); decoded {
			_ = h.Audit.LogLogout(c.Request.Context(), claims.DisplayEmail(), claims.Role, claims.CompanyID, c.ClientIP())
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.TokenCookie, "", -1, "/", "", h.CookieSecure, true)
	c.Redirect(http.StatusFound, "/login")
}

// Me returns the identity projection the UI personalizes itself with.
// This reflects the decoded cookie only; the backend remains the
// authority on what the session may actually do.
func (h Handlers) Me(c *gin.Context) {
	token, err := c.Cookie(auth.TokenCookie)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	claims, decoded := auth.DecodeUnverified(token)
	if !decoded {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"email":      claims.DisplayEmail(),
		"role":       claims.Role,
		"company_id": claims.CompanyID,
	})
}

func (h Handlers) logLogin(c *gin.Context, credentials []byte, success bool) {
	if h.Audit == nil {
		return
	}
	var creds struct {
		Email string `json:"email"`
	}
	_ = json.Unmarshal(credentials, &creds)
	_ = h.Audit.LogLogin(c.Request.Context(), creds.Email, c.ClientIP(), success)
}
