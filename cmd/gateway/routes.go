package main

import (
	"net/http"

	"cctv-admin-gateway/internal/audit"
	"cctv-admin-gateway/internal/auth"
	"cctv-admin-gateway/internal/config"
	"cctv-admin-gateway/internal/httpapi"
	"cctv-admin-gateway/internal/proxy"
	"cctv-admin-gateway/internal/ratelimit"
	"cctv-admin-gateway/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to
// internal modules.
func registerRoutes(r *gin.Engine, cfg config.Config, verifier *auth.Verifier, auditSvc *audit.Service, limiter *ratelimit.Limiter) error {
	gate := auth.Gate{
		Policy:   rbac.DefaultPolicy(),
		Verifier: verifier,
	}
	if auditSvc != nil {
		gate.Denials = auditSvc
	}
	r.Use(gate.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	session := httpapi.Handlers{
		APIBase:      cfg.Upstream.APIBaseURL,
		Client:       &http.Client{Timeout: cfg.Upstream.Timeout},
		CookieSecure: cfg.Auth.CookieSecure,
		Audit:        auditSvc,
	}

	authGroup := r.Group("/api/auth")
	{
		login := []gin.HandlerFunc{session.Login}
		if limiter != nil {
			login = append([]gin.HandlerFunc{limiter.Middleware()}, login...)
		}
		authGroup.POST("/login", login...)
		authGroup.POST("/logout", session.Logout)
		authGroup.GET("/me", session.Me)
	}

	apiProxy, err := proxy.NewForwarder(cfg.Upstream.APIBaseURL, cfg.Upstream.Timeout)
	if err != nil {
		return err
	}
	ingestProxy, err := proxy.NewForwarder(cfg.Upstream.IngestBaseURL, cfg.Upstream.Timeout)
	if err != nil {
		return err
	}

	// Catch-all forwarding. The scope guard inspects user-management
	// suffixes inside the wildcard because gin cannot mix a wildcard
	// with sibling routes on the same prefix.
	r.Any("/api/proxy/*path", httpapi.UserManagementGuard(), apiProxy.Handler("path"))
	r.Any("/api/proxy-ingest/*path", ingestProxy.Handler("path"))

	return nil
}
