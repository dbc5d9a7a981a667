package proxy

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cctv-admin-gateway/internal/auth"
	"cctv-admin-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Forwarder relays browser requests to one upstream origin, attaching
// the session token as a bearer credential.
//
// The upstream base URL is resolved once at construction and immutable
// afterwards. Each request makes exactly one outbound call; there are no
// retries and no caching.
type Forwarder struct {
	base   *url.URL
	client *http.Client
}

// NewForwarder builds a forwarder for the given upstream origin.
// The client never follows upstream redirects; the browser decides.
func NewForwarder(base string, timeout time.Duration) (*Forwarder, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("proxy base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("proxy base url %q must be absolute http(s)", base)
	}
	return &Forwarder{
		base: u,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// Handler is the catch-all gin handler. Register it for every method on
// a wildcard route; the wildcard parameter names the path suffix to
// re-base onto the upstream.
func (f *Forwarder) Handler(pathParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		f.forward(c, c.Param(pathParam))
	}
}

func (f *Forwarder) forward(c *gin.Context, suffix string) {
	target := *f.base
	target.Path = singleSlashJoin(f.base.Path, suffix)
	target.RawQuery = c.Request.URL.RawQuery

	var body io.Reader
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead:
		// read-only methods carry no body
	default:
		body = c.Request.Body
	}

	out, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target.String(), body)
	if err != nil {
		c.AbortWithStatus(http.StatusBadGateway)
		return
	}

	out.Header = c.Request.Header.Clone()
	out.Host = f.base.Host
	if body != nil {
		out.ContentLength = c.Request.ContentLength
	}
	// Let the transport negotiate compression so the upstream body
	// arrives decoded and the stripped encoding headers stay truthful.
	out.Header.Del("Accept-Encoding")
	// The cookie session is the only identity the upstream may see; a
	// client-supplied Authorization header must never survive.
	out.Header.Del("Authorization")
	if token, err := c.Cookie(auth.TokenCookie); err == nil && token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := f.client.Do(out)
	if err != nil {
		logger.FromGin(c).Error("proxy upstream unreachable", "upstream", f.base.Host, "path", suffix, "err", err)
		c.AbortWithStatus(http.StatusBadGateway)
		return
	}
	defer res.Body.Close()

	header := c.Writer.Header()
	for k, vals := range res.Header {
		// The body is re-streamed decoded; forwarding these against it
		// would corrupt the response on the client.
		if isStrippedHeader(k) {
			continue
		}
		for _, v := range vals {
			header.Add(k, v)
		}
	}
	c.Status(res.StatusCode)
	_, _ = io.Copy(c.Writer, res.Body)
}

func isStrippedHeader(name string) bool {
	switch http.CanonicalHeaderKey(name) {
	case "Content-Encoding", "Transfer-Encoding":
		return true
	}
	return false
}

func singleSlashJoin(basePath, suffix string) string {
	basePath = strings.TrimSuffix(basePath, "/")
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	return basePath + suffix
}
