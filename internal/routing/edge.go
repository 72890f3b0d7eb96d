package routing

import (
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/soldal/booking-platform/internal/config"
	"github.com/soldal/booking-platform/internal/platform"
)

// Request headers tagged by the edge router for downstream tenant resolution.
const (
	HeaderTenantHostname  = "x-tenant-hostname"
	HeaderTenantSubdomain = "x-tenant-subdomain"
)

// AppEntryPath is the default route served at the root of the application
// host.
const AppEntryPath = "/dashboard"

// PlatformLandingPath is where marketing-root traffic lands in development.
const PlatformLandingPath = "/platform"

var assetExtensionPattern = regexp.MustCompile(`\.(js|css|map|json|png|jpe?g|gif|svg|ico|webp|woff2?|ttf|txt)$`)

// EdgeRouter classifies every inbound request by hostname before any handler
// runs. It performs no I/O, not even a tenant lookup, so it stays in the
// microsecond range on every page load; tenant resolution happens downstream
// against the tagged headers.
type EdgeRouter struct {
	cfg *config.Config
}

func NewEdgeRouter(cfg *config.Config) *EdgeRouter {
	return &EdgeRouter{cfg: cfg}
}

// Middleware applies the host cascade: bypass → marketing → application →
// admin → tenant site. The predicates are mutually exclusive, so exactly one
// branch handles each request. It never fails a request; anything ambiguous
// passes through as customer traffic.
func (e *EdgeRouter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Static assets, framework internals, and API routes skip
		// classification entirely.
		if e.bypass(path) {
			next.ServeHTTP(w, r)
			return
		}

		host := hostOnly(r.Host)
		info := platform.ParseHost(host)

		switch {
		case e.isMarketingHost(host, info):
			if e.cfg.Environment == config.EnvProduction && e.cfg.AppHost != "" {
				// The marketing site is never served by this system in
				// production.
				http.Redirect(w, r, "https://"+e.cfg.AppHost+r.URL.RequestURI(), http.StatusTemporaryRedirect)
				return
			}
			if path == "/" {
				r.URL.Path = PlatformLandingPath
			}
			next.ServeHTTP(w, r)

		case e.isAppHost(host, info):
			switch {
			case path == "/":
				r.URL.Path = AppEntryPath
			case strings.HasPrefix(path, "/app/"):
				r.URL.Path = strings.TrimPrefix(path, "/app")
			case path == "/app":
				r.URL.Path = AppEntryPath
			}
			next.ServeHTTP(w, r)

		case e.isAdminHost(host, info):
			// Admin routing resolves the tenant from the session, not the
			// hostname; the request passes through unmodified.
			next.ServeHTTP(w, r)

		default:
			r.Header.Set(HeaderTenantHostname, host)
			if info.Subdomain != "" && info.Subdomain != "www" {
				r.Header.Set(HeaderTenantSubdomain, info.Subdomain)
			}
			next.ServeHTTP(w, r)
		}
	})
}

func (e *EdgeRouter) bypass(path string) bool {
	return strings.HasPrefix(path, "/api/") || path == "/api" ||
		strings.HasPrefix(path, "/static/") ||
		strings.HasPrefix(path, "/_internal/") ||
		path == "/metrics" || path == "/favicon.ico" ||
		assetExtensionPattern.MatchString(path)
}

func (e *EdgeRouter) isMarketingHost(host string, info platform.HostInfo) bool {
	if info.IsLocalDevelopment {
		return info.Subdomain == "" || info.Subdomain == "www"
	}
	if e.cfg.MarketingHost == "" {
		return false
	}
	return host == e.cfg.MarketingHost || host == "www."+e.cfg.MarketingHost
}

func (e *EdgeRouter) isAppHost(host string, info platform.HostInfo) bool {
	if info.IsLocalDevelopment {
		return info.Subdomain == "app"
	}
	return e.cfg.AppHost != "" && host == e.cfg.AppHost
}

func (e *EdgeRouter) isAdminHost(host string, info platform.HostInfo) bool {
	if e.cfg.AdminHost != "" && host == e.cfg.AdminHost {
		return true
	}
	return info.Subdomain == "admin"
}

// hostOnly strips the port and lowercases a raw Host header.
func hostOnly(host string) string {
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
