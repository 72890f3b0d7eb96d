package handler

import (
	"net/http"

	"github.com/soldal/booking-platform/internal/api/response"
	"github.com/soldal/booking-platform/internal/routing"
)

// RouteInfo lets the rendering layer ask how a path would be classified,
// together with the tenant tags the edge router attached to the request.
type RouteInfo struct{}

func NewRouteInfo() *RouteInfo {
	return &RouteInfo{}
}

func (h *RouteInfo) Get(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	out := map[string]any{
		"path":  path,
		"route": routing.Classify(path),
	}
	if host := r.Header.Get(routing.HeaderTenantHostname); host != "" {
		out["tenant_hostname"] = host
	}
	if sub := r.Header.Get(routing.HeaderTenantSubdomain); sub != "" {
		out["tenant_subdomain"] = sub
	}
	response.WriteJSON(w, http.StatusOK, out)
}
