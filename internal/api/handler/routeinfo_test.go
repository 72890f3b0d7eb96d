package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soldal/booking-platform/internal/routing"
)

func TestRouteInfo_ClassifiesPath(t *testing.T) {
	h := NewRouteInfo()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/_internal/route-info?path=/dashboard/settings", nil)

	h.Get(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Path  string `json:"path"`
		Route struct {
			Type         string `json:"type"`
			RequiresAuth bool   `json:"requires_auth"`
		} `json:"route"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/dashboard/settings", body.Path)
	assert.Equal(t, "admin", body.Route.Type)
	assert.True(t, body.Route.RequiresAuth)
}

func TestRouteInfo_EchoesTenantTags(t *testing.T) {
	h := NewRouteInfo()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/_internal/route-info?path=/trip/abc123", nil)
	r.Header.Set(routing.HeaderTenantHostname, "booking.parkbus.ca")
	r.Header.Set(routing.HeaderTenantSubdomain, "booking")

	h.Get(rec, r)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "booking.parkbus.ca", body["tenant_hostname"])
	assert.Equal(t, "booking", body["tenant_subdomain"])
}
