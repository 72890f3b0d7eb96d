package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newDomainHandler() *Domain {
	return &Domain{domains: nil, tenants: nil}
}

// --- VerifySSL ---

func TestVerifySSL_MissingDomainParam(t *testing.T) {
	h := newDomainHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/domains/verify-ssl", nil)

	h.VerifySSL(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "domain parameter is required")
}

func TestVerifySSLProbe(t *testing.T) {
	h := newDomainHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodHead, "/api/domains/verify-ssl", nil)

	h.VerifySSLProbe(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

// --- Activation ---

func TestActivationStatus_EmptyID(t *testing.T) {
	h := newDomainHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/domains/activate/", nil)
	r = withChiURLParam(r, "tenantID", "")

	h.ActivationStatus(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "missing required ID")
}

func TestActivate_EmptyID(t *testing.T) {
	h := newDomainHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/api/domains/activate/", nil)
	r = withChiURLParam(r, "tenantID", "")

	h.Activate(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- CNAME instructions ---

func TestCNAMEInstructions_EmptyID(t *testing.T) {
	h := newDomainHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/domains/cname/", nil)
	r = withChiURLParam(r, "tenantID", "")

	h.CNAMEInstructions(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Initiate ---

func TestInitiate_MissingSession(t *testing.T) {
	// ResolveByAuth rejects before any lookup when no principal is attached.
	h := newDomainHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/api/domains/verify", map[string]any{
		"domain": "parkbus.ca",
	})

	h.Initiate(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// --- Verification status ---

func TestVerificationStatus_WrongTenantForbidden(t *testing.T) {
	h := newDomainHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/domains/verify/"+validID, nil)
	r = withChiURLParam(r, "tenantID", validID)
	r = withSession(r, "other-tenant", "owner")

	h.VerificationStatus(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "no access to this tenant")
}

func TestVerificationStatus_NoSession(t *testing.T) {
	h := newDomainHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/api/domains/verify/"+validID, nil)
	r = withChiURLParam(r, "tenantID", validID)

	h.VerificationStatus(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// --- Retry / Remove ---

func TestRetry_EmptyID(t *testing.T) {
	h := newDomainHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/api/domains/retry/", nil)
	r = withChiURLParam(r, "tenantID", "")

	h.Retry(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemove_WrongTenantForbidden(t *testing.T) {
	h := newDomainHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodDelete, "/api/domains/"+validID, nil)
	r = withChiURLParam(r, "tenantID", validID)
	r = withSession(r, "other-tenant", "admin")

	h.Remove(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
