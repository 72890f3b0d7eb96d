package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soldal/booking-platform/internal/api/request"
	"github.com/soldal/booking-platform/internal/api/response"
	"github.com/soldal/booking-platform/internal/core"
)

type Domain struct {
	domains *core.DomainService
	tenants *core.TenantService
}

func NewDomain(services *core.Services) *Domain {
	return &Domain{domains: services.Domain, tenants: services.Tenant}
}

// VerifySSL godoc
//
//	@Summary		On-demand TLS certificate authorization
//	@Tags			Domains
//	@Param			domain query string true "Hostname requesting a certificate"
//	@Success		200 {object} core.TLSAuthorization
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		403 {object} response.ErrorResponse
//	@Router			/api/domains/verify-ssl [get]
func (h *Domain) VerifySSL(w http.ResponseWriter, r *http.Request) {
	domain := r.URL.Query().Get("domain")
	if domain == "" {
		response.WriteError(w, http.StatusBadRequest, "domain parameter is required")
		return
	}

	auth, err := h.domains.AuthorizeTLS(r.Context(), domain)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, auth)
}

// VerifySSLProbe answers the certificate issuer's liveness probe.
func (h *Domain) VerifySSLProbe(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ActivationStatus godoc
//
//	@Summary		Current custom-domain activation status
//	@Tags			Domains
//	@Param			tenantID path string true "Tenant ID"
//	@Success		200 {object} core.ActivationStatus
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/api/domains/activate/{tenantID} [get]
func (h *Domain) ActivationStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := h.domains.CheckActivation(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, status)
}

// Activate godoc
//
//	@Summary		Force an immediate activation re-check
//	@Tags			Domains
//	@Param			tenantID path string true "Tenant ID"
//	@Success		200 {object} map[string]any
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/api/domains/activate/{tenantID} [post]
func (h *Domain) Activate(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := h.domains.CheckActivation(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch status.Status {
	case core.StatusActive:
		out := map[string]any{
			"status":            core.StatusActive,
			"custom_domain":     status.CustomDomain,
			"test_url":          status.TestURL,
			"ready_for_traffic": true,
		}
		if status.JustActivated {
			out["status"] = "activated"
		}
		response.WriteJSON(w, http.StatusOK, out)
	case core.StatusReadyForActivation:
		response.WriteJSON(w, http.StatusOK, map[string]any{
			"status":         "not_ready",
			"expected_cname": status.ExpectedCNAME,
			"propagation":    status.Propagation,
			"instructions":   status.Instructions,
		})
	default:
		response.WriteJSON(w, http.StatusOK, status)
	}
}

// CNAMEInstructions godoc
//
//	@Summary		CNAME setup instructions for the tenant's custom domain
//	@Tags			Domains
//	@Param			tenantID path string true "Tenant ID"
//	@Success		200 {object} core.CNAMEInstructions
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/api/domains/cname/{tenantID} [get]
func (h *Domain) CNAMEInstructions(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.tenants.GetByID(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if tenant.Domain == nil || *tenant.Domain == "" {
		response.WriteError(w, http.StatusBadRequest, "no custom domain configured")
		return
	}
	if !tenant.DomainVerified {
		response.WriteError(w, http.StatusBadRequest, "domain is not verified yet")
		return
	}

	instructions := core.ActivationInstructions(
		tenant.CustomSubdomain, *tenant.Domain, tenant.PlatformHostname(h.domains.PlatformDomain()))
	response.WriteJSON(w, http.StatusOK, instructions)
}

// Initiate godoc
//
//	@Summary		Begin custom-domain verification for the caller's tenant
//	@Tags			Domains
//	@Security		SessionAuth
//	@Param			body body request.InitiateDomainVerification true "Domain details"
//	@Success		200 {object} core.VerificationInstructions
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		403 {object} response.ErrorResponse
//	@Router			/api/domains/verify [post]
func (h *Domain) Initiate(w http.ResponseWriter, r *http.Request) {
	tenant, err := h.tenants.ResolveByAuth(r.Context(), principalFrom(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req request.InitiateDomainVerification
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	instructions, err := h.domains.Initiate(r.Context(), tenant.ID, req.Domain, req.Subdomain)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, instructions)
}

// VerificationStatus godoc
//
//	@Summary		Poll verification progress for a tenant's domain
//	@Tags			Domains
//	@Security		SessionAuth
//	@Param			tenantID path string true "Tenant ID"
//	@Success		200 {object} core.VerificationStatus
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		403 {object} response.ErrorResponse
//	@Router			/api/domains/verify/{tenantID} [get]
func (h *Domain) VerificationStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !requireTenantAccess(w, r, tenantID) {
		return
	}

	status, err := h.domains.CheckStatus(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, status)
}

// Retry godoc
//
//	@Summary		Restart verification with a fresh token
//	@Tags			Domains
//	@Security		SessionAuth
//	@Param			tenantID path string true "Tenant ID"
//	@Success		200 {object} core.VerificationInstructions
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		403 {object} response.ErrorResponse
//	@Router			/api/domains/retry/{tenantID} [post]
func (h *Domain) Retry(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !requireTenantAccess(w, r, tenantID) {
		return
	}

	instructions, err := h.domains.Retry(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, instructions)
}

// Remove godoc
//
//	@Summary		Remove the tenant's custom-domain configuration
//	@Tags			Domains
//	@Security		SessionAuth
//	@Param			tenantID path string true "Tenant ID"
//	@Success		204
//	@Failure		403 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/api/domains/{tenantID} [delete]
func (h *Domain) Remove(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !requireTenantAccess(w, r, tenantID) {
		return
	}

	if err := h.domains.RemoveDomain(r.Context(), tenantID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
