package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/soldal/booking-platform/internal/api/middleware"
	"github.com/soldal/booking-platform/internal/api/request"
	"github.com/soldal/booking-platform/internal/api/response"
	"github.com/soldal/booking-platform/internal/core"
)

type Tenant struct {
	svc *core.TenantService
}

func NewTenant(services *core.Services) *Tenant {
	return &Tenant{svc: services.Tenant}
}

// Create godoc
//
//	@Summary		Register a new tenant (platform admin only)
//	@Tags			Tenants
//	@Security		SessionAuth
//	@Param			body body request.CreateTenant true "Tenant details"
//	@Success		201 {object} model.Tenant
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		403 {object} response.ErrorResponse
//	@Router			/api/tenants [post]
func (h *Tenant) Create(w http.ResponseWriter, r *http.Request) {
	p := mw.GetPrincipal(r.Context())
	if p == nil || p.Role != core.RoleSuperAdmin {
		response.WriteError(w, http.StatusForbidden, "platform admin required")
		return
	}

	var req request.CreateTenant
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.svc.Create(r.Context(), req.Slug, req.DisplayName)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, tenant)
}

// Get godoc
//
//	@Summary		Fetch a tenant
//	@Tags			Tenants
//	@Security		SessionAuth
//	@Param			tenantID path string true "Tenant ID"
//	@Success		200 {object} model.Tenant
//	@Failure		403 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/api/tenants/{tenantID} [get]
func (h *Tenant) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, err := request.RequireID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !requireTenantAccess(w, r, tenantID) {
		return
	}

	tenant, err := h.svc.GetByID(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, tenant)
}
