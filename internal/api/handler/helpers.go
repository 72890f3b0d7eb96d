package handler

import (
	"errors"
	"net/http"

	mw "github.com/soldal/booking-platform/internal/api/middleware"
	"github.com/soldal/booking-platform/internal/api/response"
	"github.com/soldal/booking-platform/internal/core"
)

// writeDomainError maps service errors to response codes. Unknown errors are
// backing-store failures and surface as 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrTenantNotFound):
		response.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrDomainNotConfigured), core.IsInvalidDomain(err):
		response.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrPlanUpgradeRequired), errors.Is(err, core.ErrSubscriptionInactive):
		response.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, core.ErrDomainNotAuthorized):
		// Deliberately generic; the denial must not reveal what exists.
		response.WriteError(w, http.StatusForbidden, "Domain not authorized")
	case errors.Is(err, core.ErrUnauthorized):
		response.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, core.ErrPlatformScope):
		response.WriteError(w, http.StatusForbidden, err.Error())
	default:
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func principalFrom(r *http.Request) *core.Principal {
	return mw.GetPrincipal(r.Context())
}

// requireTenantAccess checks that the session principal is scoped to
// tenantID, or is a super admin. Writes the rejection itself.
func requireTenantAccess(w http.ResponseWriter, r *http.Request, tenantID string) bool {
	p := mw.GetPrincipal(r.Context())
	if p == nil {
		response.WriteError(w, http.StatusUnauthorized, "missing session")
		return false
	}
	if p.Role == core.RoleSuperAdmin {
		return true
	}
	if p.TenantID != nil && *p.TenantID == tenantID {
		return true
	}
	response.WriteError(w, http.StatusForbidden, "no access to this tenant")
	return false
}
