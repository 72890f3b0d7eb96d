package handler

import (
	"net/http"

	mw "github.com/soldal/booking-platform/internal/api/middleware"
	"github.com/soldal/booking-platform/internal/api/response"
	"github.com/soldal/booking-platform/internal/core"
)

type Session struct {
	svc *core.SessionService
}

func NewSession(services *core.Services) *Session {
	return &Session{svc: services.Session}
}

// Delete revokes the caller's own session (logout).
func (h *Session) Delete(w http.ResponseWriter, r *http.Request) {
	p := mw.GetPrincipal(r.Context())
	if p == nil {
		response.WriteError(w, http.StatusUnauthorized, "missing session")
		return
	}

	if err := h.svc.Revoke(r.Context(), p.SessionID); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
