package core

import (
	"time"
)

// Services bundles the core services for injection into the API layer.
type Services struct {
	Tenant  *TenantService
	Domain  *DomainService
	Session *SessionService
}

func NewServices(db DB, cache TenantCache, checker CNAMEChecker, platformDomain string, verificationTTL time.Duration) *Services {
	tenants := NewTenantService(db, cache, platformDomain)
	return &Services{
		Tenant:  tenants,
		Domain:  NewDomainService(db, tenants, checker, platformDomain, verificationTTL),
		Session: NewSessionService(db),
	}
}
