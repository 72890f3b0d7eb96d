package core

import "errors"

// Typed sentinel errors. Handlers map these to response codes; everything
// else is treated as a backing-store failure.
var (
	// ErrTenantNotFound is a common, expected condition (mistyped domain,
	// DNS not yet propagated) and must render as an informational page,
	// never a crash.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrUnauthorized means no usable principal was attached to the request.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPlatformScope marks a super-admin principal: platform scope, not a
	// single tenant.
	ErrPlatformScope = errors.New("principal has platform scope, not a tenant binding")

	// ErrPlanUpgradeRequired rejects custom-domain operations for plans that
	// do not include them.
	ErrPlanUpgradeRequired = errors.New("custom domains require a professional or enterprise plan")

	// ErrSubscriptionInactive rejects custom-domain operations while the
	// subscription is cancelled or suspended.
	ErrSubscriptionInactive = errors.New("subscription is not active")

	// ErrDomainNotConfigured means the tenant has no custom domain set up.
	ErrDomainNotConfigured = errors.New("no custom domain configured")

	// ErrDomainNotAuthorized is the deliberately generic TLS authorization
	// denial. It must not reveal which domains or tenants exist.
	ErrDomainNotAuthorized = errors.New("domain not authorized")
)

// InvalidDomainError rejects malformed domain input at the boundary with a
// specific corrective message.
type InvalidDomainError struct {
	Reason string
}

func (e *InvalidDomainError) Error() string {
	return "invalid domain: " + e.Reason
}

// IsInvalidDomain reports whether err is an InvalidDomainError.
func IsInvalidDomain(err error) bool {
	var ide *InvalidDomainError
	return errors.As(err, &ide)
}
