package model

import "time"

// Tenant is one business customer of the platform. The domain_* and
// subscription_* column names and enum values are the wire contract with the
// data store and must not be renamed.
type Tenant struct {
	ID          string `json:"id" db:"id"`
	Slug        string `json:"slug" db:"slug"`
	DisplayName string `json:"display_name" db:"display_name"`

	Domain             *string    `json:"domain,omitempty" db:"domain"`
	CustomSubdomain    string     `json:"custom_subdomain" db:"custom_subdomain"`
	DomainVerified     bool       `json:"domain_verified" db:"domain_verified"`
	DomainVerifiedAt   *time.Time `json:"domain_verified_at,omitempty" db:"domain_verified_at"`
	DomainStatus       string     `json:"domain_status" db:"domain_status"`
	SSLStatus          string     `json:"ssl_status" db:"ssl_status"`
	DomainLastCheck    *time.Time `json:"domain_last_check,omitempty" db:"domain_last_check"`
	VerificationToken  *string    `json:"-" db:"verification_token"`
	VerificationExpiry *time.Time `json:"-" db:"verification_expiry"`

	SubscriptionPlan   string `json:"subscription_plan" db:"subscription_plan"`
	SubscriptionStatus string `json:"subscription_status" db:"subscription_status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Subscription plan constants.
const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// Subscription status constants.
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionSuspended = "suspended"
)

// Domain status constants (persisted enum).
const (
	DomainStatusUnset               = "unset"
	DomainStatusPendingVerification = "pending_verification"
	DomainStatusReadyForActivation  = "ready_for_activation"
	DomainStatusActive              = "active"
)

// SSL status constants (persisted enum).
const (
	SSLStatusPending     = "pending"
	SSLStatusProvisioned = "provisioned"
	SSLStatusActive      = "active"
	SSLStatusFailed      = "failed"
)

// DefaultCustomSubdomain is the label prefixed to a tenant's custom domain
// when none is chosen during setup.
const DefaultCustomSubdomain = "booking"

// CustomDomainAllowed reports whether the tenant's plan and subscription
// permit a custom domain at all. Only professional and enterprise plans with
// a live subscription qualify.
func (t *Tenant) CustomDomainAllowed() bool {
	if t.SubscriptionPlan != PlanProfessional && t.SubscriptionPlan != PlanEnterprise {
		return false
	}
	return t.SubscriptionStatus != SubscriptionCancelled && t.SubscriptionStatus != SubscriptionSuspended
}

// CustomDomainTarget returns the full customer-facing hostname for the
// tenant's custom domain, e.g. "booking.parkbus.ca". Empty when no domain is
// configured.
func (t *Tenant) CustomDomainTarget() string {
	if t.Domain == nil || *t.Domain == "" {
		return ""
	}
	sub := t.CustomSubdomain
	if sub == "" {
		sub = DefaultCustomSubdomain
	}
	return sub + "." + *t.Domain
}

// PlatformHostname returns the platform-hosted hostname for the tenant,
// e.g. "parkbus.bookedby.app".
func (t *Tenant) PlatformHostname(platformDomain string) string {
	return t.Slug + "." + platformDomain
}
