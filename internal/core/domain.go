package core

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/soldal/booking-platform/internal/dns"
	"github.com/soldal/booking-platform/internal/model"
	"github.com/soldal/booking-platform/internal/platform"
)

// CNAMEChecker verifies CNAME propagation for a hostname. Satisfied by
// *dns.Checker.
type CNAMEChecker interface {
	Check(ctx context.Context, host, expected string) dns.PropagationResult
}

// Operator-facing status strings returned by the pipeline operations.
const (
	StatusPending             = "pending"
	StatusVerified            = "verified"
	StatusExpired             = "expired"
	StatusPendingVerification = "pending_verification"
	StatusPendingSSL          = "pending_ssl"
	StatusReadyForActivation  = "ready_for_activation"
	StatusActive              = "active"
)

// VerificationInstructions tells the operator which CNAME record proves
// domain ownership.
type VerificationInstructions struct {
	Domain      string    `json:"domain"`
	CNAMESource string    `json:"cname_source"`
	CNAMETarget string    `json:"cname_target"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// VerificationStatus is the result of a checkStatus poll.
type VerificationStatus struct {
	Status       string                    `json:"status"`
	Propagation  *dns.PropagationResult    `json:"propagation,omitempty"`
	Instructions *VerificationInstructions `json:"instructions,omitempty"`
}

// ActivationStatus is the result of an activation check.
type ActivationStatus struct {
	Status          string                 `json:"status"`
	CustomDomain    string                 `json:"custom_domain,omitempty"`
	ExpectedCNAME   string                 `json:"expected_cname,omitempty"`
	TestURL         string                 `json:"test_url,omitempty"`
	ReadyForTraffic bool                   `json:"ready_for_traffic"`
	Propagation     *dns.PropagationResult `json:"propagation,omitempty"`
	Instructions    *CNAMEInstructions     `json:"instructions,omitempty"`

	// JustActivated is set on the call that performed the transition to
	// active, so the caller can distinguish activation from a repeat check.
	JustActivated bool `json:"-"`
}

// TLSAuthorization is the positive answer to an on-demand certificate
// authorization query.
type TLSAuthorization struct {
	Authorized bool   `json:"authorized"`
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	Domain     string `json:"domain"`
}

// DomainService drives the custom-domain verification and activation
// lifecycle. All state transitions go through single UPDATE statements whose
// WHERE clauses restate the expected prior state, so concurrent transitions
// serialize on the tenant row instead of clobbering each other.
type DomainService struct {
	db              DB
	tenants         *TenantService
	checker         CNAMEChecker
	platformDomain  string
	verificationTTL time.Duration
}

func NewDomainService(db DB, tenants *TenantService, checker CNAMEChecker, platformDomain string, verificationTTL time.Duration) *DomainService {
	return &DomainService{
		db:              db,
		tenants:         tenants,
		checker:         checker,
		platformDomain:  platformDomain,
		verificationTTL: verificationTTL,
	}
}

// PlatformDomain exposes the configured platform root domain for callers
// that build platform hostnames.
func (s *DomainService) PlatformDomain() string {
	return s.platformDomain
}

var domainNamePattern = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}$`)

// ValidateCustomDomain normalizes and validates an operator-supplied domain.
// The domain must be the bare registrable name; the booking subdomain is
// layered on top of it by the platform.
func ValidateCustomDomain(domain, subdomain string) (string, error) {
	domain = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(domain, ".")))
	switch {
	case domain == "":
		return "", &InvalidDomainError{Reason: "domain is required"}
	case strings.HasPrefix(domain, "www."):
		return "", &InvalidDomainError{Reason: "enter the domain without the www prefix"}
	case subdomain != "" && strings.HasPrefix(domain, subdomain+"."):
		return "", &InvalidDomainError{Reason: fmt.Sprintf("enter the domain without the %s subdomain; it is added automatically", subdomain)}
	case !domainNamePattern.MatchString(domain):
		return "", &InvalidDomainError{Reason: "not a valid domain name"}
	}
	return domain, nil
}

// Initiate configures (or reconfigures) a custom domain for a tenant and
// issues a fresh verification token. The tenant drops back to the
// unverified phase regardless of where it was before.
func (s *DomainService) Initiate(ctx context.Context, tenantID, domain, subdomain string) (*VerificationInstructions, error) {
	t, err := s.tenants.getByIDFresh(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCustomDomainPlan(t); err != nil {
		return nil, err
	}

	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if subdomain == "" {
		subdomain = model.DefaultCustomSubdomain
	}
	domain, err = ValidateCustomDomain(domain, subdomain)
	if err != nil {
		return nil, err
	}

	token := platform.NewVerificationToken()
	expiry := time.Now().UTC().Add(s.verificationTTL)
	cols := model.PhasePendingVerification.Columns(t.SSLStatus)

	// Every field of the verification state changes in one statement; there
	// is no intermediate row an observer can see.
	tag, err := s.db.Exec(ctx, `
		UPDATE tenants
		SET domain = $1, custom_subdomain = $2,
			verification_token = $3, verification_expiry = $4,
			domain_verified = $5, domain_verified_at = NULL,
			domain_status = $6, ssl_status = $7, domain_last_check = NULL,
			updated_at = now()
		WHERE id = $8`,
		domain, subdomain, token, expiry,
		cols.DomainVerified, cols.DomainStatus, cols.SSLStatus, tenantID)
	if err != nil {
		return nil, fmt.Errorf("initiate domain verification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrTenantNotFound
	}
	s.tenants.invalidate(ctx, t)

	return &VerificationInstructions{
		Domain:      domain,
		CNAMESource: subdomain + "." + domain,
		CNAMETarget: dns.VerificationTarget(token, s.platformDomain),
		ExpiresAt:   expiry,
	}, nil
}

// CheckStatus polls verification progress. A propagated token CNAME flips
// the tenant to verified; an un-propagated one reports pending with the
// instructions repeated. Polling after the token expired reports expired and
// changes nothing.
func (s *DomainService) CheckStatus(ctx context.Context, tenantID string) (*VerificationStatus, error) {
	t, err := s.tenants.getByIDFresh(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t.Domain == nil || *t.Domain == "" {
		return nil, ErrDomainNotConfigured
	}
	if t.DomainVerified {
		return &VerificationStatus{Status: StatusVerified}, nil
	}
	if t.VerificationToken == nil {
		return nil, ErrDomainNotConfigured
	}

	now := time.Now().UTC()
	if t.VerificationExpiry != nil && now.After(*t.VerificationExpiry) {
		return &VerificationStatus{Status: StatusExpired}, nil
	}

	expected := dns.VerificationTarget(*t.VerificationToken, s.platformDomain)
	prop := s.checker.Check(ctx, t.CustomDomainTarget(), expected)
	if !prop.Resolved {
		return &VerificationStatus{
			Status:      StatusPending,
			Propagation: &prop,
			Instructions: &VerificationInstructions{
				Domain:      *t.Domain,
				CNAMESource: t.CustomDomainTarget(),
				CNAMETarget: expected,
				ExpiresAt:   derefTime(t.VerificationExpiry),
			},
		}, nil
	}

	// The token in the WHERE clause pins the transition to this verification
	// attempt; a concurrent re-initiate makes it a no-op.
	tag, err := s.db.Exec(ctx, `
		UPDATE tenants
		SET domain_verified = true, domain_verified_at = now(), updated_at = now()
		WHERE id = $1 AND verification_token = $2 AND domain_verified = false`,
		tenantID, *t.VerificationToken)
	if err != nil {
		return nil, fmt.Errorf("mark domain verified: %w", err)
	}
	if tag.RowsAffected() > 0 {
		s.tenants.invalidate(ctx, t)
	}

	return &VerificationStatus{Status: StatusVerified, Propagation: &prop}, nil
}

// CheckActivation checks whether the customer-facing CNAME points at the
// platform and activates the domain when it does. Precondition failures
// report as statuses, not errors: an unverified domain is pending
// verification, a verified one without a certificate is pending SSL. Neither
// precondition failure mutates state; an unresolved CNAME only touches
// domain_last_check.
func (s *DomainService) CheckActivation(ctx context.Context, tenantID string) (*ActivationStatus, error) {
	t, err := s.tenants.getByIDFresh(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t.Domain == nil || *t.Domain == "" {
		return nil, ErrDomainNotConfigured
	}
	if !t.DomainVerified {
		return &ActivationStatus{Status: StatusPendingVerification}, nil
	}
	if t.SSLStatus != model.SSLStatusProvisioned && t.SSLStatus != model.SSLStatusActive {
		return &ActivationStatus{Status: StatusPendingSSL}, nil
	}

	host := t.CustomDomainTarget()
	expected := t.PlatformHostname(s.platformDomain)
	prop := s.checker.Check(ctx, host, expected)

	if !prop.Resolved {
		if _, err := s.db.Exec(ctx,
			`UPDATE tenants SET domain_last_check = now() WHERE id = $1`, tenantID); err != nil {
			return nil, fmt.Errorf("record activation check: %w", err)
		}
		return &ActivationStatus{
			Status:        StatusReadyForActivation,
			CustomDomain:  host,
			ExpectedCNAME: expected,
			Propagation:   &prop,
			Instructions:  ActivationInstructions(t.CustomSubdomain, *t.Domain, expected),
		}, nil
	}

	cols := model.PhaseActive.Columns(t.SSLStatus)
	tag, err := s.db.Exec(ctx, `
		UPDATE tenants
		SET domain_status = $1, ssl_status = $2, domain_last_check = now(), updated_at = now()
		WHERE id = $3 AND domain_verified = true
			AND ssl_status IN ($4, $5)`,
		cols.DomainStatus, cols.SSLStatus, tenantID,
		model.SSLStatusProvisioned, model.SSLStatusActive)
	if err != nil {
		return nil, fmt.Errorf("activate domain: %w", err)
	}
	if tag.RowsAffected() > 0 {
		s.tenants.invalidate(ctx, t)
	}

	return &ActivationStatus{
		Status:          StatusActive,
		CustomDomain:    host,
		TestURL:         "https://" + host,
		ReadyForTraffic: true,
		Propagation:     &prop,
		JustActivated:   t.DomainStatus != model.DomainStatusActive,
	}, nil
}

// Retry restarts verification for the already-configured domain with a fresh
// token. The plan gate applies again, so a downgraded tenant cannot revive an
// expired verification.
func (s *DomainService) Retry(ctx context.Context, tenantID string) (*VerificationInstructions, error) {
	t, err := s.tenants.getByIDFresh(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t.Domain == nil || *t.Domain == "" {
		return nil, ErrDomainNotConfigured
	}
	return s.Initiate(ctx, tenantID, *t.Domain, t.CustomSubdomain)
}

// AuthorizeTLS answers the certificate issuer's on-demand authorization query
// for hostname. A positive answer additionally records that a certificate is
// being provisioned. Every negative answer is the same generic
// ErrDomainNotAuthorized so probes cannot enumerate configured domains.
func (s *DomainService) AuthorizeTLS(ctx context.Context, hostname string) (*TLSAuthorization, error) {
	host := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(hostname, ".")))
	if host == "" || !domainNamePattern.MatchString(host) {
		return nil, ErrDomainNotAuthorized
	}

	// Match the full hostname or the hostname with its leading label removed,
	// covering both booking.parkbus.ca and parkbus.ca against a stored
	// domain of parkbus.ca.
	stripped := host
	if i := strings.Index(host, "."); i > 0 {
		stripped = host[i+1:]
	}

	t, err := scanTenant(s.db.QueryRow(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants
		WHERE (domain = $1 OR domain = $2) AND domain_verified = true
		LIMIT 1`, host, stripped))
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, ErrDomainNotAuthorized
		}
		return nil, fmt.Errorf("authorize tls for %s: %w", host, err)
	}
	if !t.CustomDomainAllowed() {
		return nil, ErrDomainNotAuthorized
	}

	// Side effect of a positive answer: the issuer is about to provision a
	// certificate. An already-active status is not regressed.
	if t.SSLStatus != model.SSLStatusActive {
		if _, err := s.db.Exec(ctx, `
			UPDATE tenants
			SET ssl_status = $1, domain_last_check = now(), updated_at = now()
			WHERE id = $2 AND ssl_status <> $3`,
			model.SSLStatusProvisioned, t.ID, model.SSLStatusActive); err != nil {
			return nil, fmt.Errorf("record ssl provisioning: %w", err)
		}
		s.tenants.invalidate(ctx, t)
	}

	return &TLSAuthorization{
		Authorized: true,
		TenantID:   t.ID,
		TenantName: t.DisplayName,
		Domain:     host,
	}, nil
}

// RemoveDomain clears a tenant's custom-domain configuration entirely,
// returning it to platform-subdomain hosting.
func (s *DomainService) RemoveDomain(ctx context.Context, tenantID string) error {
	t, err := s.tenants.getByIDFresh(ctx, tenantID)
	if err != nil {
		return err
	}

	cols := model.PhaseUnverified.Columns(model.SSLStatusPending)
	tag, err := s.db.Exec(ctx, `
		UPDATE tenants
		SET domain = NULL, verification_token = NULL, verification_expiry = NULL,
			domain_verified = $1, domain_verified_at = NULL,
			domain_status = $2, ssl_status = $3, domain_last_check = NULL,
			updated_at = now()
		WHERE id = $4`,
		cols.DomainVerified, cols.DomainStatus, cols.SSLStatus, tenantID)
	if err != nil {
		return fmt.Errorf("remove domain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	s.tenants.invalidate(ctx, t)
	return nil
}

func (s *DomainService) requireCustomDomainPlan(t *model.Tenant) error {
	if t.SubscriptionPlan != model.PlanProfessional && t.SubscriptionPlan != model.PlanEnterprise {
		return ErrPlanUpgradeRequired
	}
	if t.SubscriptionStatus == model.SubscriptionCancelled || t.SubscriptionStatus == model.SubscriptionSuspended {
		return ErrSubscriptionInactive
	}
	return nil
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
