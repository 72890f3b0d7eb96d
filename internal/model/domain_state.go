package model

import "time"

// DomainPhase is the canonical internal state of a tenant's custom-domain
// lifecycle. The three persisted columns (domain_status, ssl_status,
// domain_verified) are derived from it on write; mutation preconditions are
// expressed against the columns so concurrent transitions serialize on the
// tenant row.
type DomainPhase string

const (
	PhaseUnverified          DomainPhase = "unverified"
	PhasePendingVerification DomainPhase = "pending_verification"
	PhaseVerifiedPendingSSL  DomainPhase = "verified_pending_ssl"
	PhaseReadyForActivation  DomainPhase = "ready_for_activation"
	PhaseActive              DomainPhase = "active"
	// PhaseExpired is a recoverable terminal substate: the verification token
	// lapsed before the operator published the CNAME. Retry issues a new token.
	PhaseExpired DomainPhase = "expired"
)

// DomainColumns is the persisted projection of a DomainPhase.
type DomainColumns struct {
	DomainStatus   string
	SSLStatus      string
	DomainVerified bool
}

// Columns derives the persisted column trio for a phase. sslStatus carries
// the current stored ssl_status so provisioned/active survive transitions
// that do not own the SSL field.
func (p DomainPhase) Columns(sslStatus string) DomainColumns {
	switch p {
	case PhasePendingVerification, PhaseExpired:
		return DomainColumns{DomainStatusPendingVerification, SSLStatusPending, false}
	case PhaseVerifiedPendingSSL:
		// Ownership is proven but the operator-visible phase has not advanced
		// past verification until a certificate is provisioned.
		return DomainColumns{DomainStatusPendingVerification, sslStatus, true}
	case PhaseReadyForActivation:
		return DomainColumns{DomainStatusReadyForActivation, sslStatus, true}
	case PhaseActive:
		return DomainColumns{DomainStatusActive, SSLStatusActive, true}
	default:
		return DomainColumns{DomainStatusUnset, SSLStatusPending, false}
	}
}

// DomainPhaseOf reconstructs the lifecycle phase from a tenant row, for
// status reporting. Verification dominates: an unverified domain is in the
// verification phase no matter what ssl_status says.
func DomainPhaseOf(t *Tenant, now time.Time) DomainPhase {
	if t.Domain == nil || *t.Domain == "" {
		return PhaseUnverified
	}
	if !t.DomainVerified {
		if t.VerificationExpiry != nil && now.After(*t.VerificationExpiry) {
			return PhaseExpired
		}
		return PhasePendingVerification
	}
	if t.DomainStatus == DomainStatusActive {
		return PhaseActive
	}
	if t.SSLStatus == SSLStatusProvisioned || t.SSLStatus == SSLStatusActive {
		return PhaseReadyForActivation
	}
	return PhaseVerifiedPendingSSL
}
