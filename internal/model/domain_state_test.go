package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDomainPhaseColumns(t *testing.T) {
	tests := []struct {
		phase     DomainPhase
		sslStatus string
		want      DomainColumns
	}{
		{PhasePendingVerification, SSLStatusProvisioned, DomainColumns{DomainStatusPendingVerification, SSLStatusPending, false}},
		{PhaseExpired, SSLStatusPending, DomainColumns{DomainStatusPendingVerification, SSLStatusPending, false}},
		{PhaseVerifiedPendingSSL, SSLStatusPending, DomainColumns{DomainStatusPendingVerification, SSLStatusPending, true}},
		{PhaseReadyForActivation, SSLStatusProvisioned, DomainColumns{DomainStatusReadyForActivation, SSLStatusProvisioned, true}},
		{PhaseActive, SSLStatusProvisioned, DomainColumns{DomainStatusActive, SSLStatusActive, true}},
		{PhaseUnverified, SSLStatusActive, DomainColumns{DomainStatusUnset, SSLStatusPending, false}},
	}
	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.phase.Columns(tt.sslStatus))
		})
	}
}

func TestDomainPhaseOf(t *testing.T) {
	now := time.Now().UTC()
	domain := "parkbus.ca"
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Hour)

	t.Run("no domain", func(t *testing.T) {
		assert.Equal(t, PhaseUnverified, DomainPhaseOf(&Tenant{}, now))
	})

	t.Run("unverified with live token", func(t *testing.T) {
		tenant := &Tenant{Domain: &domain, VerificationExpiry: &future}
		assert.Equal(t, PhasePendingVerification, DomainPhaseOf(tenant, now))
	})

	t.Run("unverified with lapsed token", func(t *testing.T) {
		tenant := &Tenant{Domain: &domain, VerificationExpiry: &past}
		assert.Equal(t, PhaseExpired, DomainPhaseOf(tenant, now))
	})

	t.Run("verified without certificate", func(t *testing.T) {
		tenant := &Tenant{Domain: &domain, DomainVerified: true, SSLStatus: SSLStatusPending}
		assert.Equal(t, PhaseVerifiedPendingSSL, DomainPhaseOf(tenant, now))
	})

	t.Run("verified with certificate", func(t *testing.T) {
		tenant := &Tenant{Domain: &domain, DomainVerified: true, SSLStatus: SSLStatusProvisioned}
		assert.Equal(t, PhaseReadyForActivation, DomainPhaseOf(tenant, now))
	})

	t.Run("active", func(t *testing.T) {
		tenant := &Tenant{Domain: &domain, DomainVerified: true, DomainStatus: DomainStatusActive, SSLStatus: SSLStatusActive}
		assert.Equal(t, PhaseActive, DomainPhaseOf(tenant, now))
	})

	t.Run("verification dominates ssl", func(t *testing.T) {
		// A stale provisioned certificate does not advance an unverified domain.
		tenant := &Tenant{Domain: &domain, SSLStatus: SSLStatusProvisioned, VerificationExpiry: &future}
		assert.Equal(t, PhasePendingVerification, DomainPhaseOf(tenant, now))
	})
}
