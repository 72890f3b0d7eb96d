package core

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/soldal/booking-platform/internal/platform"
)

// SessionService issues and revokes login sessions. Tokens are stored only as
// SHA-256 hashes; the raw token is returned once at creation.
type SessionService struct {
	db DB
}

func NewSessionService(db DB) *SessionService {
	return &SessionService{db: db}
}

// Create issues a session. A nil tenantID creates a platform-scoped session
// and requires the super_admin role.
func (s *SessionService) Create(ctx context.Context, tenantID *string, role string, ttl time.Duration) (string, error) {
	switch role {
	case RoleOwner, RoleAdmin:
		if tenantID == nil || *tenantID == "" {
			return "", fmt.Errorf("role %s requires a tenant", role)
		}
	case RoleSuperAdmin:
		if tenantID != nil {
			return "", fmt.Errorf("super_admin sessions are platform-scoped; tenant must be empty")
		}
	default:
		return "", fmt.Errorf("unknown role %q", role)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(raw)
	hash := sha256.Sum256([]byte(token))

	_, err := s.db.Exec(ctx, `
		INSERT INTO sessions (id, token_hash, tenant_id, role, expires_at)
		VALUES ($1, $2, $3, $4, $5)`,
		platform.NewID(), hex.EncodeToString(hash[:]), tenantID, role, time.Now().UTC().Add(ttl))
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Revoke deletes a session by id.
func (s *SessionService) Revoke(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %s not found", id)
	}
	return nil
}
