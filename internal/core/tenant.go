package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/soldal/booking-platform/internal/model"
	"github.com/soldal/booking-platform/internal/platform"
)

// Principal is the authenticated identity attached to a request by the
// session middleware.
type Principal struct {
	SessionID string
	// TenantID is nil for super-admin sessions, which are platform-scoped.
	TenantID *string
	Role     string
}

// Principal roles.
const (
	RoleOwner      = "owner"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// TenantCache is a read-through cache over tenant lookups. Implementations
// must treat every method as best-effort; a cache outage degrades to database
// reads, never to request failures.
type TenantCache interface {
	Get(ctx context.Context, key string) (*model.Tenant, bool)
	Set(ctx context.Context, key string, t *model.Tenant)
	Delete(ctx context.Context, keys ...string)
}

// TenantService resolves and manages tenants.
type TenantService struct {
	db             DB
	cache          TenantCache
	platformDomain string
}

func NewTenantService(db DB, cache TenantCache, platformDomain string) *TenantService {
	return &TenantService{db: db, cache: cache, platformDomain: platformDomain}
}

const tenantColumns = `id, slug, display_name, domain, custom_subdomain,
		domain_verified, domain_verified_at, domain_status, ssl_status, domain_last_check,
		verification_token, verification_expiry,
		subscription_plan, subscription_status, created_at, updated_at`

func scanTenant(row pgx.Row) (*model.Tenant, error) {
	var t model.Tenant
	err := row.Scan(
		&t.ID, &t.Slug, &t.DisplayName, &t.Domain, &t.CustomSubdomain,
		&t.DomainVerified, &t.DomainVerifiedAt, &t.DomainStatus, &t.SSLStatus, &t.DomainLastCheck,
		&t.VerificationToken, &t.VerificationExpiry,
		&t.SubscriptionPlan, &t.SubscriptionStatus, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("scan tenant: %w", err)
	}
	return &t, nil
}

// Create registers a new tenant on the starter plan with no custom domain.
func (s *TenantService) Create(ctx context.Context, slug, displayName string) (*model.Tenant, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO tenants (id, slug, display_name, custom_subdomain,
			domain_status, ssl_status, subscription_plan, subscription_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+tenantColumns,
		platform.NewID(), slug, displayName, model.DefaultCustomSubdomain,
		model.DomainStatusUnset, model.SSLStatusPending, model.PlanStarter, model.SubscriptionTrial,
	)
	t, err := scanTenant(row)
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	return t, nil
}

// GetByID fetches a tenant, serving repeated lookups from the cache.
func (s *TenantService) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	if t, ok := s.cacheGet(ctx, cacheKeyID(id)); ok {
		return t, nil
	}

	t, err := s.getByIDFresh(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, t, cacheKeyID(id))
	return t, nil
}

// getByIDFresh always reads the database, bypassing the cache. Mutation paths
// use it so preconditions are evaluated against current state.
func (s *TenantService) getByIDFresh(ctx context.Context, id string) (*model.Tenant, error) {
	t, err := scanTenant(s.db.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant %s: %w", id, err)
	}
	return t, nil
}

// GetBySlug fetches a tenant by its URL slug.
func (s *TenantService) GetBySlug(ctx context.Context, slug string) (*model.Tenant, error) {
	t, err := scanTenant(s.db.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE slug = $1`, strings.ToLower(slug)))
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant by slug %s: %w", slug, err)
	}
	return t, nil
}

// ResolveByDomain maps a request hostname to its tenant. The match cascade:
//
//  1. exact match on the stored custom domain (after stripping any www
//     prefix),
//  2. match on the base domain with the leading label stripped, so
//     booking.parkbus.ca and parkbus.ca reach the same tenant,
//  3. slug lookup when the hostname is a subdomain of the platform domain.
//
// A miss is ErrTenantNotFound; callers render it as an informational page.
func (s *TenantService) ResolveByDomain(ctx context.Context, hostname string) (*model.Tenant, error) {
	host := platform.StripWWW(strings.ToLower(strings.TrimSpace(hostname)))
	if host == "" {
		return nil, ErrTenantNotFound
	}

	if t, ok := s.cacheGet(ctx, cacheKeyHost(host)); ok {
		return t, nil
	}

	stripped := host
	if i := strings.Index(host, "."); i > 0 {
		stripped = host[i+1:]
	}

	t, err := scanTenant(s.db.QueryRow(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants
		WHERE domain = $1 OR domain = $2
		ORDER BY domain = $1 DESC
		LIMIT 1`, host, stripped))
	if err == nil {
		s.cacheSet(ctx, t, cacheKeyHost(host), cacheKeyID(t.ID))
		return t, nil
	}
	if !errors.Is(err, ErrTenantNotFound) {
		return nil, fmt.Errorf("resolve tenant by domain %s: %w", host, err)
	}

	// Platform subdomain fallback: {slug}.{platform domain}.
	if suffix := "." + s.platformDomain; strings.HasSuffix(host, suffix) {
		slug := strings.TrimSuffix(host, suffix)
		if slug != "" && !strings.Contains(slug, ".") {
			t, err := s.GetBySlug(ctx, slug)
			if err == nil {
				s.cacheSet(ctx, t, cacheKeyHost(host), cacheKeyID(t.ID))
				return t, nil
			}
			if !errors.Is(err, ErrTenantNotFound) {
				return nil, err
			}
		}
	}

	return nil, ErrTenantNotFound
}

// ResolveByAuth maps an authenticated principal to its tenant. Super-admin
// principals are platform-scoped and deliberately resolve to no tenant.
func (s *TenantService) ResolveByAuth(ctx context.Context, p *Principal) (*model.Tenant, error) {
	if p == nil {
		return nil, ErrUnauthorized
	}
	if p.Role == RoleSuperAdmin {
		return nil, ErrPlatformScope
	}
	if p.TenantID == nil || *p.TenantID == "" {
		return nil, ErrUnauthorized
	}
	return s.GetByID(ctx, *p.TenantID)
}

func cacheKeyID(id string) string     { return "tenant:id:" + id }
func cacheKeyHost(host string) string { return "tenant:host:" + host }

func (s *TenantService) cacheGet(ctx context.Context, key string) (*model.Tenant, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, key)
}

func (s *TenantService) cacheSet(ctx context.Context, t *model.Tenant, keys ...string) {
	if s.cache == nil {
		return
	}
	for _, key := range keys {
		s.cache.Set(ctx, key, t)
	}
}

// invalidate drops every cache key a tenant row can be reached through. Called
// after any mutation of domain or subscription state.
func (s *TenantService) invalidate(ctx context.Context, t *model.Tenant) {
	if s.cache == nil || t == nil {
		return
	}
	keys := []string{
		cacheKeyID(t.ID),
		cacheKeyHost(t.PlatformHostname(s.platformDomain)),
	}
	if t.Domain != nil && *t.Domain != "" {
		keys = append(keys, cacheKeyHost(*t.Domain), cacheKeyHost(t.CustomDomainTarget()))
	}
	s.cache.Delete(ctx, keys...)
}
