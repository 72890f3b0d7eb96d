package core

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/soldal/booking-platform/internal/dns"
	"github.com/soldal/booking-platform/internal/model"
)

// ---------- Mock DB ----------

// mockDB implements the DB interface for testing.
type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *mockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// ---------- Mock Row ----------

// mockRow implements pgx.Row for testing.
type mockRow struct {
	scanFunc func(dest ...any) error
}

func (m *mockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// notFoundRow yields pgx.ErrNoRows on scan.
func notFoundRow() *mockRow {
	return &mockRow{scanFunc: func(...any) error { return pgx.ErrNoRows }}
}

// tenantRow yields one tenant in the column order of tenantColumns.
func tenantRow(t *model.Tenant) *mockRow {
	return &mockRow{scanFunc: func(dest ...any) error {
		*dest[0].(*string) = t.ID
		*dest[1].(*string) = t.Slug
		*dest[2].(*string) = t.DisplayName
		*dest[3].(**string) = t.Domain
		*dest[4].(*string) = t.CustomSubdomain
		*dest[5].(*bool) = t.DomainVerified
		*dest[6].(**time.Time) = t.DomainVerifiedAt
		*dest[7].(*string) = t.DomainStatus
		*dest[8].(*string) = t.SSLStatus
		*dest[9].(**time.Time) = t.DomainLastCheck
		*dest[10].(**string) = t.VerificationToken
		*dest[11].(**time.Time) = t.VerificationExpiry
		*dest[12].(*string) = t.SubscriptionPlan
		*dest[13].(*string) = t.SubscriptionStatus
		*dest[14].(*time.Time) = t.CreatedAt
		*dest[15].(*time.Time) = t.UpdatedAt
		return nil
	}}
}

// ---------- Fake checker ----------

// fakeChecker returns a fixed propagation verdict and records what was asked.
type fakeChecker struct {
	resolved bool
	host     string
	expected string
}

func (f *fakeChecker) Check(_ context.Context, host, expected string) dns.PropagationResult {
	f.host = host
	f.expected = expected
	per := map[string]string{"cloudflare": dns.ResultPending, "google": dns.ResultPending}
	if f.resolved {
		per = map[string]string{"cloudflare": dns.ResultResolved, "google": dns.ResultResolved}
	}
	return dns.PropagationResult{Host: host, Expected: expected, PerResolver: per, Resolved: f.resolved}
}

// ---------- Fake cache ----------

// fakeCache is an in-memory TenantCache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]*model.Tenant
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*model.Tenant)}
}

func (c *fakeCache) Get(_ context.Context, key string) (*model.Tenant, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.entries[key]
	return t, ok
}

func (c *fakeCache) Set(_ context.Context, key string, t *model.Tenant) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = t
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.deleted = append(c.deleted, key)
	}
}
