package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVICE_NAME", "ENVIRONMENT", "LOG_LEVEL", "PLATFORM_DOMAIN",
		"REDIS_ADDR", "HTTP_LISTEN_ADDR", "DNS_RESOLVERS", "RESOLVER_MODE",
		"DNS_LOOKUP_TIMEOUT", "VERIFICATION_TTL", "TENANT_CACHE_TTL",
	} {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "edge-api", cfg.ServiceName)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8090", cfg.HTTPListenAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, ResolverModeUpstream, cfg.ResolverMode)
	assert.Equal(t, 5*time.Second, cfg.DNSLookupTimeout)
	assert.Equal(t, 72*time.Hour, cfg.VerificationTTL)
	assert.Equal(t, 5*time.Minute, cfg.TenantCacheTTL)
}

func TestLoad_AllEnvVars(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PLATFORM_DOMAIN", "bookedby.app")
	t.Setenv("APP_HOST", "app.bookedby.app")
	t.Setenv("ADMIN_HOST", "admin.bookedby.app")
	t.Setenv("MARKETING_HOST", "bookedby.app")
	t.Setenv("CORE_DATABASE_URL", "postgres://localhost/booking")
	t.Setenv("VERIFICATION_TTL", "24h")
	t.Setenv("TENANT_CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "bookedby.app", cfg.PlatformDomain)
	assert.Equal(t, "app.bookedby.app", cfg.AppHost)
	assert.Equal(t, "admin.bookedby.app", cfg.AdminHost)
	assert.Equal(t, 24*time.Hour, cfg.VerificationTTL)
	assert.Equal(t, 90*time.Second, cfg.TenantCacheTTL)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("VERIFICATION_TTL", "three days")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VERIFICATION_TTL")
}

func TestValidate_EdgeAPI_MissingFields(t *testing.T) {
	cfg := &Config{Environment: EnvDevelopment, ResolverMode: ResolverModeUpstream}
	err := cfg.Validate("edge-api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORE_DATABASE_URL")
	assert.Contains(t, err.Error(), "PLATFORM_DOMAIN")
	assert.Contains(t, err.Error(), "HTTP_LISTEN_ADDR")
}

func TestValidate_BadEnvironment(t *testing.T) {
	cfg := &Config{Environment: "staging", ResolverMode: ResolverModeUpstream}
	err := cfg.Validate("edge-api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENVIRONMENT")
}

func TestValidate_BadResolverMode(t *testing.T) {
	cfg := &Config{Environment: EnvDevelopment, ResolverMode: "random"}
	err := cfg.Validate("edge-api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESOLVER_MODE")
}

func TestValidate_AllPresent(t *testing.T) {
	cfg := &Config{
		Environment:     EnvProduction,
		ResolverMode:    ResolverModeStatic,
		CoreDatabaseURL: "postgres://localhost/booking",
		PlatformDomain:  "bookedby.app",
		HTTPListenAddr:  ":8090",
	}
	assert.NoError(t, cfg.Validate("edge-api"))
}

func TestResolvers(t *testing.T) {
	cfg := &Config{DNSResolvers: "cloudflare=1.1.1.1:53, google=8.8.8.8:53"}
	resolvers, err := cfg.Resolvers()
	require.NoError(t, err)
	require.Len(t, resolvers, 2)
	assert.Equal(t, [2]string{"cloudflare", "1.1.1.1:53"}, resolvers[0])
	assert.Equal(t, [2]string{"google", "8.8.8.8:53"}, resolvers[1])
}

func TestResolvers_Invalid(t *testing.T) {
	cfg := &Config{DNSResolvers: "1.1.1.1:53"}
	_, err := cfg.Resolvers()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name=host:port")
}

func TestResolvers_Empty(t *testing.T) {
	cfg := &Config{DNSResolvers: ""}
	_, err := cfg.Resolvers()
	require.Error(t, err)
}

func TestStaticAnswers(t *testing.T) {
	cfg := &Config{StaticCNAMEMap: "booking.parkbus.ca=parkbus.bookedby.app, Other.Example.com=verify-abc.bookedby.app"}
	answers, err := cfg.StaticAnswers()
	require.NoError(t, err)
	assert.Equal(t, "parkbus.bookedby.app", answers["booking.parkbus.ca"])
	assert.Equal(t, "verify-abc.bookedby.app", answers["other.example.com"])
}
