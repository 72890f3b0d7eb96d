package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Resolver modes for the DNS checker.
const (
	ResolverModeUpstream = "upstream"
	ResolverModeStatic   = "static"
)

// Runtime environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	ServiceName string
	Environment string
	LogLevel    string

	// Hostname constants consumed by the edge router. Resolved once at
	// process start, never read ad hoc mid-request.
	PlatformDomain string
	AppHost        string
	AdminHost      string
	MarketingHost  string

	CoreDatabaseURL string
	RedisAddr       string
	HTTPListenAddr  string

	// DNSResolvers is a comma-separated list of name=host:port pairs.
	DNSResolvers     string
	DNSLookupTimeout time.Duration
	ResolverMode     string
	// StaticCNAMEMap is a comma-separated list of host=target pairs used by
	// the static resolver in development.
	StaticCNAMEMap string

	VerificationTTL time.Duration
	TenantCacheTTL  time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:      getEnv("SERVICE_NAME", "edge-api"),
		Environment:      getEnv("ENVIRONMENT", EnvDevelopment),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PlatformDomain:   getEnv("PLATFORM_DOMAIN", ""),
		AppHost:          getEnv("APP_HOST", ""),
		AdminHost:        getEnv("ADMIN_HOST", ""),
		MarketingHost:    getEnv("MARKETING_HOST", ""),
		CoreDatabaseURL:  getEnv("CORE_DATABASE_URL", ""),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPListenAddr:   getEnv("HTTP_LISTEN_ADDR", ":8090"),
		DNSResolvers:     getEnv("DNS_RESOLVERS", "cloudflare=1.1.1.1:53,google=8.8.8.8:53"),
		ResolverMode:     getEnv("RESOLVER_MODE", ResolverModeUpstream),
		StaticCNAMEMap:   getEnv("STATIC_CNAME_MAP", ""),
	}

	var err error
	if cfg.DNSLookupTimeout, err = getDuration("DNS_LOOKUP_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.VerificationTTL, err = getDuration("VERIFICATION_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.TenantCacheTTL, err = getDuration("TENANT_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all fields required by the given binary are set.
func (c *Config) Validate(binary string) error {
	var missing []string

	switch binary {
	case "edge-api":
		if c.CoreDatabaseURL == "" {
			missing = append(missing, "CORE_DATABASE_URL")
		}
		if c.PlatformDomain == "" {
			missing = append(missing, "PLATFORM_DOMAIN")
		}
		if c.HTTPListenAddr == "" {
			missing = append(missing, "HTTP_LISTEN_ADDR")
		}
	}

	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return fmt.Errorf("ENVIRONMENT must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Environment)
	}
	if c.ResolverMode != ResolverModeUpstream && c.ResolverMode != ResolverModeStatic {
		return fmt.Errorf("RESOLVER_MODE must be %q or %q, got %q", ResolverModeUpstream, ResolverModeStatic, c.ResolverMode)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Resolvers parses DNS_RESOLVERS into name → address pairs, preserving order.
func (c *Config) Resolvers() ([][2]string, error) {
	var out [][2]string
	for _, pair := range strings.Split(c.DNSResolvers, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, addr, ok := strings.Cut(pair, "=")
		if !ok || name == "" || addr == "" {
			return nil, fmt.Errorf("invalid DNS_RESOLVERS entry %q, want name=host:port", pair)
		}
		out = append(out, [2]string{name, addr})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("DNS_RESOLVERS must name at least one resolver")
	}
	return out, nil
}

// StaticAnswers parses STATIC_CNAME_MAP into host → CNAME target pairs.
func (c *Config) StaticAnswers() (map[string]string, error) {
	answers := map[string]string{}
	for _, pair := range strings.Split(c.StaticCNAMEMap, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		host, target, ok := strings.Cut(pair, "=")
		if !ok || host == "" || target == "" {
			return nil, fmt.Errorf("invalid STATIC_CNAME_MAP entry %q, want host=target", pair)
		}
		answers[strings.ToLower(host)] = strings.ToLower(target)
	}
	return answers, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
