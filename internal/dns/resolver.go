// Package dns performs CNAME propagation checks against multiple independent
// upstream resolvers, so a single resolver's cache is never trusted on its
// own.
package dns

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soldal/booking-platform/internal/config"
)

// Per-resolver check results.
const (
	ResultResolved = "resolved"
	ResultPending  = "pending"
)

// Resolver answers a single CNAME lookup.
type Resolver interface {
	LookupCNAME(ctx context.Context, host string) (string, error)
}

// NamedResolver pairs a resolver with the name it is reported under.
type NamedResolver struct {
	Name     string
	Resolver Resolver
}

// Upstream queries one fixed public resolver address, bypassing the host's
// stub resolver.
type Upstream struct {
	resolver *net.Resolver
}

func NewUpstream(addr string) *Upstream {
	return &Upstream{
		resolver: &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, network, addr)
			},
		},
	}
}

func (u *Upstream) LookupCNAME(ctx context.Context, host string) (string, error) {
	return u.resolver.LookupCNAME(ctx, host)
}

// StaticResolver serves answers from a fixed table. Used in development
// instead of real lookups; hosts without an entry report as unresolved.
type StaticResolver struct {
	Answers map[string]string
}

func (s *StaticResolver) LookupCNAME(_ context.Context, host string) (string, error) {
	if target, ok := s.Answers[normalize(host)]; ok {
		return target, nil
	}
	return "", &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
}

// PropagationResult aggregates one CNAME check across all resolvers.
type PropagationResult struct {
	Host        string            `json:"host"`
	Expected    string            `json:"expected"`
	PerResolver map[string]string `json:"per_resolver"`
	// Resolved is set only when every resolver returned the expected target.
	Resolved bool `json:"resolved"`
}

// Checker fans a CNAME lookup out to all configured resolvers concurrently.
type Checker struct {
	resolvers []NamedResolver
	timeout   time.Duration
}

func NewChecker(resolvers []NamedResolver, timeout time.Duration) *Checker {
	return &Checker{resolvers: resolvers, timeout: timeout}
}

// NewCheckerFromConfig builds a Checker for the configured resolver mode.
func NewCheckerFromConfig(cfg *config.Config) (*Checker, error) {
	if cfg.ResolverMode == config.ResolverModeStatic {
		answers, err := cfg.StaticAnswers()
		if err != nil {
			return nil, err
		}
		return NewChecker([]NamedResolver{{Name: "static", Resolver: &StaticResolver{Answers: answers}}}, cfg.DNSLookupTimeout), nil
	}

	pairs, err := cfg.Resolvers()
	if err != nil {
		return nil, err
	}
	resolvers := make([]NamedResolver, 0, len(pairs))
	for _, p := range pairs {
		resolvers = append(resolvers, NamedResolver{Name: p[0], Resolver: NewUpstream(p[1])})
	}
	return NewChecker(resolvers, cfg.DNSLookupTimeout), nil
}

// Check looks up host against every resolver and compares each answer to the
// expected CNAME target. Lookup failures and timeouts report as pending, not
// as errors: propagation delay is an expected condition.
func (c *Checker) Check(ctx context.Context, host, expected string) PropagationResult {
	result := PropagationResult{
		Host:        host,
		Expected:    normalize(expected),
		PerResolver: make(map[string]string, len(c.resolvers)),
	}

	statuses := make([]string, len(c.resolvers))
	g, gctx := errgroup.WithContext(ctx)
	for i, nr := range c.resolvers {
		g.Go(func() error {
			lookupCtx, cancel := context.WithTimeout(gctx, c.timeout)
			defer cancel()

			statuses[i] = ResultPending
			cname, err := nr.Resolver.LookupCNAME(lookupCtx, host)
			if err == nil && normalize(cname) == result.Expected {
				statuses[i] = ResultResolved
			}
			return nil
		})
	}
	// Lookups never surface errors through the group.
	_ = g.Wait()

	result.Resolved = len(c.resolvers) > 0
	for i, nr := range c.resolvers {
		result.PerResolver[nr.Name] = statuses[i]
		if statuses[i] != ResultResolved {
			result.Resolved = false
		}
	}
	return result
}

// normalize lowercases a DNS name and removes the trailing dot so answers in
// FQDN notation compare equal to configured targets.
func normalize(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
}

// VerificationTarget builds the CNAME target the operator must publish during
// the ownership-verification phase, e.g. "verify-ab12cd34.bookedby.app".
func VerificationTarget(token, platformDomain string) string {
	return fmt.Sprintf("verify-%s.%s", token, platformDomain)
}
