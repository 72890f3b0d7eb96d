// Package routing decides, per request, which surface of the platform a
// request belongs to: the public storefront of a tenant (customer), the
// tenant admin dashboard (admin), or the platform itself.
package routing

import (
	"regexp"
	"strings"

	"github.com/soldal/booking-platform/internal/model"
)

// AdminPathRoot is the reserved path root for the tenant admin dashboard.
// Every path beneath it is an admin route regardless of depth.
const AdminPathRoot = "/dashboard"

// Customer storefront routes, matched before anything else.
var customerExactPaths = map[string]bool{
	"/search":   true,
	"/cart":     true,
	"/checkout": true,
	"/trips":    true,
}

var customerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/trip/[^/]+`),
	regexp.MustCompile(`^/book/[^/]+`),
	regexp.MustCompile(`^/account(/|$)`),
	regexp.MustCompile(`^/reviews(/|$)`),
	regexp.MustCompile(`^/gift-cards(/|$)`),
}

// Customer routes that require an authenticated storefront session.
var customerAuthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/account(/|$)`),
	regexp.MustCompile(`^/checkout$`),
}

// Platform-internal routes: marketing, onboarding, and auth surfaces that
// belong to no tenant.
var platformExactPaths = map[string]bool{
	"/":         true,
	"/platform": true,
	"/pricing":  true,
	"/login":    true,
	"/signup":   true,
	"/logout":   true,
}

var platformPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/onboarding(/|$)`),
	regexp.MustCompile(`^/legal(/|$)`),
	regexp.MustCompile(`^/platform(/|$)`),
}

// Classify maps a URL path to a route classification. Rule sets are evaluated
// customer first, then the admin path root, then platform. Unmatched paths
// fall open to the customer storefront with domain detection: an unrecognized
// path must never be silently granted admin or platform trust.
func Classify(path string) model.RouteClassification {
	if path == "" {
		path = "/"
	}

	if customerExactPaths[path] || matchesAny(customerPatterns, path) {
		return model.RouteClassification{
			Type:                  model.RouteCustomer,
			RequiresAuth:          matchesAny(customerAuthPatterns, path),
			TenantDetectionMethod: model.DetectByDomain,
		}
	}

	if path == AdminPathRoot || strings.HasPrefix(path, AdminPathRoot+"/") {
		return model.RouteClassification{
			Type:                  model.RouteAdmin,
			RequiresAuth:          true,
			TenantDetectionMethod: model.DetectByAuth,
		}
	}

	if platformExactPaths[path] || matchesAny(platformPatterns, path) {
		return model.RouteClassification{
			Type:                  model.RoutePlatform,
			TenantDetectionMethod: model.DetectNone,
		}
	}

	return model.RouteClassification{
		Type:                  model.RouteCustomer,
		TenantDetectionMethod: model.DetectByDomain,
	}
}

func matchesAny(patterns []*regexp.Regexp, path string) bool {
	for _, p := range patterns {
		if p.MatchString(path) {
			return true
		}
	}
	return false
}
