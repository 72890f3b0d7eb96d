package platform

import (
	"net"
	"strings"
)

// HostInfo is the result of parsing a raw Host header.
type HostInfo struct {
	// Subdomain is the leading label, or "" when the host has no subdomain.
	Subdomain string
	// IsLocalDevelopment is set for any host containing "localhost", which
	// short-circuits production domain comparisons.
	IsLocalDevelopment bool
}

// ParseHost extracts the subdomain from a raw Host header. Pure and total:
// malformed input yields an empty subdomain, never an error. The leading
// label counts as a subdomain only when the host has at least three labels
// (sub + registrable domain), so "example.com" parses to no subdomain while
// "booking.example.com" parses to "booking".
func ParseHost(host string) HostInfo {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	info := HostInfo{IsLocalDevelopment: strings.Contains(host, "localhost")}
	if host == "" {
		return info
	}

	labels := strings.Split(strings.TrimSuffix(host, "."), ".")
	if info.IsLocalDevelopment {
		// app.localhost has one label besides the localhost marker.
		if len(labels) >= 2 && labels[0] != "localhost" {
			info.Subdomain = labels[0]
		}
		return info
	}
	if len(labels) >= 3 && labels[0] != "" {
		info.Subdomain = labels[0]
	}
	return info
}

// StripWWW removes a leading "www." label from a hostname.
func StripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}
