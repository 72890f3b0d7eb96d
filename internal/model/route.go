package model

// Route types produced by the classifier.
const (
	RouteCustomer = "customer"
	RouteAdmin    = "admin"
	RoutePlatform = "platform"
)

// Tenant detection methods.
const (
	DetectByDomain = "domain"
	DetectByAuth   = "auth"
	DetectNone     = "none"
)

// RouteClassification describes one request. It is never persisted.
type RouteClassification struct {
	Type                  string `json:"type"`
	RequiresAuth          bool   `json:"requires_auth"`
	TenantDetectionMethod string `json:"tenant_detection_method"`
}
