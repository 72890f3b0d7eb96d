package request

// InitiateDomainVerification starts (or restarts) custom-domain setup for the
// caller's tenant. Subdomain defaults to the platform-wide booking label when
// omitted.
type InitiateDomainVerification struct {
	Domain    string `json:"domain" validate:"required"`
	Subdomain string `json:"subdomain" validate:"omitempty,dnslabel"`
}

// CreateTenant registers a new tenant.
type CreateTenant struct {
	Slug        string `json:"slug" validate:"required,dnslabel"`
	DisplayName string `json:"display_name" validate:"required"`
}
