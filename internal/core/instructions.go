package core

// ProviderGuide is a step-by-step CNAME walkthrough for one DNS provider.
type ProviderGuide struct {
	Provider string   `json:"provider"`
	Steps    []string `json:"steps"`
}

// CNAMEInstructions is the full record-setup payload rendered by the domain
// settings screen.
type CNAMEInstructions struct {
	RecordType      string          `json:"record_type"`
	Source          string          `json:"source"`
	Target          string          `json:"target"`
	FullSource      string          `json:"full_source"`
	Note            string          `json:"note"`
	Providers       []ProviderGuide `json:"providers"`
	Troubleshooting []string        `json:"troubleshooting"`
}

// ActivationInstructions builds the operator-facing CNAME instructions for
// pointing subdomain.domain at target.
func ActivationInstructions(subdomain, domain, target string) *CNAMEInstructions {
	return &CNAMEInstructions{
		RecordType: "CNAME",
		Source:     subdomain,
		Target:     target,
		FullSource: subdomain + "." + domain,
		Note:       "Create the record on the subdomain only. Do not change records on the bare domain; your existing website stays untouched.",
		Providers: []ProviderGuide{
			{
				Provider: "Cloudflare",
				Steps: []string{
					"Open the dashboard for " + domain + " and go to DNS > Records.",
					"Add a record with type CNAME, name " + subdomain + ", target " + target + ".",
					"Set the proxy status to DNS only (grey cloud). A proxied record hides the CNAME target and verification will not complete.",
					"Save the record.",
				},
			},
			{
				Provider: "GoDaddy",
				Steps: []string{
					"Open My Products, find " + domain + " and choose Manage DNS.",
					"Select Add New Record with type CNAME.",
					"Enter " + subdomain + " as the name and " + target + " as the value.",
					"Leave TTL at the default and save.",
				},
			},
			{
				Provider: "Namecheap",
				Steps: []string{
					"Open Domain List, click Manage next to " + domain + " and open Advanced DNS.",
					"Add a new record of type CNAME Record.",
					"Set host to " + subdomain + " and value to " + target + ".",
					"Keep TTL on Automatic and save all changes.",
				},
			},
			{
				Provider: "Squarespace",
				Steps: []string{
					"Open Settings > Domains and select " + domain + ".",
					"Open the DNS settings and choose Add Record.",
					"Pick CNAME, set host to " + subdomain + " and data to " + target + ".",
					"Save. Squarespace can take a few minutes to publish the record.",
				},
			},
		},
		Troubleshooting: []string{
			"DNS changes can take from a few minutes to 48 hours to propagate worldwide.",
			"Enter only " + subdomain + " in the name or host field; most providers append " + domain + " automatically.",
			"If your provider proxies traffic (orange cloud on Cloudflare), switch the record to DNS only.",
			"Remove any existing A or CNAME record on " + subdomain + "." + domain + " before adding this one.",
			"Verify the record with: dig CNAME " + subdomain + "." + domain,
		},
	}
}
