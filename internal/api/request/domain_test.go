package request

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, body string, v any) error {
	t.Helper()
	r := httptest.NewRequest("POST", "/api/domains/verify", bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return Decode(r, v)
}

func TestDecodeInitiateDomainVerification(t *testing.T) {
	var req InitiateDomainVerification
	err := decodeBody(t, `{"domain": "parkbus.ca", "subdomain": "booking"}`, &req)
	require.NoError(t, err)
	assert.Equal(t, "parkbus.ca", req.Domain)
	assert.Equal(t, "booking", req.Subdomain)
}

func TestDecodeInitiateDomainVerification_SubdomainOptional(t *testing.T) {
	var req InitiateDomainVerification
	err := decodeBody(t, `{"domain": "parkbus.ca"}`, &req)
	require.NoError(t, err)
	assert.Empty(t, req.Subdomain)
}

func TestDecodeInitiateDomainVerification_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing domain", `{"subdomain": "booking"}`},
		{"bad json", `{domain`},
		{"bad subdomain label", `{"domain": "parkbus.ca", "subdomain": "Booking!"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req InitiateDomainVerification
			assert.Error(t, decodeBody(t, tt.body, &req))
		})
	}
}
