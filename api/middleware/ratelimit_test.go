package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/orders", "/orders"},
		{"/orders/", "/orders"},
		{"/orders/0c9f8a52-3c11-4f2b-b6f9-2a6f3f2a9d01", "/orders/:id"},
		{"/payment/0c9f8a52-3c11-4f2b-b6f9-2a6f3f2a9d01", "/payment/:id"},
		{"/payment/callback", "/payment/callback"},
		{"/health/server", "/health/server"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeEndpoint(tt.path))
		})
	}
}

func TestGetClientIP(t *testing.T) {
	mw := &Middleware{}

	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.RemoteAddr = "10.0.0.1:51234"
	assert.Equal(t, "10.0.0.1", mw.getClientIP(r))

	r.Header.Set("X-Real-IP", "172.16.0.9")
	assert.Equal(t, "172.16.0.9", mw.getClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.4, 10.0.0.1")
	assert.Equal(t, "203.0.113.4", mw.getClientIP(r))
}
