package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous = Anonymous()
	member    = Caller{Authenticated: true}
	admin     = Caller{Authenticated: true, Admin: true}
)

func TestIsSafeMethod(t *testing.T) {
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		assert.True(t, IsSafeMethod(m), m)
	}
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		assert.False(t, IsSafeMethod(m), m)
	}
}

func TestAdminOrReadOnly(t *testing.T) {
	tests := []struct {
		name   string
		method string
		caller Caller
		want   bool
	}{
		{"anonymous read", http.MethodGet, anonymous, true},
		{"member read", http.MethodGet, member, true},
		{"anonymous create", http.MethodPost, anonymous, false},
		{"member create", http.MethodPost, member, false},
		{"admin create", http.MethodPost, admin, true},
		{"member update", http.MethodPatch, member, false},
		{"admin replace", http.MethodPut, admin, true},
		{"anonymous delete", http.MethodDelete, anonymous, false},
		{"admin delete", http.MethodDelete, admin, true},
		// Admin flag without authentication is never trusted.
		{"unauthenticated admin flag", http.MethodPost, Caller{Admin: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdminOrReadOnly(tt.method, tt.caller))
		})
	}
}

func TestAdminOnly(t *testing.T) {
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		assert.False(t, AdminOnly(m, anonymous), m)
		assert.False(t, AdminOnly(m, member), m)
		assert.True(t, AdminOnly(m, admin), m)
	}
}

func TestAuthenticated(t *testing.T) {
	assert.False(t, Authenticated(http.MethodGet, anonymous))
	assert.True(t, Authenticated(http.MethodPatch, member))
}
