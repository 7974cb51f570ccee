// internal/common/auth/google_test.go
package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sendScope = "https://www.googleapis.com/auth/gmail.send"

func newTokenInfoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("access_token"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleVerifier_Verify(t *testing.T) {
	srv := newTokenInfoServer(t, http.StatusOK,
		`{"email": "sender@example.com", "email_verified": "true",
		  "scope": "openid `+sendScope+`", "expires_in": "3521"}`)

	v := NewGoogleVerifier(srv.URL, sendScope, 5*time.Second)
	identity, err := v.Verify(context.Background(), "live-token")
	require.NoError(t, err)

	assert.Equal(t, "sender@example.com", identity.Email)
	assert.Equal(t, 3521, identity.ExpiresIn)
}

func TestGoogleVerifier_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{
			name:     "expired token",
			status:   http.StatusBadRequest,
			body:     `{"error_description": "Invalid Value"}`,
			wantCode: "CREDENTIAL_INVALID",
		},
		{
			name:     "no email identity",
			status:   http.StatusOK,
			body:     `{"scope": "` + sendScope + `", "expires_in": "100"}`,
			wantCode: "CREDENTIAL_INVALID",
		},
		{
			name:     "missing send scope",
			status:   http.StatusOK,
			body:     `{"email": "sender@example.com", "scope": "openid email", "expires_in": "100"}`,
			wantCode: "CREDENTIAL_INVALID",
		},
		{
			name:     "garbage response",
			status:   http.StatusOK,
			body:     `not json at all`,
			wantCode: "CREDENTIAL_CHECK_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTokenInfoServer(t, tt.status, tt.body)
			v := NewGoogleVerifier(srv.URL, sendScope, 5*time.Second)

			_, err := v.Verify(context.Background(), "some-token")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantCode)
		})
	}
}

func TestGoogleVerifier_EmptyToken(t *testing.T) {
	v := NewGoogleVerifier("https://www.googleapis.com/oauth2/v3/tokeninfo", sendScope, time.Second)
	_, err := v.Verify(context.Background(), "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CREDENTIAL_INVALID")
}

func TestGoogleVerifier_EndpointUnreachable(t *testing.T) {
	srv := newTokenInfoServer(t, http.StatusOK, `{}`)
	srv.Close()

	v := NewGoogleVerifier(srv.URL, sendScope, time.Second)
	_, err := v.Verify(context.Background(), "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CREDENTIAL_CHECK_FAILED")
}
