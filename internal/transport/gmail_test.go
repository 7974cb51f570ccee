// internal/transport/gmail_test.go
package transport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach-engine/internal/common/logger"
)

func testMessage() Message {
	return Message{
		To:         "lead@example.com",
		Subject:    "Quick question about your site",
		Body:       "Noticed a few SEO issues.",
		Sender:     "me@example.com",
		Credential: "oauth-token",
	}
}

func TestGmailTransport_Send(t *testing.T) {
	var gotPath, gotAuth string
	var gotRaw string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Raw string `json:"raw"`
		}
		require.NoError(t, json.Unmarshal(body, &payload))
		gotRaw = payload.Raw

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "gmail-msg-1"})
	}))
	defer srv.Close()

	tr := NewGmailTransport(srv.URL, 5*time.Second, logger.NewTestLogger(t))
	result, err := tr.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.Equal(t, "gmail-msg-1", result.TransportID)
	assert.Equal(t, "/gmail/v1/users/me/messages/send", gotPath)
	assert.Equal(t, "Bearer oauth-token", gotAuth)

	decoded, err := base64.URLEncoding.DecodeString(gotRaw)
	require.NoError(t, err)
	wire := string(decoded)
	assert.Contains(t, wire, "From: me@example.com\r\n")
	assert.Contains(t, wire, "To: lead@example.com\r\n")
	assert.Contains(t, wire, "Subject: Quick question about your site\r\n")
	assert.True(t, strings.HasSuffix(wire, "Noticed a few SEO issues."))
}

func TestGmailTransport_Send_ProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Invalid Credentials"}}`))
	}))
	defer srv.Close()

	tr := NewGmailTransport(srv.URL, 5*time.Second, logger.NewTestLogger(t))
	_, err := tr.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestGmailTransport_Send_MissingMessageID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr := NewGmailTransport(srv.URL, 5*time.Second, logger.NewTestLogger(t))
	_, err := tr.Send(context.Background(), testMessage())
	require.Error(t, err)
}

func TestGmailTransport_Provider(t *testing.T) {
	tr := NewGmailTransport("https://gmail.googleapis.com", time.Second, logger.NewNoOpLogger())
	assert.Equal(t, "gmail", tr.Provider())
}
