// internal/common/auth/google.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"outreach-engine/internal/common/errors"
)

// GoogleVerifier checks a sender's OAuth access token against Google's
// tokeninfo endpoint. A token is accepted when it is live, carries the send
// scope and resolves to an email identity.
type GoogleVerifier struct {
	tokenInfoURL  string
	requiredScope string
	httpClient    *http.Client
}

// Identity is the verified sender identity behind an access token.
type Identity struct {
	Email     string
	ExpiresIn int
}

type tokenInfoResponse struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Scope         string `json:"scope"`
	ExpiresIn     string `json:"expires_in"`
	Error         string `json:"error_description"`
}

// NewGoogleVerifier creates a verifier against the given tokeninfo endpoint.
func NewGoogleVerifier(tokenInfoURL, requiredScope string, timeout time.Duration) *GoogleVerifier {
	return &GoogleVerifier{
		tokenInfoURL:  strings.TrimSuffix(tokenInfoURL, "/"),
		requiredScope: requiredScope,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// Verify resolves an access token to a sender identity.
func (g *GoogleVerifier) Verify(ctx context.Context, accessToken string) (*Identity, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.NewCredentialInvalidError("empty access token")
	}

	endpoint := fmt.Sprintf("%s?access_token=%s", g.tokenInfoURL, url.QueryEscape(accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.NewCredentialCheckFailedError(err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewCredentialCheckFailedError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewCredentialCheckFailedError(err)
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, errors.NewCredentialCheckFailedError(fmt.Errorf("decode tokeninfo: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		detail := info.Error
		if detail == "" {
			detail = fmt.Sprintf("tokeninfo status %d", resp.StatusCode)
		}
		return nil, errors.NewCredentialInvalidError(detail)
	}

	if info.Email == "" {
		return nil, errors.NewCredentialInvalidError("token carries no email identity")
	}

	if g.requiredScope != "" && !hasScope(info.Scope, g.requiredScope) {
		return nil, errors.NewCredentialInvalidError(
			fmt.Sprintf("token missing scope %s", g.requiredScope))
	}

	expires := 0
	fmt.Sscanf(info.ExpiresIn, "%d", &expires)

	return &Identity{Email: info.Email, ExpiresIn: expires}, nil
}

func hasScope(scopes, want string) bool {
	for _, s := range strings.Fields(scopes) {
		if s == want {
			return true
		}
	}
	return false
}
