// internal/transport/gmail.go
package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	commonhttp "outreach-engine/internal/common/http"
	"outreach-engine/internal/common/logger"
)

// GmailTransport dispatches through the Gmail REST send endpoint using the
// operator's OAuth access token as the per-message credential.
type GmailTransport struct {
	baseURL string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewGmailTransport(baseURL string, timeout time.Duration, log logger.Logger) *GmailTransport {
	return &GmailTransport{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  commonhttp.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"transport": "gmail"}),
	}
}

func (t *GmailTransport) Provider() string { return "gmail" }

func (t *GmailTransport) Send(ctx context.Context, msg Message) (*Result, error) {
	raw := base64.URLEncoding.EncodeToString([]byte(buildRFC2822(msg)))

	payload, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return nil, fmt.Errorf("encode send payload: %w", err)
	}

	endpoint := t.baseURL + "/gmail/v1/users/me/messages/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+msg.Credential)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gmail send: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read send response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gmail send: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var sent struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &sent); err != nil {
		return nil, fmt.Errorf("decode send response: %w", err)
	}
	if sent.ID == "" {
		return nil, fmt.Errorf("gmail send: response carries no message id")
	}

	t.logger.Info("message accepted", map[string]interface{}{
		"to":        msg.To,
		"messageId": sent.ID,
	})

	return &Result{TransportID: sent.ID}, nil
}

// buildRFC2822 assembles the wire form of one outreach email.
func buildRFC2822(msg Message) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("From: %s\r\n", msg.Sender))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(msg.Body)

	return builder.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
