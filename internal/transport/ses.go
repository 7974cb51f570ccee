// internal/transport/ses.go
package transport

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	commonaws "outreach-engine/internal/common/aws"
	"outreach-engine/internal/common/logger"
)

// SESTransport dispatches through AWS SES with a fixed verified sender. The
// per-message credential is unused; SES authenticates via the ambient AWS
// credential chain.
type SESTransport struct {
	client *commonaws.SESClient
	sender string
	logger logger.Logger
}

func NewSESTransport(client *commonaws.SESClient, sender string, log logger.Logger) *SESTransport {
	return &SESTransport{
		client: client,
		sender: sender,
		logger: log.WithFields(map[string]interface{}{"transport": "ses"}),
	}
}

func (t *SESTransport) Provider() string { return "ses" }

func (t *SESTransport) Send(ctx context.Context, msg Message) (*Result, error) {
	sender := msg.Sender
	if t.sender != "" {
		sender = t.sender
	}

	out, err := t.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(sender),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body)},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ses send: %w", err)
	}

	messageID := aws.ToString(out.MessageId)
	t.logger.Info("message accepted", map[string]interface{}{
		"to":        msg.To,
		"messageId": messageID,
	})

	return &Result{TransportID: messageID}, nil
}
