// Package ses delivers email through Amazon SES.
package ses

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/accounts/internal/email"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

// API is the part of the SES client the sender uses.
type API interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Sender struct {
	api API
}

// New loads the default AWS credential chain for region.
func New(ctx context.Context, region string) (*Sender, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("ses: load aws config: %w", err)
	}
	return NewWithAPI(ses.NewFromConfig(cfg)), nil
}

func NewWithAPI(api API) *Sender {
	return &Sender{api: api}
}

func (s *Sender) Send(ctx context.Context, msg email.Message) error {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String(charset)},
	}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String(charset)}
	}

	_, err := s.api.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(msg.From.String()),
		Destination: &types.Destination{ToAddresses: []string{msg.To.String()}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
			Body:    body,
		},
	})
	if err != nil {
		return fmt.Errorf("ses: send: %w", err)
	}
	return nil
}
