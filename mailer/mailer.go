// Package mailer sends transactional notifications. Sends are best-effort
// and always dispatched from a goroutine; a failed email never fails the
// request that triggered it.
package mailer

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SESMailer delivers through AWS SES.
type SESMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

func (m *SESMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
	})
	return err
}

// LogMailer is the fallback when SES is not configured (local development).
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("[mailer] (dev) to=%s subject=%q", to, subject)
	return nil
}

// SendAsync fires the send in the background and logs the outcome.
func SendAsync(m Mailer, to, subject, htmlBody string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := m.Send(ctx, to, subject, htmlBody); err != nil {
			log.Printf("[mailer] send to %s failed: %v", to, err)
			return
		}
		log.Printf("[mailer] sent %q to %s", subject, to)
	}()
}
