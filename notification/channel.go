package notification

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Channel is the outbound delivery transport. Implementations either
// accept the rendered message or return an error; there is no queueing
// or retry at this layer.
type Channel interface {
	Deliver(ctx context.Context, to, subject, body string) error
}

// LogChannel is the development-mode channel: it logs the rendered
// message instead of transmitting and always accepts. Running without a
// configured transport is a degraded mode, not a failure.
type LogChannel struct{}

// NewLogChannel creates a log-only channel.
func NewLogChannel() *LogChannel {
	return &LogChannel{}
}

// Deliver logs the message and reports it accepted.
func (c *LogChannel) Deliver(ctx context.Context, to, subject, body string) error {
	log.WithFields(log.Fields{
		"to":      to,
		"subject": subject,
	}).Infof("email notification (development mode):\n%s", body)
	return nil
}

// SendGridChannel delivers email through SendGrid.
type SendGridChannel struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGridChannel creates a SendGrid-backed channel.
func NewSendGridChannel(apiKey, fromEmail, fromName string) *SendGridChannel {
	return &SendGridChannel{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Deliver sends one email and reports whether SendGrid accepted it.
func (c *SendGridChannel) Deliver(ctx context.Context, to, subject, body string) error {
	from := mail.NewEmail(c.fromName, c.fromEmail)
	recipient := mail.NewEmail(to, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	response, err := c.client.SendWithContext(ctx, message)
	if err != nil {
		return &DeliveryError{Message: "sendgrid send failed", Err: err}
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &DeliveryError{Message: fmt.Sprintf("sendgrid status %d", response.StatusCode)}
	}
	return nil
}

// DeliveryError represents a channel delivery failure
type DeliveryError struct {
	Message string
	Err     error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
