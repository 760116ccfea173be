package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mrz1836/postmark"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Config holds the relay configuration.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN,required"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN,required"`
	SenderEmail          string `env:"CONTACT_SENDER_EMAIL,required"`
	SupportEmail         string `env:"CONTACT_SUPPORT_EMAIL,required"`
}

// Message is one support request from a user.
type Message struct {
	ReplyTo string `json:"reply_to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`

	// Optional triage context appended to the body.
	DeviceID string `json:"device_id,omitempty"`
	Tier     string `json:"tier,omitempty"`
}

// Validate checks the message before sending.
func (m Message) Validate() error {
	if m.ReplyTo == "" || !emailRegex.MatchString(m.ReplyTo) {
		return fmt.Errorf("%w: reply-to must be a valid email address", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}

// Relay sends support messages to the configured inbox.
type Relay struct {
	client *postmark.Client
	config Config
}

// NewRelay creates a Postmark-backed contact relay.
// All tokens and addresses are required for runtime operation - this
// enforces explicit configuration rather than silent failures in
// production.
func NewRelay(cfg Config) (*Relay, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" || !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.SupportEmail == "" || !emailRegex.MatchString(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}

	return &Relay{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewRelay creates a relay that panics on invalid config.
func MustNewRelay(cfg Config) *Relay {
	relay, err := NewRelay(cfg)
	if err != nil {
		panic(err)
	}
	return relay
}

// Send delivers one support message. Reply-To is set to the user's
// address so the support team answers the right person.
func (r *Relay) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := r.client.SendEmail(ctx, postmark.Email{
		From:     r.config.SenderEmail,
		ReplyTo:  msg.ReplyTo,
		To:       r.config.SupportEmail,
		Subject:  msg.Subject,
		Tag:      "contact",
		TextBody: renderBody(msg),
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrSendFailed,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}

// renderBody appends triage context below the user's message.
func renderBody(msg Message) string {
	var b strings.Builder
	b.WriteString(msg.Body)
	if msg.DeviceID != "" || msg.Tier != "" {
		b.WriteString("\n\n--\n")
		if msg.DeviceID != "" {
			fmt.Fprintf(&b, "Device: %s\n", msg.DeviceID)
		}
		if msg.Tier != "" {
			fmt.Fprintf(&b, "Tier: %s\n", msg.Tier)
		}
	}
	return b.String()
}
