package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlabs/billingkit/pkg/contact"
)

func validConfig() contact.Config {
	return contact.Config{
		PostmarkServerToken:  "test-server-token",
		PostmarkAccountToken: "test-account-token",
		SenderEmail:          "noreply@example.com",
		SupportEmail:         "support@example.com",
	}
}

func TestNewRelay_ValidConfig(t *testing.T) {
	t.Parallel()

	relay, err := contact.NewRelay(validConfig())
	require.NoError(t, err)
	assert.NotNil(t, relay)
}

func TestNewRelay_InvalidConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty server token", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.PostmarkServerToken = ""

		relay, err := contact.NewRelay(cfg)
		assert.Nil(t, relay)
		assert.ErrorIs(t, err, contact.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "PostmarkServerToken is required")
	})

	t.Run("empty account token", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.PostmarkAccountToken = ""

		relay, err := contact.NewRelay(cfg)
		assert.Nil(t, relay)
		assert.ErrorIs(t, err, contact.ErrInvalidConfig)
	})

	t.Run("malformed sender email", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.SenderEmail = "not-an-email"

		relay, err := contact.NewRelay(cfg)
		assert.Nil(t, relay)
		assert.ErrorIs(t, err, contact.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "SenderEmail")
	})

	t.Run("missing support email", func(t *testing.T) {
		t.Parallel()

		cfg := validConfig()
		cfg.SupportEmail = ""

		relay, err := contact.NewRelay(cfg)
		assert.Nil(t, relay)
		assert.ErrorIs(t, err, contact.ErrInvalidConfig)
	})
}

func TestMustNewRelay_PanicsOnInvalidConfig(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		contact.MustNewRelay(contact.Config{})
	})
	assert.NotPanics(t, func() {
		contact.MustNewRelay(validConfig())
	})
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	valid := contact.Message{
		ReplyTo: "user@example.com",
		Subject: "Billing question",
		Body:    "I was charged twice.",
	}

	t.Run("valid message", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid.Validate())
	})

	t.Run("malformed reply-to", func(t *testing.T) {
		t.Parallel()
		msg := valid
		msg.ReplyTo = "user@"
		assert.ErrorIs(t, msg.Validate(), contact.ErrInvalidMessage)
	})

	t.Run("blank subject", func(t *testing.T) {
		t.Parallel()
		msg := valid
		msg.Subject = "   "
		assert.ErrorIs(t, msg.Validate(), contact.ErrInvalidMessage)
	})

	t.Run("blank body", func(t *testing.T) {
		t.Parallel()
		msg := valid
		msg.Body = ""
		assert.ErrorIs(t, msg.Validate(), contact.ErrInvalidMessage)
	})
}
