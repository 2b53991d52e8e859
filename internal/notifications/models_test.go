package notifications

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailNotificationLifecycle(t *testing.T) {
	n := NewEmailNotification(NotificationTypeEmailConfirmation,
		"alice@example.com", "alice", "Confirm your email address",
		map[string]interface{}{"confirmation_url": "http://localhost:8080/api/v1/auth/confirmed_email/tok"})

	assert.Equal(t, NotificationStatusPending, n.Status)
	assert.Equal(t, "alice@example.com", n.GetPartitionKey())
	assert.False(t, n.IsExpired())
	assert.False(t, n.ShouldRetry())

	n.MarkFailed(errors.New("smtp unreachable"))
	assert.Equal(t, NotificationStatusFailed, n.Status)
	require.NotNil(t, n.LastError)
	assert.Equal(t, "smtp unreachable", *n.LastError)
	assert.True(t, n.ShouldRetry())

	n.RetryCount = n.MaxRetries
	assert.False(t, n.ShouldRetry())

	n.MarkSent()
	assert.Equal(t, NotificationStatusSent, n.Status)
	require.NotNil(t, n.SentAt)
}

func TestEmailNotificationExpiry(t *testing.T) {
	n := NewEmailNotification(NotificationTypeEmailConfirmation,
		"alice@example.com", "alice", "Confirm your email address", nil)

	past := time.Now().Add(-time.Minute)
	n.ExpiresAt = &past
	assert.True(t, n.IsExpired())

	n.MarkFailed(errors.New("boom"))
	assert.False(t, n.ShouldRetry(), "expired notifications must not be retried")
}

func TestEmailNotificationJSONRoundTrip(t *testing.T) {
	n := NewEmailNotification(NotificationTypeEmailConfirmation,
		"alice@example.com", "alice", "Confirm your email address",
		map[string]interface{}{"confirmation_url": "http://example.com/confirm"})

	data, err := n.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "alice@example.com")
	assert.Contains(t, string(data), "EMAIL_CONFIRMATION")
}

func TestConfirmationEmailContent(t *testing.T) {
	svc := &SMTPEmailService{
		config: &SMTPConfig{
			Host:      "smtp.example.com",
			Port:      587,
			FromEmail: "noreply@example.com",
			FromName:  "Notes API",
		},
		confirmationTmpl: confirmationTemplate,
	}

	n := NewEmailNotification(NotificationTypeEmailConfirmation,
		"alice@example.com", "alice", "Confirm your email address",
		map[string]interface{}{"confirmation_url": "http://localhost:8080/api/v1/auth/confirmed_email/tok123"})

	html, text, err := svc.generateContent(n)
	require.NoError(t, err)
	assert.Contains(t, html, "alice")
	assert.Contains(t, html, "http://localhost:8080/api/v1/auth/confirmed_email/tok123")
	assert.Contains(t, text, "http://localhost:8080/api/v1/auth/confirmed_email/tok123")
}
