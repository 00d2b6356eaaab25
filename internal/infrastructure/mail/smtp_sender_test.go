package mail

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"

	"blog/config"
	"blog/internal/domain"
)

func TestBuildMessage(t *testing.T) {
	m, err := buildMessage("noreply@blog.example.com", domain.MailMessage{
		To:      "b@example.com",
		Subject: `"Hello World" - new post in A A's Tech Blog.`,
		Body:    "Link to new post: https://blog.example.com/post/1/",
	})
	require.NoError(t, err)

	rcpts, err := m.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"b@example.com"}, rcpts)
	assert.Equal(t, []string{`"Hello World" - new post in A A's Tech Blog.`}, m.GetGenHeader(gomail.HeaderSubject))
}

func TestBuildMessage_InvalidRecipient(t *testing.T) {
	_, err := buildMessage("noreply@blog.example.com", domain.MailMessage{To: "not an address"})
	assert.ErrorIs(t, err, domain.ErrMailDelivery)
}

func TestNewSMTPSender(t *testing.T) {
	s, err := NewSMTPSender(config.MailConfig{
		Host:      "smtp.example.com",
		Port:      2525,
		Username:  "user",
		Password:  "pass",
		From:      "noreply@example.com",
		TLSPolicy: "mandatory",
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "noreply@example.com", s.from)

	_, err = NewSMTPSender(config.MailConfig{Port: 25, TLSPolicy: "none", Timeout: time.Second})
	assert.Error(t, err)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := s.Send(context.Background(), domain.MailMessage{To: "b@example.com", Subject: "hi", Body: "body"})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"to":"b@example.com"`)
	assert.Contains(t, buf.String(), `"subject":"hi"`)
}
