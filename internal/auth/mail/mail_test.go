package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendActivationMail(t *testing.T) {
	rec := &RecordingMailer{}
	s := &ActivationSender{Mailer: rec, APIBaseURL: "https://auth.example.com/"}

	err := s.SendActivationMail(context.Background(), "u@example.com", "link-123")
	require.NoError(t, err)

	sent := rec.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "u@example.com", sent[0].To)
	// Trailing slash on the base URL must not produce a double slash.
	require.Contains(t, sent[0].Body, `href="https://auth.example.com/activate/link-123"`)
}

func TestSendActivationMailPropagatesFailure(t *testing.T) {
	boom := errors.New("relay unreachable")
	rec := &RecordingMailer{FailWith: boom}
	s := &ActivationSender{Mailer: rec, APIBaseURL: "https://auth.example.com"}

	err := s.SendActivationMail(context.Background(), "u@example.com", "link-123")
	require.ErrorIs(t, err, boom)
	require.Empty(t, rec.Sent())
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := string(buildMessage("no-reply@example.com", "u@example.com", "Hello", "<p>hi</p>"))

	require.Contains(t, msg, "From: no-reply@example.com\r\n")
	require.Contains(t, msg, "To: u@example.com\r\n")
	require.Contains(t, msg, "Subject: Hello\r\n")
	require.Contains(t, msg, "Content-Type: text/html")
	require.Contains(t, msg, "\r\n\r\n<p>hi</p>")
}
