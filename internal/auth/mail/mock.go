package mail

import (
	"context"
	"sync"
)

// RecordingMailer captures sent messages in memory. Test helper.
type RecordingMailer struct {
	mu   sync.Mutex
	sent []RecordedMessage

	// FailWith, when set, is returned from Send instead of recording.
	FailWith error
}

type RecordedMessage struct {
	To      string
	Subject string
	Body    string
}

func (m *RecordingMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, RecordedMessage{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// Sent returns a copy of all recorded messages.
func (m *RecordingMailer) Sent() []RecordedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedMessage, len(m.sent))
	copy(out, m.sent)
	return out
}
