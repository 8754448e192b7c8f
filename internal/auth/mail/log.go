package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes mail to the log instead of a relay. Used in development
// when no SMTP transport is configured, so activation links stay reachable.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.Logger.Info("mail delivery skipped, no SMTP transport configured",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", htmlBody),
	)
	return nil
}
