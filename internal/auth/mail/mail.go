// Package mail sends transactional email on behalf of the auth service.
// The only message it knows how to build today is the account activation
// mail, delivered over plain SMTP.
package mail

import (
	"context"
	"fmt"
	"strings"
)

// Mailer delivers a single message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ActivationSender composes and sends account activation mails.
type ActivationSender struct {
	Mailer Mailer

	// APIBaseURL is the externally reachable base URL of this service,
	// e.g. "https://auth.example.com". The activation link is served
	// from it.
	APIBaseURL string
}

// SendActivationMail emails the recipient a one-click activation link
// for their new account.
func (s *ActivationSender) SendActivationMail(ctx context.Context, to, activationLink string) error {
	url := fmt.Sprintf("%s/activate/%s", strings.TrimRight(s.APIBaseURL, "/"), activationLink)

	subject := "Activate your account"
	body := fmt.Sprintf(`<div>
  <h1>Welcome!</h1>
  <p>Click the link below to activate your account:</p>
  <p><a href="%s">%s</a></p>
  <p>If you did not register, you can ignore this email.</p>
</div>`, url, url)

	return s.Mailer.Send(ctx, to, subject, body)
}
