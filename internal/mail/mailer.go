package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/config"
)

// Mailer sends the verification and reset links over SMTP. Callers treat it
// as fire-and-forget; errors only surface to their logs.
type Mailer struct {
	client          *gomail.Client
	from            string
	frontendBaseURL string
}

func New(cfg config.SMTPConfig, frontendBaseURL string) (*Mailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From, frontendBaseURL: frontendBaseURL}, nil
}

func (m *Mailer) SendVerification(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/verify-email/%s", m.frontendBaseURL, token)
	body := fmt.Sprintf(`
		<h2>Email Verification</h2>
		<p>Please verify your email before logging in.</p>
		<a href="%s">Verify Email</a>
		<p>This link is valid for 24 hours.</p>
	`, link)
	return m.send(ctx, email, "Verify Your Email", body)
}

func (m *Mailer) SendReset(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/reset-password/%s", m.frontendBaseURL, token)
	body := fmt.Sprintf(`
		<h2>Password Reset</h2>
		<p>Click the link below to reset your password:</p>
		<a href="%s">Reset Password</a>
		<p>This link is valid for 15 minutes.</p>
	`, link)
	return m.send(ctx, email, "Reset Your Password", body)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
