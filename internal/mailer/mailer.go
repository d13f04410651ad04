package mailer

import (
	"context"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/staffdesk/ops_portal_app/internal/middleware"
)

// Sender delivers a rendered email to one or more recipients.
type Sender interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

// SMTPSender sends mail through an SMTP relay using gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates an SMTP backed Sender.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(msg); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to send email via SMTP", slog.String("subject", subject), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NoopSender discards all email. It is used when SMTP is not configured,
// so the rest of the application can dispatch email unconditionally.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	middleware.GetLoggerFromCtx(ctx).Info("Email delivery skipped (SMTP not configured)",
		slog.String("subject", subject),
		slog.Int("recipients", len(to)),
	)
	return nil
}

var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = (*NoopSender)(nil)
)
