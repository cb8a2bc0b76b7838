// Package notifications sends best-effort account and result emails.
package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"quizku_backend/internals/configs"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer delivers one message.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

/* ===============================
   SMTP (go-mail)
=================================*/

type SMTPMailer struct {
	cfg     configs.SMTPConfig
	timeout time.Duration
}

func NewSMTPMailer(cfg configs.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, timeout: 10 * time.Second}
}

func (s *SMTPMailer) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.timeout),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return mail.NewClient(s.cfg.Host, opts...)
}

func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.HTMLBody)

	c, err := s.client()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return c.DialAndSendWithContext(ctx, msg)
}

/* ===============================
   No-op (local / tests)
=================================*/

// LogMailer only logs what it would have sent.
type LogMailer struct {
	Log *logrus.Entry
}

func (l LogMailer) Send(_ context.Context, m Message) error {
	if l.Log != nil {
		l.Log.WithFields(logrus.Fields{"to": m.To, "subject": m.Subject}).Info("mail not sent, SMTP disabled")
	}
	return nil
}
