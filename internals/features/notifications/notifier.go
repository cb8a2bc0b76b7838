package notifications

import (
	"context"
	"html/template"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"quizku_backend/internals/configs"
	"quizku_backend/internals/logger"
)

const defaultSendTimeout = 10 * time.Second

// Recipient is the account an email goes to.
type Recipient struct {
	Username string
	Email    string
}

func (r Recipient) address() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

type ResultNotice struct {
	Recipient Recipient
	Score     int
	Total     int
	Language  string
	Forced    bool
}

func (n ResultNotice) Percentage() float64 {
	if n.Total <= 0 {
		return 0
	}
	return float64(n.Score) / float64(n.Total) * 100
}

// Notifier never fails or delays its caller: messages are rendered inline
// and delivered in the background. Delivery errors are logged.
type Notifier struct {
	Mailer  Mailer
	Timeout time.Duration
	log     *logrus.Entry
	inbox   sync.WaitGroup
}

func New(m Mailer) *Notifier {
	return &Notifier{
		Mailer:  m,
		Timeout: defaultSendTimeout,
		log:     logger.L().WithField("component", "notifier"),
	}
}

// FromConfig picks SMTP when configured, else the logging mailer.
func FromConfig(cfg configs.SMTPConfig) *Notifier {
	if cfg.Enabled() {
		return New(NewSMTPMailer(cfg))
	}
	return New(LogMailer{Log: logger.L().WithField("component", "mailer")})
}

func (n *Notifier) send(ctx context.Context, kind string, to string, subject string, tpl *template.Template, data any) {
	if n == nil || n.Mailer == nil || to == "" {
		return
	}
	entry := n.log.WithFields(logrus.Fields{"kind": kind, "to": to})

	body, err := render(tpl, data)
	if err != nil {
		entry.WithError(err).Error("render email failed")
		return
	}

	msg := Message{To: to, Subject: subject, HTMLBody: body}
	// detached from the request so a finished response does not cancel delivery
	ctx = context.WithoutCancel(ctx)

	n.inbox.Add(1)
	go func() {
		defer n.inbox.Done()
		ctx, cancel := context.WithTimeout(ctx, n.Timeout)
		defer cancel()

		if err := n.Mailer.Send(ctx, msg); err != nil {
			entry.WithError(err).Warn("send email failed")
			return
		}
		entry.Debug("email sent")
	}()
}

// Flush waits for in-flight deliveries or until ctx is done.
func (n *Notifier) Flush(ctx context.Context) error {
	if n == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		n.inbox.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) NotifyRegistration(ctx context.Context, email string) {
	n.send(ctx, "registration", email, "Welcome to Quiz App", registrationTpl, nil)
}

func (n *Notifier) NotifyResult(ctx context.Context, r ResultNotice) {
	data := struct {
		Language   string
		Score      int
		Total      int
		Percentage float64
		Forced     bool
	}{r.Language, r.Score, r.Total, r.Percentage(), r.Forced}
	n.send(ctx, "result", r.Recipient.address(), "Quiz Results", resultTpl, data)
}

func (n *Notifier) NotifyBlockedAttempt(ctx context.Context, r Recipient) {
	n.send(ctx, "blocked", r.address(), "Quiz attempt blocked", blockedTpl, r)
}

func (n *Notifier) NotifyPasswordChanged(ctx context.Context, r Recipient) {
	n.send(ctx, "password_changed", r.address(), "Your Quiz App password was changed", passwordChangedTpl, r)
}
