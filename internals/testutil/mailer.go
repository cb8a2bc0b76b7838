package testutil

import (
	"context"
	"sync"

	"quizku_backend/internals/features/notifications"
)

// Mailer records every message. Err, when set, is returned from Send.
type Mailer struct {
	mu   sync.Mutex
	sent []notifications.Message
	Err  error
}

func (m *Mailer) Send(_ context.Context, msg notifications.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.Err
}

func (m *Mailer) Sent() []notifications.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notifications.Message(nil), m.sent...)
}

func (m *Mailer) Subjects() []string {
	out := []string{}
	for _, msg := range m.Sent() {
		out = append(out, msg.Subject)
	}
	return out
}
