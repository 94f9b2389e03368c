// Package notify delivers the transient success/error messages raised by
// resource controllers to logs, NATS and connected UI clients.
package notify

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one toast. It should stop being shown at ExpiresAt.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Sink receives every notification. Deliver must not block for long.
type Sink interface {
	Deliver(n Notification)
}

// Notifier stamps messages and fans them out to its sinks
type Notifier struct {
	clock   clockwork.Clock
	timeout time.Duration
	sinks   []Sink
}

func NewNotifier(clock clockwork.Clock, timeout time.Duration, sinks ...Sink) *Notifier {
	return &Notifier{
		clock:   clock,
		timeout: timeout,
		sinks:   sinks,
	}
}

func (n *Notifier) Success(message string) {
	n.publish(LevelSuccess, message)
}

func (n *Notifier) Error(message string) {
	n.publish(LevelError, message)
}

func (n *Notifier) publish(level Level, message string) {
	now := n.clock.Now()
	notification := Notification{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(n.timeout),
	}
	for _, sink := range n.sinks {
		sink.Deliver(notification)
	}
}
