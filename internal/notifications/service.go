// Package notifications carries user-facing messages from the editor to
// whatever displays or forwards them.
package notifications

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
	// WorkspaceId scopes a forwarded notification to one workspace's
	// subscribers. Editor notifications leave it empty.
	WorkspaceId string `json:"workspaceId,omitempty"`
}

// For returns the notification scoped to a workspace.
func (n Notification) For(workspaceId string) Notification {
	n.WorkspaceId = workspaceId
	return n
}

func Info(message string) Notification {
	return Notification{Level: LevelInfo, Message: message}
}

func Success(message string) Notification {
	return Notification{Level: LevelSuccess, Message: message}
}

func Error(message string) Notification {
	return Notification{Level: LevelError, Message: message}
}

// Notifier is the injected sink. Delivery is best effort: a sink that
// fails to forward a message reports it through its own logging.
type Notifier interface {
	Notify(ctx context.Context, notification Notification)
}

type SubscribeInput struct {
	Endpoint    *string
	Protocol    *string
	WorkspaceId string
}

type SubscribeOutput struct {
	SubscriberId string
}

// NotificationService manages who receives forwarded notifications.
type NotificationService interface {
	Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error)
	Unsubscribe(ctx context.Context, subscriberId string) error
}

// Memory keeps every notification; used by tests and the CLI.
type Memory struct {
	mutex sync.Mutex
	items []Notification
}

func (m *Memory) Notify(_ context.Context, notification Notification) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.items = append(m.items, notification)
}

func (m *Memory) All() []Notification {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]Notification{}, m.items...)
}

type Log struct {
	Logger *zap.Logger
}

func (l Log) Notify(_ context.Context, notification Notification) {
	fields := []zap.Field{zap.String("level", string(notification.Level))}
	if notification.Level == LevelError {
		l.Logger.Error(notification.Message, fields...)
		return
	}
	l.Logger.Info(notification.Message, fields...)
}

// Fanout delivers to every sink in order.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, notification Notification) {
	for _, sink := range f {
		sink.Notify(ctx, notification)
	}
}
