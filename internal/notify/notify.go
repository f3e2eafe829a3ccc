// Package notify delivers snackbar-style notifications to the UI layer.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func New(level Level, title, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

func Success(message string) Notification {
	return New(LevelSuccess, "Success", message)
}

func Error(message string) Notification {
	return New(LevelError, "Error", message)
}

func AccessDenied(message string) Notification {
	return New(LevelWarning, "Access Denied", message)
}

// Notifier is the sink controllers report mutation outcomes to. Delivery is
// best effort; implementations log failures instead of returning them.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the structured log only.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(ctx context.Context, n Notification) {
	level := slog.LevelInfo
	if n.Level == LevelError || n.Level == LevelWarning {
		level = slog.LevelWarn
	}
	l.logger.Log(ctx, level, "notification", "id", n.ID, "level", n.Level, "title", n.Title, "message", n.Message)
}
