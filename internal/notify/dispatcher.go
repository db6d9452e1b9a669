// Package notify delivers desktop notifications for project events.
package notify

import (
	"context"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

// EventType represents a notification event type.
type EventType string

const (
	EventProjectCreated  EventType = "project_created"
	EventProjectImported EventType = "project_imported"
	EventTextureAdded    EventType = "texture_added"
	EventTextureRemoved  EventType = "texture_removed"
)

// Event describes a notification event.
type Event struct {
	ProjectID   string
	ProjectName string
	Type        EventType
	Title       string
	Message     string
	Timestamp   time.Time
}

// Config controls which channels receive notifications.
type Config struct {
	// Desktop enables desktop notifications via system APIs.
	Desktop bool
}

// Dispatcher sends notifications to configured channels.
type Dispatcher struct {
	cfg    Config
	logger *zap.Logger
	send   func(title, message string) error
}

// NewDispatcher creates a Dispatcher. A nil logger disables failure logging.
func NewDispatcher(cfg Config, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		cfg:    cfg,
		logger: logger.Named("notify"),
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Dispatch sends a notification event. Delivery failures are logged and
// otherwise ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	if !d.cfg.Desktop || ctx.Err() != nil {
		return
	}

	title := strings.TrimSpace(event.Title)
	if title == "" {
		if event.ProjectName != "" {
			title = event.ProjectName
		} else {
			title = "texrack"
		}
	}
	message := strings.TrimSpace(event.Message)
	if message == "" {
		message = strings.ReplaceAll(string(event.Type), "_", " ")
	}
	if len(message) > 800 {
		message = message[:800] + "..."
	}

	if err := d.send(title, message); err != nil {
		d.logger.Warn("desktop notification failed",
			zap.String("event", string(event.Type)),
			zap.Error(err))
	}
}
