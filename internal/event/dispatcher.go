package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const queueKey = "signalist:queue:events"

// Dispatcher pushes fire-and-forget messages onto a Redis list for
// downstream consumers. Failures are logged, never surfaced.
type Dispatcher struct {
	client *redis.Client
}

func NewDispatcher(client *redis.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

type message struct {
	Type   string         `json:"type"`
	Data   map[string]any `json:"data"`
	SentAt time.Time      `json:"sent_at"`
}

func (d *Dispatcher) Dispatch(ctx context.Context, eventType string, data map[string]any) {
	if d == nil || d.client == nil {
		return
	}

	payload, err := json.Marshal(message{Type: eventType, Data: data, SentAt: time.Now().UTC()})
	if err != nil {
		slog.Error("error encoding event", "type", eventType, "error", err)
		return
	}

	if err := d.client.LPush(ctx, queueKey, payload).Err(); err != nil {
		slog.Error("error dispatching event", "type", eventType, "error", err)
	}
}
