package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	appoutbox "staycal/internal/app/outbox"
)

const defaultSource = "app://staycal"

// Producer sends one message to a broker topic.
type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// TopicFor maps an event name to its topic: "reservation.intent_submitted" goes to
// "<prefix>reservation.events.v1".
func TopicFor(prefix, name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	return prefix + base + ".events.v1"
}

// Envelope wraps a record payload into a structured CloudEvents message.
func Envelope(rec appoutbox.EventRecord, source string) ([]byte, map[string]string, error) {
	if source == "" {
		source = defaultSource
	}
	var data map[string]any
	if err := json.Unmarshal(rec.Payload, &data); err != nil {
		return nil, nil, err
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	evt := map[string]any{
		"specversion":     "1.0",
		"id":              id,
		"type":            rec.Name + ".v1",
		"source":          source,
		"subject":         rec.Aggregate,
		"time":            rec.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	}
	if trace, ok := rec.Headers["traceparent"]; ok {
		evt["traceparent"] = trace
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, nil, err
	}
	headers := map[string]string{"content-type": "application/cloudevents+json"}
	for k, v := range rec.Headers {
		headers[k] = v
	}
	return payload, headers, nil
}

// DirectPublisher publishes records synchronously. The in-memory outbox uses it when
// a broker is configured without a Mongo store to queue into.
type DirectPublisher struct {
	Producer    Producer
	TopicPrefix string
	Source      string
}

var ErrPublisherNotConfigured = errors.New("outbox: publisher missing producer")

func (p DirectPublisher) PublishRecord(ctx context.Context, rec appoutbox.EventRecord) error {
	if p.Producer == nil {
		return ErrPublisherNotConfigured
	}
	payload, headers, err := Envelope(rec, p.Source)
	if err != nil {
		return err
	}
	return p.Producer.Publish(ctx, TopicFor(p.TopicPrefix, rec.Name), rec.Aggregate, payload, headers)
}
