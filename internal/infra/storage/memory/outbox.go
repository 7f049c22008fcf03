package memory

import (
	"context"
	"log/slog"
	"sync"

	appoutbox "staycal/internal/app/outbox"
)

// Publisher ships a record to the broker.
type Publisher interface {
	PublishRecord(ctx context.Context, record appoutbox.EventRecord) error
}

// Outbox buffers records until Flush. Flush hands them to Publisher when one is set and
// only logs them otherwise. A record that fails to publish stays buffered, together with
// everything after it, until the next flush.
type Outbox struct {
	mu        sync.Mutex
	records   []appoutbox.EventRecord
	publisher Publisher
	logger    *slog.Logger
}

func NewOutbox(publisher Publisher, logger *slog.Logger) *Outbox {
	return &Outbox{publisher: publisher, logger: logger}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for len(o.records) > 0 {
		rec := o.records[0]
		if o.publisher != nil {
			if err := o.publisher.PublishRecord(ctx, rec); err != nil {
				if o.logger != nil {
					o.logger.WarnContext(ctx, "outbox publish failed", "event", rec.Name, "id", rec.ID, "pending", len(o.records), "error", err)
				}
				return nil
			}
		} else if o.logger != nil {
			o.logger.InfoContext(ctx, "event recorded", "event", rec.Name, "aggregate", rec.Aggregate, "id", rec.ID)
		}
		o.records = o.records[1:]
	}
	return nil
}

// Pending returns a copy of the buffered records.
func (o *Outbox) Pending() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]appoutbox.EventRecord, len(o.records))
	copy(out, o.records)
	return out
}

var _ appoutbox.Outbox = (*Outbox)(nil)
