package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"staycal/internal/app/commands"
	"staycal/internal/app/dto"
	availabilityhandlers "staycal/internal/app/handlers/availability"
)

// RecordsTopic carries availability snapshots published by the booking backend.
const RecordsTopic = "availability.records.v1"

// Inbox drops redelivered events. Forget releases an id whose processing failed.
type Inbox interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Forget(ctx context.Context, eventID string) error
}

// RecordsHandler applies availability snapshots through the command bus.
type RecordsHandler struct {
	Bus    commands.Bus
	Inbox  Inbox
	Logger *slog.Logger
}

var ErrMalformedRecordsEvent = errors.New("kafka: malformed availability records event")

type recordsEvent struct {
	ID      string              `json:"id"`
	Type    string              `json:"type"`
	Subject string              `json:"subject"`
	Data    recordsEventPayload `json:"data"`
}

type recordsEventPayload struct {
	PropertyID string                   `json:"property_id"`
	Replace    bool                     `json:"replace"`
	Records    []dto.AvailabilityRecord `json:"records"`
}

// Handle decodes one message and dispatches a PutRecordsCommand. Malformed messages are
// logged and acknowledged so they do not block the partition.
func (h *RecordsHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt recordsEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		h.warn(ctx, msg, fmt.Errorf("%w: %v", ErrMalformedRecordsEvent, err))
		return nil
	}
	propertyID := evt.Data.PropertyID
	if propertyID == "" {
		propertyID = evt.Subject
	}
	if propertyID == "" {
		h.warn(ctx, msg, fmt.Errorf("%w: missing property id", ErrMalformedRecordsEvent))
		return nil
	}
	eventID := evt.ID
	if eventID == "" {
		eventID = fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset)
	}
	if h.Inbox != nil {
		seen, err := h.Inbox.Seen(ctx, eventID)
		if err != nil {
			return err
		}
		if seen {
			return nil
		}
	}

	cmd := availabilityhandlers.PutRecordsCommand{
		PropertyID: propertyID,
		Records:    evt.Data.Records,
		Replace:    evt.Data.Replace,
		Source:     "sync",
	}
	res, err := commands.Dispatch[availabilityhandlers.PutRecordsCommand, dto.RecordsWritten](ctx, h.Bus, cmd)
	if err != nil {
		if h.Inbox != nil {
			if ferr := h.Inbox.Forget(ctx, eventID); ferr != nil {
				return errors.Join(err, ferr)
			}
		}
		return err
	}
	if h.Logger != nil {
		h.Logger.InfoContext(ctx, "availability synced", "event_id", eventID, "property_id", res.PropertyID, "written", res.Written, "skipped", res.Skipped)
	}
	return nil
}

func (h *RecordsHandler) warn(ctx context.Context, msg *sarama.ConsumerMessage, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.WarnContext(ctx, "dropping kafka message", "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
}

var _ MessageHandler = (*RecordsHandler)(nil)
