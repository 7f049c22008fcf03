package availability

import (
	"context"
	"log/slog"

	"staycal/internal/app/commands"
	"staycal/internal/app/dto"
	"staycal/internal/app/outbox"
	"staycal/internal/app/support"
	"staycal/internal/app/uow"
	domainavailability "staycal/internal/domain/availability"
)

const putRecordsKey = "availability.put_records"

// PutRecordsCommand upserts a property's availability records. With Replace set the
// submitted batch becomes the complete record set.
type PutRecordsCommand struct {
	PropertyID string                   `validate:"required,max=128"`
	Records    []dto.AvailabilityRecord `validate:"max=3660"`
	Replace    bool
	// Source names the writer ("owner", "sync") for logs.
	Source string
}

func (c PutRecordsCommand) Key() string { return putRecordsKey }

type PutRecordsHandler struct {
	UoWFactory uow.UoWFactory
	Clock      support.Clock
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Logger     *slog.Logger
}

func (h *PutRecordsHandler) Handle(ctx context.Context, cmd PutRecordsCommand) (dto.RecordsWritten, error) {
	id := domainavailability.PropertyID(cmd.PropertyID)
	now := h.Clock.Instant()
	sheet, err := domainavailability.NewSheet(id, dto.ToDomainRecords(cmd.Records), now)
	if err != nil {
		return dto.RecordsWritten{}, err
	}

	unit, ctx, finish, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return dto.RecordsWritten{}, err
	}
	defer finish.Close()

	if err := unit.Availability().Put(ctx, id, sheet.Records, cmd.Replace, now); err != nil {
		return dto.RecordsWritten{}, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, sheet.Drain()); err != nil {
		return dto.RecordsWritten{}, err
	}
	if err := finish.Commit(); err != nil {
		return dto.RecordsWritten{}, err
	}
	if sheet.Skipped > 0 && h.Logger != nil {
		h.Logger.WarnContext(ctx, "availability records skipped", "property_id", cmd.PropertyID, "skipped", sheet.Skipped, "source", cmd.Source)
	}
	return dto.RecordsWritten{PropertyID: cmd.PropertyID, Written: len(sheet.Records), Skipped: sheet.Skipped}, nil
}

var _ commands.Handler[PutRecordsCommand, dto.RecordsWritten] = (*PutRecordsHandler)(nil)
