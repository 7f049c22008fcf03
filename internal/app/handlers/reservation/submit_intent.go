package reservation

import (
	"context"
	"log/slog"

	"staycal/internal/app/commands"
	"staycal/internal/app/dto"
	availabilityapp "staycal/internal/app/handlers/availability"
	"staycal/internal/app/middleware"
	"staycal/internal/app/outbox"
	"staycal/internal/app/support"
	"staycal/internal/app/uow"
	domainavailability "staycal/internal/domain/availability"
	domainreservation "staycal/internal/domain/reservation"
	domainselection "staycal/internal/domain/selection"
)

const submitIntentKey = "reservation.submit_intent"

// SubmitIntentCommand turns the visitor's complete selection into a reservation request.
type SubmitIntentCommand struct {
	CommandID       string `validate:"required"`
	SessionID       string `validate:"required,max=128"`
	PropertyID      string `validate:"required,max=128"`
	Guests          int    `validate:"min=1,max=50"`
	GuestName       string `validate:"max=120"`
	Note            string `validate:"max=1000"`
	IdempotencyKeyV string `validate:"max=128"`
}

func (c SubmitIntentCommand) Key() string { return submitIntentKey }

func (c SubmitIntentCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c SubmitIntentCommand) ResultPrototype() any { return &dto.ReservationIntent{} }

type SubmitIntentHandler struct {
	UoWFactory uow.UoWFactory
	Clock      support.Clock
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	// ContactPhone is the owner's WhatsApp number; empty disables the deep link.
	ContactPhone string
	Logger       *slog.Logger
}

func (h *SubmitIntentHandler) Handle(ctx context.Context, cmd SubmitIntentCommand) (*dto.ReservationIntent, error) {
	unit, ctx, finish, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer finish.Close()

	propertyID := domainavailability.PropertyID(cmd.PropertyID)
	idx, err := availabilityapp.LoadIndex(ctx, unit.Availability(), propertyID, h.Logger)
	if err != nil {
		return nil, err
	}
	stored, err := support.StoredState(ctx, unit.Selections(), cmd.SessionID, propertyID)
	if err != nil {
		return nil, err
	}
	state := domainselection.Resume(stored, idx, h.Clock.Today()).State()

	intent, err := domainreservation.NewIntent(domainreservation.CreateParams{
		ID:         domainreservation.IntentID(cmd.CommandID),
		PropertyID: propertyID,
		Selection:  state,
		Guests:     cmd.Guests,
		GuestName:  cmd.GuestName,
		Note:       cmd.Note,
		Lookup:     idx,
		Now:        h.Clock.Instant(),
	})
	if err != nil {
		return nil, err
	}

	link := ""
	if h.ContactPhone != "" {
		link, err = intent.WhatsAppLink(h.ContactPhone)
		if err != nil {
			return nil, err
		}
	}

	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, intent.Drain()); err != nil {
		return nil, err
	}
	if err := finish.Commit(); err != nil {
		return nil, err
	}
	if intent.SpanBlocked && h.Logger != nil {
		h.Logger.InfoContext(ctx, "reservation intent spans reserved dates", "property_id", cmd.PropertyID, "intent_id", cmd.CommandID)
	}

	out := dto.MapIntent(intent, link)
	return &out, nil
}

var (
	_ commands.Handler[SubmitIntentCommand, *dto.ReservationIntent] = (*SubmitIntentHandler)(nil)
	_ middleware.IdempotentCommand                                  = SubmitIntentCommand{}
)
