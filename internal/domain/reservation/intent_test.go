package reservation

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"staycal/internal/domain/availability"
	"staycal/internal/domain/selection"
	"staycal/internal/domain/shared/daterange"
)

var now = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

func complete(in, out string) selection.State {
	return selection.State{CheckIn: daterange.MustParseDate(in), CheckOut: daterange.MustParseDate(out)}
}

func TestNewIntentValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateParams
		wantErr error
	}{
		{
			name:    "missing property",
			params:  CreateParams{Selection: complete("2024-03-15", "2024-03-18"), Guests: 2},
			wantErr: ErrPropertyRequired,
		},
		{
			name:    "incomplete selection",
			params:  CreateParams{PropertyID: "villa-1", Selection: selection.State{CheckIn: daterange.MustParseDate("2024-03-15")}, Guests: 2},
			wantErr: selection.ErrIncomplete,
		},
		{
			name:    "no guests",
			params:  CreateParams{PropertyID: "villa-1", Selection: complete("2024-03-15", "2024-03-18")},
			wantErr: ErrGuestsRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Now = now
			if _, err := NewIntent(tt.params); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestIntentMessageAndLink(t *testing.T) {
	intent, err := NewIntent(CreateParams{
		ID:         "intent-1",
		PropertyID: "villa-1",
		Selection:  complete("2024-03-15", "2024-03-18"),
		Guests:     2,
		GuestName:  " Sam ",
		Note:       "Arriving late.",
		Now:        now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Hello, this is Sam. I'd like to book villa-1 from 2024-03-15 to 2024-03-18 (3 nights) for 2 guests. Arriving late."
	if got := intent.Message(); got != want {
		t.Errorf("message mismatch:\n got: %s\nwant: %s", got, want)
	}

	link, err := intent.WhatsAppLink("+1 (555) 010-2030")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(link, "https://wa.me/15550102030?text=") {
		t.Fatalf("unexpected link %s", link)
	}
	text, err := url.QueryUnescape(strings.TrimPrefix(link, "https://wa.me/15550102030?text="))
	if err != nil || text != want {
		t.Errorf("link text did not round-trip: %q (%v)", text, err)
	}
	if _, err := intent.WhatsAppLink("n/a"); !errors.Is(err, ErrContactMissing) {
		t.Errorf("expected ErrContactMissing, got %v", err)
	}
}

func TestIntentRecordsEvent(t *testing.T) {
	idx := availability.Build([]availability.Record{{Date: "2024-03-16", IsAvailable: false}}, nil)
	intent, err := NewIntent(CreateParams{
		ID:         "intent-2",
		PropertyID: "villa-1",
		Selection:  complete("2024-03-15", "2024-03-15"),
		Guests:     1,
		Lookup:     idx,
		Now:        now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.SpanBlocked {
		t.Error("same-day hold on 03-15 does not touch 03-16")
	}
	if !strings.Contains(intent.Message(), "(same-day) for 1 guest.") {
		t.Errorf("unexpected message %q", intent.Message())
	}
	evs := intent.Drain()
	if len(evs) != 1 {
		t.Fatalf("expected one event, got %d", len(evs))
	}
	ev, ok := evs[0].(IntentSubmitted)
	if !ok || ev.Nights != 0 || ev.CheckIn != "2024-03-15" || ev.AggregateID() != "villa-1" {
		t.Errorf("unexpected event %+v", evs[0])
	}
	if len(intent.PendingEvents()) != 0 {
		t.Error("drain must clear pending events")
	}
}

func TestIntentFlagsReservedSpan(t *testing.T) {
	idx := availability.Build([]availability.Record{{Date: "2024-03-16", IsAvailable: false}}, nil)
	intent, err := NewIntent(CreateParams{
		PropertyID: "villa-1",
		Selection:  complete("2024-03-15", "2024-03-18"),
		Guests:     3,
		Lookup:     idx,
		Now:        now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !intent.SpanBlocked {
		t.Error("expected reserved 03-16 inside the span to be flagged")
	}
}
