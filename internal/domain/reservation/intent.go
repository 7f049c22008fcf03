package reservation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"staycal/internal/domain/availability"
	"staycal/internal/domain/selection"
	"staycal/internal/domain/shared/daterange"
	"staycal/internal/domain/shared/events"
)

var (
	ErrGuestsRequired   = errors.New("reservation: at least one guest is required")
	ErrContactMissing   = errors.New("reservation: contact number is not configured")
	ErrPropertyRequired = errors.New("reservation: property id is required")
)

type IntentID string

// Intent is a visitor's request to book the selected stay, handed off to the owner over chat.
type Intent struct {
	ID          IntentID
	PropertyID  availability.PropertyID
	Range       daterange.DateRange
	Guests      int
	GuestName   string
	Note        string
	SpanBlocked bool
	CreatedAt   time.Time
	events.EventRecorder
}

type CreateParams struct {
	ID         IntentID
	PropertyID availability.PropertyID
	Selection  selection.State
	Guests     int
	GuestName  string
	Note       string
	// Lookup is optional; when present the intent notes reserved days inside the span.
	Lookup *availability.Index
	Now    time.Time
}

func NewIntent(p CreateParams) (*Intent, error) {
	if strings.TrimSpace(string(p.PropertyID)) == "" {
		return nil, ErrPropertyRequired
	}
	dr, err := p.Selection.Range()
	if err != nil {
		return nil, err
	}
	if p.Guests < 1 {
		return nil, ErrGuestsRequired
	}
	intent := &Intent{
		ID:          p.ID,
		PropertyID:  p.PropertyID,
		Range:       dr,
		Guests:      p.Guests,
		GuestName:   strings.TrimSpace(p.GuestName),
		Note:        strings.TrimSpace(p.Note),
		SpanBlocked: p.Lookup.AnyReserved(dr),
		CreatedAt:   p.Now.UTC(),
	}
	intent.Record(IntentSubmittedEvent(intent))
	return intent, nil
}

// Message is the prefilled text sent to the owner.
func (i *Intent) Message() string {
	var b strings.Builder
	b.WriteString("Hello")
	if i.GuestName != "" {
		b.WriteString(", this is ")
		b.WriteString(i.GuestName)
	}
	fmt.Fprintf(&b, ". I'd like to book %s from %s to %s (%s) for %s.",
		i.PropertyID, i.Range.CheckIn, i.Range.CheckOut, NightsLabel(i.Range.Nights()), pluralize(i.Guests, "guest"))
	if i.Note != "" {
		b.WriteString(" ")
		b.WriteString(i.Note)
	}
	return b.String()
}

// WhatsAppLink builds a click-to-chat link for phone; non-digits are stripped.
func (i *Intent) WhatsAppLink(phone string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return "", ErrContactMissing
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(i.Message()), nil
}

// NightsLabel renders "3 nights", "1 night" or "same-day" for a zero-night hold.
func NightsLabel(n int) string {
	if n == 0 {
		return "same-day"
	}
	return pluralize(n, "night")
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
