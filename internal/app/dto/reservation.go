package dto

import "staycal/internal/domain/reservation"

type ReservationIntent struct {
	IntentID     string `json:"intent_id"`
	PropertyID   string `json:"property_id"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	Nights       int    `json:"nights"`
	Guests       int    `json:"guests"`
	Message      string `json:"message"`
	WhatsAppURL  string `json:"whatsapp_url,omitempty"`
	SpanReserved bool   `json:"span_reserved"`
}

func MapIntent(i *reservation.Intent, link string) ReservationIntent {
	return ReservationIntent{
		IntentID:     string(i.ID),
		PropertyID:   string(i.PropertyID),
		CheckIn:      i.Range.CheckIn.String(),
		CheckOut:     i.Range.CheckOut.String(),
		Nights:       i.Range.Nights(),
		Guests:       i.Guests,
		Message:      i.Message(),
		WhatsAppURL:  link,
		SpanReserved: i.SpanBlocked,
	}
}
