package mongo

import (
	"testing"
	"time"

	domainavailability "staycal/internal/domain/availability"
)

func TestNewRecordDocumentUsesGivenInstant(t *testing.T) {
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.FixedZone("WET+1", 3600))
	doc := newRecordDocument("villa", domainavailability.Record{Date: "2024-03-15", Reason: "owner"}, at)

	if doc.ID != "villa|2024-03-15" || doc.PropertyID != "villa" || doc.Date != "2024-03-15" {
		t.Fatalf("unexpected keys %+v", doc)
	}
	if !doc.UpdatedAt.Equal(at) {
		t.Errorf("updated_at %v, want %v", doc.UpdatedAt, at)
	}
	if rec := doc.toRecord(); rec.Date != "2024-03-15" || rec.IsAvailable || rec.Reason != "owner" {
		t.Errorf("round trip %+v", rec)
	}
}
