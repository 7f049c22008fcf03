package selection

import (
	"context"
	"errors"
	"time"

	"staycal/internal/domain/availability"
)

var ErrSessionNotFound = errors.New("selection: session not found")

// Session binds one visitor's selection to the property being viewed.
type Session struct {
	ID         string                  `json:"id"`
	PropertyID availability.PropertyID `json:"property_id"`
	State      State                   `json:"state"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// ForProperty returns the state to resume for id. Viewing another property discards the selection.
func (s *Session) ForProperty(id availability.PropertyID) State {
	if s == nil || s.PropertyID != id {
		return State{}
	}
	return s.State
}

type Repository interface {
	ByID(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
}
