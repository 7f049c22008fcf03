package support

import (
	"context"
	"errors"

	domainavailability "staycal/internal/domain/availability"
	"staycal/internal/domain/selection"
)

// StoredState returns the visitor's saved selection for propertyID, or an empty state
// when the session is unknown or was last used on another property.
func StoredState(ctx context.Context, repo selection.Repository, sessionID string, propertyID domainavailability.PropertyID) (selection.State, error) {
	if sessionID == "" {
		return selection.State{}, nil
	}
	sess, err := repo.ByID(ctx, sessionID)
	if errors.Is(err, selection.ErrSessionNotFound) {
		return selection.State{}, nil
	}
	if err != nil {
		return selection.State{}, err
	}
	return sess.ForProperty(propertyID), nil
}
