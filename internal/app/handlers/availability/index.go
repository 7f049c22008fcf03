package availability

import (
	"context"
	"log/slog"

	domainavailability "staycal/internal/domain/availability"
)

// LoadIndex fetches the records of a property and indexes them. Malformed rows are
// skipped by the index, never surfaced as errors.
func LoadIndex(ctx context.Context, repo domainavailability.Repository, id domainavailability.PropertyID, logger *slog.Logger) (*domainavailability.Index, error) {
	records, err := repo.Records(ctx, id)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger = logger.With("property_id", string(id))
	}
	return domainavailability.Build(records, logger), nil
}
