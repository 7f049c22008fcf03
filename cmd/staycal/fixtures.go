package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"staycal/internal/app/commands"
	"staycal/internal/app/dto"
	availabilityapp "staycal/internal/app/handlers/availability"
)

type recordsFixture struct {
	PropertyID string                   `json:"property_id"`
	Records    []dto.AvailabilityRecord `json:"records"`
}

// loadRecordFixtures seeds availability from a JSON file through the command bus, the same
// path owner updates take. An empty path or a missing file is not an error.
func (a *application) loadRecordFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("availability fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("availability fixtures file empty", "path", path)
		return nil
	}

	var fixtures []recordsFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}
	for _, fx := range fixtures {
		cmd := availabilityapp.PutRecordsCommand{
			PropertyID: fx.PropertyID,
			Records:    fx.Records,
			Replace:    true,
			Source:     "fixtures",
		}
		res, err := commands.Dispatch[availabilityapp.PutRecordsCommand, dto.RecordsWritten](ctx, a.commands, cmd)
		if err != nil {
			logger.Error("fixture rejected", "property_id", fx.PropertyID, "error", err)
			continue
		}
		logger.Info("availability fixture imported", "property_id", res.PropertyID, "written", res.Written, "skipped", res.Skipped)
	}
	return nil
}
