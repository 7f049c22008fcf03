package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainavailability "staycal/internal/domain/availability"
	domainselection "staycal/internal/domain/selection"
)

// AvailabilityRepository keeps availability records in memory, one row per property and date.
type AvailabilityRepository struct {
	mu      sync.RWMutex
	records map[domainavailability.PropertyID]map[string]domainavailability.Record
	updated map[domainavailability.PropertyID]time.Time
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{
		records: make(map[domainavailability.PropertyID]map[string]domainavailability.Record),
		updated: make(map[domainavailability.PropertyID]time.Time),
	}
}

// Records returns the property's rows sorted by date. Unknown properties have no rows.
func (r *AvailabilityRepository) Records(ctx context.Context, id domainavailability.PropertyID) ([]domainavailability.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.records[id]
	out := make([]domainavailability.Record, 0, len(rows))
	for _, rec := range rows {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *AvailabilityRepository) Put(ctx context.Context, id domainavailability.PropertyID, records []domainavailability.Record, replace bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows, ok := r.records[id]
	if !ok || replace {
		rows = make(map[string]domainavailability.Record, len(records))
		r.records[id] = rows
	}
	for _, rec := range records {
		rows[rec.Date] = rec
	}
	r.updated[id] = at
	return nil
}

// UpdatedAt is the instant of the last Put for the property.
func (r *AvailabilityRepository) UpdatedAt(id domainavailability.PropertyID) time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updated[id]
}

// SelectionRepository stores visitor selection sessions.
type SelectionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domainselection.Session
}

func NewSelectionRepository() *SelectionRepository {
	return &SelectionRepository{sessions: make(map[string]domainselection.Session)}
}

func (r *SelectionRepository) ByID(ctx context.Context, id string) (*domainselection.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, domainselection.ErrSessionNotFound
	}
	return &sess, nil
}

func (r *SelectionRepository) Save(ctx context.Context, session *domainselection.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

var (
	_ domainavailability.Repository = (*AvailabilityRepository)(nil)
	_ domainselection.Repository    = (*SelectionRepository)(nil)
)
