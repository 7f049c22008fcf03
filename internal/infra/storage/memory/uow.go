package memory

import (
	"context"
	"errors"
	"sync"

	"staycal/internal/app/uow"
	domainavailability "staycal/internal/domain/availability"
	domainselection "staycal/internal/domain/selection"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	AvailabilityRepo domainavailability.Repository
	SelectionRepo    domainselection.Repository
	// Writes serializes write units from Begin until Commit or Rollback, so a
	// read-modify-write of one session cannot interleave with another. Nil disables it.
	Writes *sync.Mutex
}

func NewFactory(availability domainavailability.Repository, selections domainselection.Repository) Factory {
	return Factory{AvailabilityRepo: availability, SelectionRepo: selections, Writes: &sync.Mutex{}}
}

var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a unit without rollback; writes are visible immediately. Read-only units
// never wait for Writes.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.AvailabilityRepo == nil || f.SelectionRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	unit := &Unit{availability: f.AvailabilityRepo, selections: f.SelectionRepo}
	if f.Writes != nil && !opts.ReadOnly {
		f.Writes.Lock()
		unit.release = f.Writes.Unlock
	}
	return unit, nil
}

type Unit struct {
	availability domainavailability.Repository
	selections   domainselection.Repository

	once    sync.Once
	release func()
}

func (u *Unit) Availability() domainavailability.Repository { return u.availability }
func (u *Unit) Selections() domainselection.Repository      { return u.selections }

func (u *Unit) Commit(ctx context.Context) error {
	u.done()
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	u.done()
	return nil
}

func (u *Unit) done() {
	u.once.Do(func() {
		if u.release != nil {
			u.release()
		}
	})
}
