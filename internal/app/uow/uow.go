package uow

import (
	"context"

	domainavailability "staycal/internal/domain/availability"
	domainselection "staycal/internal/domain/selection"
)

// UnitOfWork groups repository access behind one commit/rollback boundary.
type UnitOfWork interface {
	Availability() domainavailability.Repository
	Selections() domainselection.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

type TxOptions struct {
	ReadOnly bool
}
