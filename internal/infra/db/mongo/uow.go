package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staycal/internal/app/uow"
	domainavailability "staycal/internal/domain/availability"
	domainselection "staycal/internal/domain/selection"
)

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	AvailabilityRepo domainavailability.Repository
	SelectionRepo    domainselection.Repository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Begin starts a MongoDB session and transaction. Read-only units skip the transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil || f.AvailabilityRepo == nil || f.SelectionRepo == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	unit := &Unit{
		session:      session,
		availability: f.AvailabilityRepo,
		selections:   f.SelectionRepo,
	}
	if opts.ReadOnly {
		return unit, nil
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	unit.inTxn = true
	return unit, nil
}

type Unit struct {
	session mongo.Session
	inTxn   bool

	availability domainavailability.Repository
	selections   domainselection.Repository
}

func (u *Unit) Availability() domainavailability.Repository {
	return u.availability
}

func (u *Unit) Selections() domainselection.Repository {
	return u.selections
}

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	if !u.inTxn {
		return nil
	}
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	if !u.inTxn {
		return nil
	}
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures Mongo session is available in context for downstream repos.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}

var _ uow.ContextInjector = (*Unit)(nil)
