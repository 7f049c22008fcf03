package support

import (
	"context"

	"staycal/internal/app/uow"
)

// BeginUnit reuses the unit of work already bound to ctx (the transaction middleware
// binds one for commands) or starts a new one. The returned Finisher does nothing for
// a reused unit; otherwise it rolls back unless Commit was called.
func BeginUnit(ctx context.Context, factory uow.UoWFactory, opts uow.TxOptions) (uow.UnitOfWork, context.Context, *Finisher, error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, ctx, &Finisher{}, nil
	}
	if factory == nil {
		return nil, ctx, nil, uow.ErrUnitOfWorkMissing
	}
	unit, err := factory.Begin(ctx, opts)
	if err != nil {
		return nil, ctx, nil, err
	}
	execCtx := uow.Bind(ctx, unit)
	return unit, execCtx, &Finisher{unit: unit, ctx: execCtx}, nil
}

// Finisher closes a unit started by BeginUnit. It is a no-op for reused units.
type Finisher struct {
	unit      uow.UnitOfWork
	ctx       context.Context
	committed bool
}

func (f *Finisher) Commit() error {
	if f == nil || f.unit == nil {
		return nil
	}
	if err := f.unit.Commit(f.ctx); err != nil {
		return err
	}
	f.committed = true
	return nil
}

// Close rolls back unless Commit succeeded. Safe to defer.
func (f *Finisher) Close() {
	if f == nil || f.unit == nil || f.committed {
		return
	}
	_ = f.unit.Rollback(f.ctx)
}
