package selection

import (
	"context"

	"staycal/internal/app/dto"
	"staycal/internal/app/queries"
	"staycal/internal/app/support"
	"staycal/internal/app/uow"
	domainavailability "staycal/internal/domain/availability"
	domainselection "staycal/internal/domain/selection"
)

const getSelectionKey = "selection.get"

type GetSelectionQuery struct {
	SessionID  string `validate:"max=128"`
	PropertyID string `validate:"required,max=128"`
}

func (q GetSelectionQuery) Key() string { return getSelectionKey }

type GetSelectionHandler struct {
	UoWFactory uow.UoWFactory
	Clock      support.Clock
}

func (h *GetSelectionHandler) Handle(ctx context.Context, q GetSelectionQuery) (dto.Selection, error) {
	unit, ctx, finish, err := support.BeginUnit(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.Selection{}, err
	}
	defer finish.Close()

	stored, err := support.StoredState(ctx, unit.Selections(), q.SessionID, domainavailability.PropertyID(q.PropertyID))
	if err != nil {
		return dto.Selection{}, err
	}
	// availability is not needed to resume; only the date invariants are re-checked
	state := domainselection.Resume(stored, nil, h.Clock.Today()).State()
	return dto.MapSelection(q.SessionID, q.PropertyID, state), nil
}

var _ queries.Handler[GetSelectionQuery, dto.Selection] = (*GetSelectionHandler)(nil)
