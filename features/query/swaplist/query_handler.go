package swaplist

import (
	"context"

	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
)

// QueryHandler runs Query -> Unmarshal -> Query -> Unmarshal -> Project.
// Observability is added by wrapping it with observable.QueryWrapper.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{eventStore: eventStore}
}

// Handle reads the swaps of the user, then the books and users they reference, and projects the list.
func (h QueryHandler) Handle(ctx context.Context, query Query) (SwapList, error) {
	if err := query.Validate(); err != nil {
		return SwapList{}, err
	}

	swapEvents, swapsMaxSequence, err := h.eventStore.Query(ctx, BuildSwapFilter(query))
	if err != nil {
		return SwapList{}, err
	}

	swapHistory, err := shell.DomainEventsFrom(swapEvents)
	if err != nil {
		return SwapList{}, err
	}

	detailsFilter, hasDetails := BuildDetailsFilter(core.FoldSwaps(swapHistory))
	if !hasDetails {
		return ProjectSwapList(swapHistory, nil, query, swapsMaxSequence), nil
	}

	detailEvents, detailsMaxSequence, err := h.eventStore.Query(ctx, detailsFilter)
	if err != nil {
		return SwapList{}, err
	}

	detailsHistory, err := shell.DomainEventsFrom(detailEvents)
	if err != nil {
		return SwapList{}, err
	}

	return ProjectSwapList(swapHistory, detailsHistory, query, max(swapsMaxSequence, detailsMaxSequence)), nil
}
