package bookshelf

import (
	"context"

	"github.com/bookswap-hub/bookswap/shared/shell"
)

// QueryHandler runs Query -> Unmarshal -> Project.
// Observability is added by wrapping it with observable.QueryWrapper.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{eventStore: eventStore}
}

// Handle validates the query, reads the books and owners and projects the shelf.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Bookshelf, error) {
	if err := query.Validate(); err != nil {
		return Bookshelf{}, err
	}

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter(query))
	if err != nil {
		return Bookshelf{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Bookshelf{}, err
	}

	return ProjectBookshelf(history, query, maxSequenceNumber), nil
}
