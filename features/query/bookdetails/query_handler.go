package bookdetails

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

// Handle reads the history of the book and projects its details.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookDetails, error) {
	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter(query.BookID))
	if err != nil {
		return BookDetails{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return BookDetails{}, err
	}

	return ProjectBookDetails(history, query, maxSequenceNumber)
}
