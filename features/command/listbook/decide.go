package listbook

import (
	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

// Decide lists the book unless a book with the same id exists already.
//
//	GIVEN: no book with BookID
//	WHEN: ListBook is received
//	THEN: BookListed, the book is available
//	IDEMPOTENCY: a book with BookID was listed before
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	for _, event := range history {
		if e, ok := event.(core.BookListed); ok && e.BookID == command.BookID.String() {
			return core.IdempotentDecision()
		}
	}

	return core.SuccessDecision(
		core.BuildBookListed(
			command.BookID,
			command.OwnerID,
			command.Title,
			command.Author,
			command.Description,
			command.CoverKey,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter selects the listing of the book id.
func BuildEventFilter(command Command) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookListedEventType).
		AndAnyPredicateOf(eventstore.P("BookID", command.BookID.String())).
		Finalize()
}
