package delistbook

import (
	"fmt"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	failureReasonBookNotFound = "book does not exist"
	failureReasonNotTheOwner  = "only the owner may delete the book"
)

// Decide delists the book.
//
//	GIVEN: a listed book owned by RequesterID
//	WHEN: DelistBook is received
//	THEN: BookDelisted with the current cover key
//	ERROR: ErrNotFound if the book was never listed or is delisted already
//	ERROR: ErrForbidden if RequesterID is not the owner
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()
	requesterID := command.RequesterID.String()
	book := core.FoldBook(bookID, history)

	if !book.Exists() {
		failure := core.BuildDelistingBookFailed(bookID, requesterID, failureReasonBookNotFound, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrNotFound))
	}

	if !core.IsOwner(book, requesterID) {
		failure := core.BuildDelistingBookFailed(bookID, requesterID, failureReasonNotTheOwner, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrForbidden))
	}

	return core.SuccessDecision(
		core.BuildBookDelisted(command.BookID, book.OwnerID, book.CoverKey, command.OccurredAt),
	)
}

// BuildEventFilter selects the history of the book.
func BuildEventFilter(bookID string) eventstore.Filter {
	bookTypes := core.BookEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(bookTypes[0], bookTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}
