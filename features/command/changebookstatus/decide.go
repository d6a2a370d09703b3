package changebookstatus

import (
	"fmt"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	failureReasonBookNotFound = "book does not exist"
	failureReasonNotTheOwner  = "only the owner may change the status"
)

// Decide sets the status of the book.
//
//	GIVEN: a listed book owned by RequesterID
//	WHEN: ChangeBookStatus is received
//	THEN: BookStatusChanged without a SwapID
//	ERROR: ErrNotFound if the book was never listed or is delisted
//	ERROR: ErrForbidden if RequesterID is not the owner
//	IDEMPOTENCY: the book has the status already
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()
	requesterID := command.RequesterID.String()
	book := core.FoldBook(bookID, history)

	if !book.Exists() {
		failure := core.BuildChangingBookStatusFailed(bookID, requesterID, failureReasonBookNotFound, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrNotFound))
	}

	if !core.IsOwner(book, requesterID) {
		failure := core.BuildChangingBookStatusFailed(bookID, requesterID, failureReasonNotTheOwner, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrForbidden))
	}

	if book.Status == command.Status {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookStatusChanged(bookID, book.OwnerID, command.Status, "", command.OccurredAt),
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
