package revisebook

import (
	"fmt"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	failureReasonBookNotFound = "book does not exist"
	failureReasonNotTheOwner  = "only the owner may revise the book"
)

// Decide merges the revision into the book.
//
//	GIVEN: a listed book owned by RequesterID
//	WHEN: ReviseBook is received
//	THEN: BookDetailsRevised if a text field changed, BookCoverReplaced if the cover changed,
//	      BookStatusChanged if the status changed, all appended together
//	ERROR: ErrNotFound if the book was never listed or is delisted
//	ERROR: ErrForbidden if RequesterID is not the owner
//	IDEMPOTENCY: nothing would change
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	bookID := command.BookID.String()
	requesterID := command.RequesterID.String()
	book := core.FoldBook(bookID, history)

	if !book.Exists() {
		failure := core.BuildRevisingBookFailed(bookID, requesterID, failureReasonBookNotFound, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrNotFound))
	}

	if !core.IsOwner(book, requesterID) {
		failure := core.BuildRevisingBookFailed(bookID, requesterID, failureReasonNotTheOwner, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrForbidden))
	}

	var events core.DomainEvents

	title := mergeField(book.Title, command.Title)
	author := mergeField(book.Author, command.Author)
	description := mergeField(book.Description, command.Description)

	if title != book.Title || author != book.Author || description != book.Description {
		events = append(events, core.BuildBookDetailsRevised(
			command.BookID,
			book.OwnerID,
			title,
			author,
			description,
			command.OccurredAt,
		))
	}

	if command.CoverKey != "" && command.CoverKey != book.CoverKey {
		events = append(events, core.BuildBookCoverReplaced(
			command.BookID,
			book.OwnerID,
			command.CoverKey,
			book.CoverKey,
			command.OccurredAt,
		))
	}

	if command.Status != "" && command.Status != book.Status {
		events = append(events, core.BuildBookStatusChanged(
			bookID,
			book.OwnerID,
			command.Status,
			"",
			command.OccurredAt,
		))
	}

	if len(events) == 0 {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(events...)
}

func mergeField(current, revised string) string {
	if revised == "" {
		return current
	}

	return revised
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
