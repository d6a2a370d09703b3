package bookdetails

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

// ProjectBookDetails folds the history of one book.
//
//	GIVEN: the events of the book with BookID
//	WHEN: BookDetails query is executed
//	THEN: the current details of the book
//	ERROR: core.ErrNotFound if the book was never listed or is delisted
func ProjectBookDetails(history core.DomainEvents, query Query, maxSequence uint) (BookDetails, error) {
	book := core.FoldBook(query.BookID.String(), history)
	if !book.Exists() {
		return BookDetails{}, fmt.Errorf("book %s: %w", query.BookID, core.ErrNotFound)
	}

	return BookDetails{
		BookID:         book.BookID,
		OwnerID:        book.OwnerID,
		Title:          book.Title,
		Author:         book.Author,
		Description:    book.Description,
		CoverKey:       book.CoverKey,
		Status:         book.Status,
		CreatedAt:      book.CreatedAt,
		UpdatedAt:      book.UpdatedAt,
		SequenceNumber: maxSequence,
	}, nil
}

// BuildEventFilter creates the filter for querying the events of the specified book.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	bookTypes := core.BookEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(bookTypes[0], bookTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", bookID.String())).
		Finalize()
}
