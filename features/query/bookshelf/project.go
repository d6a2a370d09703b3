package bookshelf

import (
	"cmp"
	"slices"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

// ProjectBookshelf implements the query logic to list books.
//
//	GIVEN: the book events and user registrations selected by BuildEventFilter
//	WHEN: Bookshelf query is executed
//	THEN: the books of the scope, newest first, each with its owner's profile
//	EXCLUDES: delisted books
//	EXCLUDES: swapped books and the user's own books for ScopeAvailableExcluding
func ProjectBookshelf(history core.DomainEvents, query Query, maxSequence uint) Bookshelf {
	userID := query.UserID.String()
	users := core.FoldUsers(history)

	books := make([]BookInfo, 0)
	for _, book := range core.FoldBooks(history) {
		if !inScope(book, query.Scope, userID) {
			continue
		}

		owner := users[book.OwnerID]
		books = append(books, BookInfo{
			BookID:      book.BookID,
			Title:       book.Title,
			Author:      book.Author,
			Description: book.Description,
			CoverKey:    book.CoverKey,
			Status:      book.Status,
			Owner: OwnerInfo{
				UserID:   book.OwnerID,
				FullName: owner.FullName,
				Email:    owner.Email,
			},
			CreatedAt: book.CreatedAt,
			UpdatedAt: book.UpdatedAt,
		})
	}

	slices.SortFunc(books, func(a, b BookInfo) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.BookID, b.BookID))
	})

	return Bookshelf{
		Books:          books,
		Count:          len(books),
		SequenceNumber: maxSequence,
	}
}

func inScope(book core.BookState, scope Scope, userID core.UserIDString) bool {
	if !book.Exists() {
		return false
	}

	switch scope {
	case ScopeAvailableExcluding:
		return book.IsAvailable() && !core.IsOwner(book, userID)
	case ScopeOwnedBy:
		return core.IsOwner(book, userID)
	case ScopeAll:
		return true
	default:
		return false
	}
}

// BuildEventFilter creates the filter for the books and owners the scope needs.
// ScopeOwnedBy narrows both to the user, every book event carries the OwnerID.
func BuildEventFilter(query Query) eventstore.Filter {
	bookTypes, userTypes := core.BookEventTypes(), core.UserEventTypes()

	if query.Scope == ScopeOwnedBy {
		userID := query.UserID.String()

		return eventstore.BuildEventFilter().
			Matching().
			AnyEventTypeOf(bookTypes[0], bookTypes[1:]...).
			AndAnyPredicateOf(eventstore.P("OwnerID", userID)).
			OrMatching().
			AnyEventTypeOf(userTypes[0], userTypes[1:]...).
			AndAnyPredicateOf(eventstore.P("UserID", userID)).
			Finalize()
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(bookTypes[0], bookTypes[1:]...).
		OrMatching().
		AnyEventTypeOf(userTypes[0], userTypes[1:]...).
		Finalize()
}
