package swaplist

import (
	"cmp"
	"slices"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

// ProjectSwapList implements the query logic to list the swaps of a user.
//
//	GIVEN: the swap events of the user (swapHistory) and the events of the referenced books and users (detailsHistory)
//	WHEN: SwapList query is executed
//	THEN: the swaps on the queried side, newest first, with book and user summaries
//	EXCLUDES: withdrawn swaps
func ProjectSwapList(swapHistory core.DomainEvents, detailsHistory core.DomainEvents, query Query, maxSequence uint) SwapList {
	userID := query.UserID.String()
	books := core.FoldBooks(detailsHistory)
	users := core.FoldUsers(detailsHistory)

	swaps := make([]SwapInfo, 0)
	for _, swap := range core.FoldSwaps(swapHistory) {
		if !swap.Exists() || !onQueriedSide(swap, query.Direction, userID) {
			continue
		}

		swaps = append(swaps, SwapInfo{
			SwapID:        swap.SwapID,
			Status:        swap.Status,
			BookOffered:   bookSummary(swap.BookOffered, books),
			BookRequested: bookSummary(swap.BookRequested, books),
			OfferedBy:     userSummary(swap.OfferedBy, users),
			RequestedFrom: userSummary(swap.RequestedFrom, users),
			CreatedAt:     swap.CreatedAt,
			UpdatedAt:     swap.UpdatedAt,
		})
	}

	slices.SortFunc(swaps, func(a, b SwapInfo) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.SwapID, b.SwapID))
	})

	return SwapList{
		Direction:      query.Direction,
		UserID:         userID,
		Swaps:          swaps,
		Count:          len(swaps),
		SequenceNumber: maxSequence,
	}
}

func onQueriedSide(swap core.SwapState, direction Direction, userID core.UserIDString) bool {
	if direction == DirectionSent {
		return swap.OfferedBy == userID
	}

	return swap.RequestedFrom == userID
}

func bookSummary(bookID core.BookIDString, books map[core.BookIDString]core.BookState) BookSummary {
	book, listed := books[bookID]
	if !listed {
		return BookSummary{BookID: bookID, Delisted: true}
	}

	return BookSummary{
		BookID:   book.BookID,
		Title:    book.Title,
		Author:   book.Author,
		CoverKey: book.CoverKey,
		Status:   book.Status,
		Delisted: book.Delisted,
	}
}

func userSummary(userID core.UserIDString, users map[core.UserIDString]core.UserState) UserSummary {
	user := users[userID]

	return UserSummary{
		UserID:   userID,
		FullName: user.FullName,
	}
}

// BuildSwapFilter creates the filter for the swaps of the user on the queried side.
// All swap events carry both participants, so the withdrawals and decisions are found too.
func BuildSwapFilter(query Query) eventstore.Filter {
	swapTypes := core.SwapEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(swapTypes[0], swapTypes[1:]...).
		AndAnyPredicateOf(eventstore.P(query.participantKey(), query.UserID.String())).
		Finalize()
}

// BuildDetailsFilter creates the filter for the books and users referenced by the swaps.
// It reports false when the swaps reference nothing, the second read is skipped then.
func BuildDetailsFilter(swaps map[core.SwapIDString]core.SwapState) (eventstore.Filter, bool) {
	var bookPredicates, userPredicates []eventstore.FilterPredicate

	for _, swap := range swaps {
		if !swap.Exists() {
			continue
		}

		bookPredicates = append(bookPredicates,
			eventstore.P("BookID", swap.BookOffered),
			eventstore.P("BookID", swap.BookRequested),
		)
		userPredicates = append(userPredicates,
			eventstore.P("UserID", swap.OfferedBy),
			eventstore.P("UserID", swap.RequestedFrom),
		)
	}

	if len(bookPredicates) == 0 {
		return eventstore.Filter{}, false
	}

	bookTypes, userTypes := core.BookEventTypes(), core.UserEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(bookTypes[0], bookTypes[1:]...).
		AndAnyPredicateOf(bookPredicates[0], bookPredicates[1:]...).
		OrMatching().
		AnyEventTypeOf(userTypes[0], userTypes[1:]...).
		AndAnyPredicateOf(userPredicates[0], userPredicates[1:]...).
		Finalize(), true
}
