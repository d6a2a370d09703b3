package core

import (
	"time"
)

// BookEventTypes are the event types that make up the history of a book.
func BookEventTypes() []string {
	return []string{
		BookListedEventType,
		BookDetailsRevisedEventType,
		BookCoverReplacedEventType,
		BookStatusChangedEventType,
		BookDelistedEventType,
	}
}

// BookState is a book as folded from its events.
type BookState struct {
	BookID      BookIDString
	OwnerID     UserIDString
	Title       string
	Author      string
	Description string
	CoverKey    BlobKeyString
	Status      BookStatus
	Delisted    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy implements Owned.
func (b BookState) OwnedBy() UserIDString {
	return b.OwnerID
}

// Exists is true for a listed book that was not delisted since.
func (b BookState) Exists() bool {
	return b.BookID != "" && !b.Delisted
}

// IsAvailable is true if the book exists and can be swapped.
func (b BookState) IsAvailable() bool {
	return b.Exists() && b.Status == BookStatusAvailable
}

func (b BookState) apply(event DomainEvent) BookState {
	switch e := event.(type) {
	case BookListed:
		return BookState{
			BookID:      e.BookID,
			OwnerID:     e.OwnerID,
			Title:       e.Title,
			Author:      e.Author,
			Description: e.Description,
			CoverKey:    e.CoverKey,
			Status:      BookStatusAvailable,
			CreatedAt:   e.OccurredAt,
			UpdatedAt:   e.OccurredAt,
		}

	case BookDetailsRevised:
		b.Title = e.Title
		b.Author = e.Author
		b.Description = e.Description
		b.UpdatedAt = e.OccurredAt

	case BookCoverReplaced:
		b.CoverKey = e.CoverKey
		b.UpdatedAt = e.OccurredAt

	case BookStatusChanged:
		b.Status = e.Status
		b.UpdatedAt = e.OccurredAt

	case BookDelisted:
		b.Delisted = true
		b.UpdatedAt = e.OccurredAt
	}

	return b
}

func bookIDOf(event DomainEvent) (BookIDString, bool) {
	switch e := event.(type) {
	case BookListed:
		return e.BookID, true
	case BookDetailsRevised:
		return e.BookID, true
	case BookCoverReplaced:
		return e.BookID, true
	case BookStatusChanged:
		return e.BookID, true
	case BookDelisted:
		return e.BookID, true
	default:
		return "", false
	}
}

// FoldBooks folds all book events of the history, keyed by book id.
// Delisted books stay in the map with Delisted set.
func FoldBooks(history DomainEvents) map[BookIDString]BookState {
	books := make(map[BookIDString]BookState)

	for _, event := range history {
		bookID, ok := bookIDOf(event)
		if !ok {
			continue
		}

		if _, listed := books[bookID]; !listed && event.IsEventType() != BookListedEventType {
			continue
		}

		books[bookID] = books[bookID].apply(event)
	}

	return books
}

// FoldBook returns the state of one book, the zero BookState if it was never listed.
func FoldBook(bookID BookIDString, history DomainEvents) BookState {
	return FoldBooks(history)[bookID]
}
