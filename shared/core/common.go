package core

import (
	"time"
)

// UserIDString represents a user identifier
type UserIDString = string

// BookIDString represents a book identifier
type BookIDString = string

// SwapIDString represents a swap identifier
type SwapIDString = string

// BlobKeyString is the opaque key of a stored cover image, empty if the book has no cover
type BlobKeyString = string

// EventTypeString is the string identifier of an event type
type EventTypeString = string

// OccurredAt represents when an event occurred
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}
