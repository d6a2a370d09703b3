package core

import (
	"time"

	"github.com/google/uuid"
)

// UserRegisteredEventType is the event type identifier.
const UserRegisteredEventType = "UserRegistered"

// UserRegistered represents when a user signed up for the marketplace.
type UserRegistered struct {
	UserID       UserIDString
	FullName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	OccurredAt   OccurredAt
}

// BuildUserRegistered creates a new UserRegistered event.
func BuildUserRegistered(
	userID uuid.UUID,
	fullName string,
	email string,
	phoneNumber string,
	passwordHash string,
	occurredAt time.Time,
) UserRegistered {

	event := UserRegistered{
		UserID:       userID.String(),
		FullName:     fullName,
		Email:        email,
		PhoneNumber:  phoneNumber,
		PasswordHash: passwordHash,
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e UserRegistered) IsEventType() string {
	return UserRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e UserRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e UserRegistered) IsErrorEvent() bool {
	return false
}
