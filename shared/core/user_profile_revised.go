package core

import (
	"time"

	"github.com/google/uuid"
)

// UserProfileRevisedEventType is the event type identifier.
const UserProfileRevisedEventType = "UserProfileRevised"

// UserProfileRevised represents when a user changed their contact details.
// It carries the whole profile after the change. PreviousEmail is only set when the email changed,
// the old address is free for others from then on.
type UserProfileRevised struct {
	UserID        UserIDString
	FullName      string
	Email         string
	PreviousEmail string
	PhoneNumber   string
	OccurredAt    OccurredAt
}

// BuildUserProfileRevised creates a new UserProfileRevised event.
func BuildUserProfileRevised(
	userID uuid.UUID,
	fullName string,
	email string,
	previousEmail string,
	phoneNumber string,
	occurredAt time.Time,
) UserProfileRevised {

	event := UserProfileRevised{
		UserID:        userID.String(),
		FullName:      fullName,
		Email:         email,
		PreviousEmail: previousEmail,
		PhoneNumber:   phoneNumber,
		OccurredAt:    ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e UserProfileRevised) IsEventType() string {
	return UserProfileRevisedEventType
}

// HasOccurredAt returns when this event occurred.
func (e UserProfileRevised) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e UserProfileRevised) IsErrorEvent() bool {
	return false
}
