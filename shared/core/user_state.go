package core

import (
	"time"
)

// UserEventTypes lists the event types a user is folded from.
func UserEventTypes() []string {
	return []string{
		UserRegisteredEventType,
		UserProfileRevisedEventType,
	}
}

// UserState is a registered user as folded from its events.
type UserState struct {
	UserID       UserIDString
	FullName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	RegisteredAt time.Time
}

// Exists is true once the user registered.
func (u UserState) Exists() bool {
	return u.UserID != ""
}

// FoldUsers collects all registered users of the history, keyed by user id.
// A repeated registration of the same id keeps the first one.
// Profile revisions of users without a registration in the history are skipped.
func FoldUsers(history DomainEvents) map[UserIDString]UserState {
	users := make(map[UserIDString]UserState)

	for _, event := range history {
		switch e := event.(type) {
		case UserRegistered:
			if _, registered := users[e.UserID]; registered {
				continue
			}

			users[e.UserID] = UserState{
				UserID:       e.UserID,
				FullName:     e.FullName,
				Email:        e.Email,
				PhoneNumber:  e.PhoneNumber,
				PasswordHash: e.PasswordHash,
				RegisteredAt: e.OccurredAt,
			}

		case UserProfileRevised:
			user, registered := users[e.UserID]
			if !registered {
				continue
			}

			user.FullName = e.FullName
			user.Email = e.Email
			user.PhoneNumber = e.PhoneNumber
			users[e.UserID] = user
		}
	}

	return users
}

// EmailHolder tells which user currently holds the email.
// Registrations and revisions claim their Email, a revision gives up its PreviousEmail.
// It only needs the events that carry the email as Email or PreviousEmail.
func EmailHolder(history DomainEvents, email string) (UserIDString, bool) {
	var holder UserIDString

	for _, event := range history {
		switch e := event.(type) {
		case UserRegistered:
			if e.Email == email && holder == "" {
				holder = e.UserID
			}

		case UserProfileRevised:
			if e.PreviousEmail == email && holder == e.UserID {
				holder = ""
			}

			if e.Email == email {
				holder = e.UserID
			}
		}
	}

	return holder, holder != ""
}
