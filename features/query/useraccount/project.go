package useraccount

import (
	"fmt"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

// ProjectUserAccount folds the user events into the account of the user.
//
//	GIVEN: the user events selected by BuildEventFilter
//	WHEN: UserAccount query is executed
//	THEN: the account of the user, with all profile revisions applied
//	ERROR: core.ErrNotFound if the user never registered
func ProjectUserAccount(history core.DomainEvents, userID core.UserIDString, maxSequence uint) (UserAccount, error) {
	user := core.FoldUsers(history)[userID]
	if !user.Exists() {
		return UserAccount{}, fmt.Errorf("user: %w", core.ErrNotFound)
	}

	return UserAccount{
		UserID:         user.UserID,
		FullName:       user.FullName,
		Email:          user.Email,
		PhoneNumber:    user.PhoneNumber,
		PasswordHash:   user.PasswordHash,
		RegisteredAt:   user.RegisteredAt,
		SequenceNumber: maxSequence,
	}, nil
}

// BuildEmailFilter selects every claim or release of the email. It is queried first to learn the user id.
func BuildEmailFilter(email string) eventstore.Filter {
	userTypes := core.UserEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(userTypes[0], userTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("Email", email), eventstore.P("PreviousEmail", email)).
		Finalize()
}

// BuildEventFilter selects the user events of the user id.
func BuildEventFilter(userID core.UserIDString) eventstore.Filter {
	userTypes := core.UserEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(userTypes[0], userTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("UserID", userID)).
		Finalize()
}
