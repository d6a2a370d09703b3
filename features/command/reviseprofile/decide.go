package reviseprofile

import (
	"fmt"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	failureReasonUnknownUser = "user is not registered"
	failureReasonEmailTaken  = "email is already registered"
)

// Decide applies the given fields on top of the current profile.
//
//	GIVEN: the user events of UserID and every claim or release of the new Email
//	WHEN: ReviseProfile is received
//	THEN: UserProfileRevised with the whole resulting profile
//	ERROR: ErrNotFound if the user is not registered, ErrEmailTaken if another user holds the new email
//	IDEMPOTENCY: every given field already has its value
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	userID := command.UserID.String()

	user := core.FoldUsers(history)[userID]
	if !user.Exists() {
		failure := core.BuildRevisingProfileFailed(userID, userID, failureReasonUnknownUser, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrNotFound))
	}

	revised := user
	revised.FullName = orCurrent(command.FullName, user.FullName)
	revised.Email = orCurrent(command.Email, user.Email)
	revised.PhoneNumber = orCurrent(command.PhoneNumber, user.PhoneNumber)

	if revised == user {
		return core.IdempotentDecision()
	}

	var previousEmail string

	if revised.Email != user.Email {
		if holder, held := core.EmailHolder(history, revised.Email); held && holder != userID {
			failure := core.BuildRevisingProfileFailed(userID, userID, failureReasonEmailTaken, command.OccurredAt)
			return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrEmailTaken))
		}

		previousEmail = user.Email
	}

	return core.SuccessDecision(
		core.BuildUserProfileRevised(
			command.UserID,
			revised.FullName,
			revised.Email,
			previousEmail,
			revised.PhoneNumber,
			command.OccurredAt,
		),
	)
}

func orCurrent(given, current string) string {
	if given == "" {
		return current
	}

	return given
}

// BuildEventFilter selects the user events of the user id and every claim or release of the new email.
func BuildEventFilter(command Command) eventstore.Filter {
	userTypes := core.UserEventTypes()

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(userTypes[0], userTypes[1:]...).
		AndAnyPredicateOf(
			eventstore.P("UserID", command.UserID.String()),
			eventstore.P("Email", command.Email),
			eventstore.P("PreviousEmail", command.Email),
		).
		Finalize()
}
