package registeruser

import (
	"fmt"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
)

const failureReasonEmailTaken = "email is already registered"

// Decide registers the user unless the email belongs to someone else.
//
//	GIVEN: no user with UserID or Email
//	WHEN: RegisterUser is received
//	THEN: UserRegistered
//	ERROR: ErrEmailTaken if another user currently holds the email
//	IDEMPOTENCY: a user with UserID already exists
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	userID := command.UserID.String()

	if core.FoldUsers(history)[userID].Exists() {
		return core.IdempotentDecision()
	}

	if holder, held := core.EmailHolder(history, command.Email); held && holder != userID {
		failure := core.BuildRegisteringUserFailed(userID, userID, failureReasonEmailTaken, command.OccurredAt)
		return core.ErrorDecision(failure, fmt.Errorf("%s: %w", failure.IsEventType(), core.ErrEmailTaken))
	}

	return core.SuccessDecision(
		core.BuildUserRegistered(
			command.UserID,
			command.FullName,
			command.Email,
			command.PhoneNumber,
			command.PasswordHash,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter selects the user events of the user id and every claim or release of the email.
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
