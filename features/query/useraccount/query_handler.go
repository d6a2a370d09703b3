package useraccount

import (
	"context"
	"fmt"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
)

// QueryHandler runs Query -> Unmarshal -> Project.
// Observability is added by wrapping it with observable.QueryWrapper.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{eventStore: eventStore}
}

// Handle validates the query, reads the user events and projects the account.
// A lookup by email first resolves who currently holds the email.
func (h QueryHandler) Handle(ctx context.Context, query Query) (UserAccount, error) {
	if err := query.Validate(); err != nil {
		return UserAccount{}, err
	}

	userID := query.UserID.String()
	var emailSequence uint

	if query.Email != "" {
		holder, maxSequenceNumber, err := h.emailHolder(ctx, query.Email)
		if err != nil {
			return UserAccount{}, err
		}

		userID, emailSequence = holder, maxSequenceNumber
	}

	history, maxSequenceNumber, err := h.read(ctx, BuildEventFilter(userID))
	if err != nil {
		return UserAccount{}, err
	}

	return ProjectUserAccount(history, userID, max(maxSequenceNumber, emailSequence))
}

func (h QueryHandler) emailHolder(ctx context.Context, email string) (core.UserIDString, uint, error) {
	history, maxSequenceNumber, err := h.read(ctx, BuildEmailFilter(email))
	if err != nil {
		return "", 0, err
	}

	holder, held := core.EmailHolder(history, email)
	if !held {
		return "", 0, fmt.Errorf("user: %w", core.ErrNotFound)
	}

	return holder, maxSequenceNumber, nil
}

func (h QueryHandler) read(ctx context.Context, filter eventstore.Filter) (core.DomainEvents, uint, error) {
	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, 0, err
	}

	return history, maxSequenceNumber, nil
}
