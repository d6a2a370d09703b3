package useraccount

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	queryType = "UserAccount"
)

// Query represents the intent to look up one user. Exactly one of UserID and Email is set.
type Query struct {
	UserID uuid.UUID
	Email  string
}

// BuildQueryByID creates a lookup by user id.
func BuildQueryByID(userID uuid.UUID) Query {
	return Query{
		UserID: userID,
	}
}

// BuildQueryByEmail creates a lookup by email, in the form emails are registered with.
func BuildQueryByEmail(email string) Query {
	return Query{
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Validate requires exactly one lookup key.
func (q Query) Validate() error {
	if (q.UserID == uuid.Nil) == (q.Email == "") {
		return fmt.Errorf("%w: look up a user either by id or by email", core.ErrValidation)
	}

	return nil
}
