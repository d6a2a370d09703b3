package bookshelf

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	queryType = "Bookshelf"
)

// Scope selects which books the query returns.
type Scope string

const (
	// ScopeAvailableExcluding returns available books not owned by UserID.
	ScopeAvailableExcluding Scope = "available_excluding"

	// ScopeOwnedBy returns all books owned by UserID, available or swapped.
	ScopeOwnedBy Scope = "owned_by"

	// ScopeAll returns all listed books. UserID is ignored.
	ScopeAll Scope = "all"
)

// Query represents the intent to list books.
type Query struct {
	Scope  Scope
	UserID uuid.UUID
}

// BuildQuery creates a new Query.
func BuildQuery(scope Scope, userID uuid.UUID) Query {
	return Query{
		Scope:  scope,
		UserID: userID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Validate rejects unknown scopes and a missing user for the user scoped variants.
func (q Query) Validate() error {
	switch q.Scope {
	case ScopeAvailableExcluding, ScopeOwnedBy:
		if q.UserID == uuid.Nil {
			return fmt.Errorf("%w: scope %q needs a user id", core.ErrValidation, q.Scope)
		}

		return nil

	case ScopeAll:
		return nil

	default:
		return fmt.Errorf("%w: unknown scope %q", core.ErrValidation, q.Scope)
	}
}
