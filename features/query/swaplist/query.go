package swaplist

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	queryType = "SwapList"
)

// Direction selects the side of the swap the user is on.
type Direction string

const (
	// DirectionReceived lists swaps requested from the user.
	DirectionReceived Direction = "received"

	// DirectionSent lists swaps offered by the user.
	DirectionSent Direction = "sent"
)

// Query represents the intent to list the swaps of a user.
type Query struct {
	Direction Direction
	UserID    uuid.UUID
}

// BuildQuery creates a new Query.
func BuildQuery(direction Direction, userID uuid.UUID) Query {
	return Query{
		Direction: direction,
		UserID:    userID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Validate rejects unknown directions and a missing user.
func (q Query) Validate() error {
	if q.Direction != DirectionReceived && q.Direction != DirectionSent {
		return fmt.Errorf("%w: unknown direction %q", core.ErrValidation, q.Direction)
	}

	if q.UserID == uuid.Nil {
		return fmt.Errorf("%w: user id is required", core.ErrValidation)
	}

	return nil
}

// participantKey is the payload property holding the user on the queried side.
func (q Query) participantKey() string {
	if q.Direction == DirectionSent {
		return "OfferedBy"
	}

	return "RequestedFrom"
}
