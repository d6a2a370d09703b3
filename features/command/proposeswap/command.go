package proposeswap

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	commandType = "ProposeSwap"
)

// Command represents the intent of ProposerID to swap BookOffered for BookRequested.
type Command struct {
	SwapID        uuid.UUID
	BookOffered   uuid.UUID
	BookRequested uuid.UUID
	ProposerID    uuid.UUID
	OccurredAt    core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(
	swapID uuid.UUID,
	bookOffered uuid.UUID,
	bookRequested uuid.UUID,
	proposerID uuid.UUID,
	occurredAt time.Time,
) Command {

	return Command{
		SwapID:        swapID,
		BookOffered:   bookOffered,
		BookRequested: bookRequested,
		ProposerID:    proposerID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
