package withdrawswap

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	commandType = "WithdrawSwap"
)

// Command represents RequesterID's intent to delete a swap.
type Command struct {
	SwapID      uuid.UUID
	RequesterID uuid.UUID
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(swapID uuid.UUID, requesterID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		SwapID:      swapID,
		RequesterID: requesterID,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
