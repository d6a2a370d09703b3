package decideswap

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	commandType = "DecideSwap"
)

// Command represents DeciderID's decision on a swap.
type Command struct {
	SwapID     uuid.UUID
	DeciderID  uuid.UUID
	Decision   core.SwapDecision
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(swapID uuid.UUID, deciderID uuid.UUID, decision core.SwapDecision, occurredAt time.Time) Command {
	return Command{
		SwapID:     swapID,
		DeciderID:  deciderID,
		Decision:   decision,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// Validate rejects decisions other than accepted and rejected.
func (c Command) Validate() error {
	_, err := core.ParseSwapDecision(string(c.Decision))

	return err
}
