package delistbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	commandType = "DelistBook"
)

// Command represents the owner's intent to delete a book.
type Command struct {
	BookID      uuid.UUID
	RequesterID uuid.UUID
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(bookID uuid.UUID, requesterID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:      bookID,
		RequesterID: requesterID,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
