package changebookstatus

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	commandType = "ChangeBookStatus"
)

// Command represents the owner's intent to set the status of a book.
type Command struct {
	BookID      uuid.UUID
	RequesterID uuid.UUID
	Status      core.BookStatus
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(bookID uuid.UUID, requesterID uuid.UUID, status core.BookStatus, occurredAt time.Time) Command {
	return Command{
		BookID:      bookID,
		RequesterID: requesterID,
		Status:      status,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// Validate rejects unknown statuses.
func (c Command) Validate() error {
	_, err := core.ParseBookStatus(string(c.Status))

	return err
}
