package revisebook

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	commandType = "ReviseBook"
)

// Command represents the intent to change a book's details, cover or status.
// Empty fields leave the current value unchanged.
type Command struct {
	BookID      uuid.UUID
	RequesterID uuid.UUID
	Title       string
	Author      string
	Description string
	CoverKey    core.BlobKeyString
	Status      core.BookStatus
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with trimmed text fields.
func BuildCommand(
	bookID uuid.UUID,
	requesterID uuid.UUID,
	title string,
	author string,
	description string,
	coverKey core.BlobKeyString,
	status core.BookStatus,
	occurredAt time.Time,
) Command {

	return Command{
		BookID:      bookID,
		RequesterID: requesterID,
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		Description: strings.TrimSpace(description),
		CoverKey:    coverKey,
		Status:      status,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// Validate rejects unknown statuses.
func (c Command) Validate() error {
	if c.Status == "" {
		return nil
	}

	_, err := core.ParseBookStatus(string(c.Status))

	return err
}
