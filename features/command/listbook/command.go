package listbook

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	commandType = "ListBook"
)

// Command represents the intent to list a book owned by OwnerID.
type Command struct {
	BookID      uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Author      string
	Description string
	CoverKey    core.BlobKeyString
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with trimmed text fields.
func BuildCommand(
	bookID uuid.UUID,
	ownerID uuid.UUID,
	title string,
	author string,
	description string,
	coverKey core.BlobKeyString,
	occurredAt time.Time,
) Command {

	return Command{
		BookID:      bookID,
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		Description: strings.TrimSpace(description),
		CoverKey:    coverKey,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// Validate rejects books without a title and commands without an owner.
func (c Command) Validate() error {
	if c.OwnerID == uuid.Nil {
		return errors.Join(core.ErrValidation, errors.New("owner is required"))
	}

	if c.Title == "" {
		return errors.Join(core.ErrValidation, errors.New("title is required"))
	}

	return nil
}
