package reviseprofile

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	commandType = "ReviseProfile"
)

// Command represents the intent to change the contact details of a user.
// Empty fields are left unchanged.
type Command struct {
	UserID      uuid.UUID
	FullName    string
	Email       string
	PhoneNumber string
	OccurredAt  core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. The email is trimmed and lowercased like at registration.
func BuildCommand(
	userID uuid.UUID,
	fullName string,
	email string,
	phoneNumber string,
	occurredAt time.Time,
) Command {

	return Command{
		UserID:      userID,
		FullName:    strings.TrimSpace(fullName),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		PhoneNumber: strings.TrimSpace(phoneNumber),
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// Validate checks the user id and the shape of a new email.
func (c Command) Validate() error {
	var errs []error

	if c.UserID == uuid.Nil {
		errs = append(errs, errors.New("user id is required"))
	}

	if c.Email != "" && !strings.Contains(c.Email, "@") {
		errs = append(errs, errors.New("a valid email is required"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{core.ErrValidation}, errs...)...)
	}

	return nil
}
