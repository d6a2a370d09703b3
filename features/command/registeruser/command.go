package registeruser

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/shared/core"
)

const (
	commandType = "RegisterUser"
)

// Command represents the intent to register a new user.
type Command struct {
	UserID       uuid.UUID
	FullName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	OccurredAt   core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. The email is trimmed and lowercased.
func BuildCommand(
	userID uuid.UUID,
	fullName string,
	email string,
	phoneNumber string,
	passwordHash string,
	occurredAt time.Time,
) Command {

	return Command{
		UserID:       userID,
		FullName:     strings.TrimSpace(fullName),
		Email:        NormalizeEmail(email),
		PhoneNumber:  strings.TrimSpace(phoneNumber),
		PasswordHash: passwordHash,
		OccurredAt:   core.ToOccurredAt(occurredAt),
	}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the fields without which no user can be registered.
func (c Command) Validate() error {
	var errs []error

	if c.FullName == "" {
		errs = append(errs, errors.New("full name is required"))
	}

	if c.Email == "" || !strings.Contains(c.Email, "@") {
		errs = append(errs, errors.New("a valid email is required"))
	}

	if c.PasswordHash == "" {
		errs = append(errs, errors.New("password is required"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{core.ErrValidation}, errs...)...)
	}

	return nil
}
