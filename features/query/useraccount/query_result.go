package useraccount

import (
	"time"

	"github.com/bookswap-hub/bookswap/shared/core"
)

// UserAccount represents a registered user.
type UserAccount struct {
	UserID         core.UserIDString
	FullName       string
	Email          string
	PhoneNumber    string
	PasswordHash   string
	RegisteredAt   time.Time
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event in the event history that was used to build the projection.
func (r UserAccount) GetSequenceNumber() uint {
	return r.SequenceNumber
}
