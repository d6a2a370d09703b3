package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/features/command/registeruser"
	"github.com/bookswap-hub/bookswap/features/command/reviseprofile"
	"github.com/bookswap-hub/bookswap/features/query/useraccount"
	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
)

// Credentials hashes and checks passwords and issues tokens. auth.Service implements it.
type Credentials interface {
	HashPassword(password string) (string, error)
	CheckPassword(hash, password string) error
	IssueToken(userID core.UserIDString) (string, time.Time, error)
}

// Handlers are the slices the accounts run on. They are usually observable wrappers.
type Handlers struct {
	RegisterUser  shell.CoreCommandHandler[registeruser.Command]
	ReviseProfile shell.CoreCommandHandler[reviseprofile.Command]
	UserAccount   shell.CoreQueryHandler[useraccount.Query, useraccount.UserAccount]
}

// NewHandlers creates the unwrapped handlers for the event store.
func NewHandlers(eventStore shell.EventStore, retryOptions ...shell.RetryOption) Handlers {
	return Handlers{
		RegisterUser:  registeruser.NewCommandHandler(eventStore, registeruser.WithRetryOptions(retryOptions...)),
		ReviseProfile: reviseprofile.NewCommandHandler(eventStore, reviseprofile.WithRetryOptions(retryOptions...)),
		UserAccount:   useraccount.NewQueryHandler(eventStore),
	}
}

// Registration are the sign-up fields.
type Registration struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
}

// ProfileChanges are the fields of a profile update. Empty fields stay as they are.
type ProfileChanges struct {
	FullName    string
	Email       string
	PhoneNumber string
}

// Profile is the public part of a user account.
type Profile struct {
	UserID       core.UserIDString
	FullName     string
	Email        string
	PhoneNumber  string
	RegisteredAt time.Time
}

// Session is the outcome of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Profile   Profile
}

// Accounts implements registration, login, profile lookup and profile updates.
type Accounts struct {
	handlers    Handlers
	credentials Credentials
	now         func() time.Time
}

// NewAccounts creates new Accounts.
func NewAccounts(handlers Handlers, credentials Credentials) *Accounts {
	return &Accounts{
		handlers:    handlers,
		credentials: credentials,
		now:         time.Now,
	}
}

// Register signs up a new user. core.ErrEmailTaken if the email is registered already.
func (a *Accounts) Register(ctx context.Context, registration Registration) (Profile, error) {
	passwordHash, err := a.credentials.HashPassword(registration.Password)
	if err != nil {
		return Profile{}, err
	}

	userID := uuid.New()
	command := registeruser.BuildCommand(
		userID,
		registration.FullName,
		registration.Email,
		registration.PhoneNumber,
		passwordHash,
		a.now(),
	)

	if _, err = a.handlers.RegisterUser.Handle(ctx, command); err != nil {
		return Profile{}, err
	}

	return a.Profile(ctx, userID)
}

// Login checks the credentials and issues a token.
func (a *Accounts) Login(ctx context.Context, email string, password string) (Session, error) {
	account, err := a.handlers.UserAccount.Handle(ctx, useraccount.BuildQueryByEmail(email))
	if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrValidation) {
		return Session{}, core.ErrUnauthenticated
	}
	if err != nil {
		return Session{}, err
	}

	if err = a.credentials.CheckPassword(account.PasswordHash, password); err != nil {
		return Session{}, err
	}

	token, expiresAt, err := a.credentials.IssueToken(account.UserID)
	if err != nil {
		return Session{}, errors.Join(core.ErrStorage, err)
	}

	return Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Profile:   profileOf(account),
	}, nil
}

// Profile returns the public profile of the user.
func (a *Accounts) Profile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	account, err := a.handlers.UserAccount.Handle(ctx, useraccount.BuildQueryByID(userID))
	if err != nil {
		return Profile{}, err
	}

	return profileOf(account), nil
}

// UpdateProfile changes the given fields of the profile and returns the result.
// core.ErrEmailTaken if another user holds the new email.
func (a *Accounts) UpdateProfile(ctx context.Context, userID uuid.UUID, changes ProfileChanges) (Profile, error) {
	command := reviseprofile.BuildCommand(
		userID,
		changes.FullName,
		changes.Email,
		changes.PhoneNumber,
		a.now(),
	)

	if _, err := a.handlers.ReviseProfile.Handle(ctx, command); err != nil {
		return Profile{}, err
	}

	return a.Profile(ctx, userID)
}

func profileOf(account useraccount.UserAccount) Profile {
	return Profile{
		UserID:       account.UserID,
		FullName:     account.FullName,
		Email:        account.Email,
		PhoneNumber:  account.PhoneNumber,
		RegisteredAt: account.RegisteredAt,
	}
}
