package registeruser_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/features/command/registeruser"
	"github.com/bookswap-hub/bookswap/shared/core"
)

func givenUserRegistered(t *testing.T, userID uuid.UUID, email string, at time.Time) core.UserRegistered {
	t.Helper()

	return core.BuildUserRegistered(userID, "Ada Lovelace", email, "+44 20 0000", "hash", at)
}

func Test_Decide_Success_WhenEmailIsFree(t *testing.T) {
	// arrange
	now := time.Now()
	command := registeruser.BuildCommand(uuid.New(), " Ada Lovelace ", " Ada@Example.org ", "+44", "hash", now)

	// act
	result := registeruser.Decide(core.DomainEvents{}, command)

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	event, ok := result.Events[0].(core.UserRegistered)
	require.True(t, ok)
	assert.Equal(t, command.UserID.String(), event.UserID)
	assert.Equal(t, "ada@example.org", event.Email)
	assert.Equal(t, "Ada Lovelace", event.FullName)
}

func Test_Decide_Error_WhenEmailBelongsToAnotherUser(t *testing.T) {
	// arrange
	now := time.Now()
	history := core.DomainEvents{givenUserRegistered(t, uuid.New(), "ada@example.org", now.Add(-time.Hour))}
	command := registeruser.BuildCommand(uuid.New(), "Someone Else", "ADA@example.org", "", "hash", now)

	// act
	result := registeruser.Decide(history, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrEmailTaken)
	require.Len(t, result.Events, 1)
	assert.True(t, result.Events[0].IsErrorEvent())
	assert.Equal(t, core.RegisteringUserFailedEventType, result.Events[0].IsEventType())
}

func Test_Decide_Idempotent_WhenUserAlreadyRegistered(t *testing.T) {
	// arrange
	now := time.Now()
	userID := uuid.New()
	history := core.DomainEvents{givenUserRegistered(t, userID, "ada@example.org", now.Add(-time.Hour))}
	command := registeruser.BuildCommand(userID, "Ada Lovelace", "ada@example.org", "", "hash", now)

	// act
	result := registeruser.Decide(history, command)

	// assert
	assert.True(t, result.IsIdempotent())
	assert.False(t, result.HasEventToAppend())
}

func Test_Command_Validate(t *testing.T) {
	now := time.Now()

	assert.NoError(t, registeruser.BuildCommand(uuid.New(), "Ada", "ada@example.org", "", "hash", now).Validate())
	assert.ErrorIs(t, registeruser.BuildCommand(uuid.New(), "", "ada@example.org", "", "hash", now).Validate(), core.ErrValidation)
	assert.ErrorIs(t, registeruser.BuildCommand(uuid.New(), "Ada", "not-an-email", "", "hash", now).Validate(), core.ErrValidation)
	assert.ErrorIs(t, registeruser.BuildCommand(uuid.New(), "Ada", "ada@example.org", "", "", now).Validate(), core.ErrValidation)
}

func Test_Decide_Success_WhenTheEmailWasGivenUp(t *testing.T) {
	// arrange
	now := time.Now()
	previousHolder := uuid.New()
	history := core.DomainEvents{
		givenUserRegistered(t, previousHolder, "ada@example.org", now.Add(-2*time.Hour)),
		core.BuildUserProfileRevised(previousHolder, "Ada Lovelace", "king@example.org", "ada@example.org", "", now.Add(-time.Hour)),
	}
	command := registeruser.BuildCommand(uuid.New(), "Ada Byron", "ada@example.org", "", "hash", now)

	// act
	result := registeruser.Decide(history, command)

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	assert.Equal(t, core.UserRegisteredEventType, result.Events[0].IsEventType())
}
