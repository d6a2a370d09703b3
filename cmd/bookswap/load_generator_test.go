package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookswap-hub/bookswap/eventstore/memengine"
	"github.com/bookswap-hub/bookswap/features/accounts"
	"github.com/bookswap-hub/bookswap/features/bookcatalog"
	"github.com/bookswap-hub/bookswap/features/swapnegotiation"
	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
	"github.com/bookswap-hub/bookswap/shared/shell/auth"
	"github.com/bookswap-hub/bookswap/shared/shell/blobstore"
	"github.com/bookswap-hub/bookswap/shared/shell/telemetry"
)

func givenLoadGenerator(t *testing.T, cfg loadConfig) *LoadGenerator {
	t.Helper()

	eventStore := memengine.NewEventStore()
	retry := shell.WithMaxAttempts(20)

	covers, err := blobstore.NewFSStore(t.TempDir(), nil)
	require.NoError(t, err)

	credentials, err := auth.NewService("loadgen-secret", auth.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	return NewLoadGenerator(
		bookcatalog.NewCatalog(bookcatalog.NewHandlers(eventStore, retry), covers),
		swapnegotiation.NewNegotiation(swapnegotiation.NewHandlers(eventStore, retry)),
		accounts.NewAccounts(accounts.NewHandlers(eventStore, retry), credentials),
		cfg,
		telemetry.NewJSONLogger(io.Discard, "error"),
	)
}

func Test_ScenarioFor_FollowsTheWeights(t *testing.T) {
	weights := [4]int{40, 30, 10, 20}

	assert.Equal(t, scenarioPropose, scenarioFor(0, weights))
	assert.Equal(t, scenarioPropose, scenarioFor(39, weights))
	assert.Equal(t, scenarioDecide, scenarioFor(40, weights))
	assert.Equal(t, scenarioWithdraw, scenarioFor(75, weights))
	assert.Equal(t, scenarioRelist, scenarioFor(80, weights))
	assert.Equal(t, scenarioRelist, scenarioFor(99, weights))
}

func Test_LoadGenerator_ProposeThenDecide(t *testing.T) {
	// arrange
	ctx := context.Background()
	lg := givenLoadGenerator(t, loadConfig{Users: 2, BooksPerUser: 1})
	require.NoError(t, lg.Seed(ctx))
	proposer, recipient := lg.users[0], lg.users[1]

	// act
	proposeErr := lg.propose(ctx, proposer)
	decideErr := lg.decide(ctx, recipient)

	// assert
	require.NoError(t, proposeErr)
	require.NoError(t, decideErr)
	sent, err := lg.negotiation.ListSent(ctx, proposer)
	require.NoError(t, err)
	require.Len(t, sent.Swaps, 1)
	assert.NotEqual(t, core.SwapStatusPending, sent.Swaps[0].Status)
}

func Test_LoadGenerator_ScenariosWithoutCandidatesAreSkipped(t *testing.T) {
	// arrange
	ctx := context.Background()
	lg := givenLoadGenerator(t, loadConfig{Users: 2, BooksPerUser: 1})
	require.NoError(t, lg.Seed(ctx))

	// act + assert
	assert.ErrorIs(t, lg.decide(ctx, lg.users[0]), errNothingToDo)
	assert.ErrorIs(t, lg.withdraw(ctx, lg.users[0]), errNothingToDo)
	assert.ErrorIs(t, lg.relist(ctx, lg.users[0]), errNothingToDo)
	assert.ErrorIs(t, lg.propose(ctx, uuid.New()), errNothingToDo)
}

func Test_LoadGenerator_Run_StopsWithTheContext(t *testing.T) {
	// arrange
	lg := givenLoadGenerator(t, loadConfig{
		Rate:         200,
		Workers:      4,
		Users:        4,
		BooksPerUser: 2,
		Weights:      [4]int{40, 30, 10, 20},
	})
	require.NoError(t, lg.Seed(context.Background()))
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	// act
	err := lg.Run(ctx)

	// assert
	require.NoError(t, err)
	stats := lg.Stats()
	assert.Positive(t, stats.Executed)
	assert.LessOrEqual(t, stats.Rejected+stats.Skipped, stats.Executed)
	assert.Zero(t, stats.Failed)
}
