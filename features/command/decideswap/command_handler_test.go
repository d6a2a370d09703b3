package decideswap_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/eventstore/memengine"
	"github.com/bookswap-hub/bookswap/features/command/decideswap"
	"github.com/bookswap-hub/bookswap/features/command/delistbook"
	"github.com/bookswap-hub/bookswap/features/command/listbook"
	"github.com/bookswap-hub/bookswap/features/command/proposeswap"
	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
)

type scenario struct {
	store        *memengine.EventStore
	userA, userB uuid.UUID
	book1, book2 uuid.UUID
	swapID       uuid.UUID
}

// givenProposedSwapInStore: A owns book1, B owns book2, B proposed book2 for book1.
func givenProposedSwapInStore(t *testing.T, ctx context.Context) scenario {
	t.Helper()

	s := scenario{
		store:  memengine.NewEventStore(),
		userA:  uuid.New(),
		userB:  uuid.New(),
		book1:  uuid.New(),
		book2:  uuid.New(),
		swapID: uuid.New(),
	}

	givenListedBook(t, ctx, s.store, s.book1, s.userA)
	givenListedBook(t, ctx, s.store, s.book2, s.userB)

	_, err := proposeswap.NewCommandHandler(s.store).Handle(ctx, proposeswap.BuildCommand(s.swapID, s.book2, s.book1, s.userB, time.Now()))
	require.NoError(t, err)

	return s
}

func givenListedBook(t *testing.T, ctx context.Context, store *memengine.EventStore, bookID, ownerID uuid.UUID) {
	t.Helper()

	_, err := listbook.NewCommandHandler(store).Handle(ctx, listbook.BuildCommand(bookID, ownerID, "A Book", "", "", "", time.Now()))
	require.NoError(t, err)
}

func historyOf(t *testing.T, ctx context.Context, store *memengine.EventStore, s scenario) core.DomainEvents {
	t.Helper()

	storableEvents, _, err := store.Query(ctx, decideswap.BuildEventFilter(s.swapID.String(), s.book1.String(), s.book2.String()))
	require.NoError(t, err)
	history, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return history
}

func Test_CommandHandler_Handle_AcceptThenSecondDecisionFails(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := givenProposedSwapInStore(t, ctx)
	handler := decideswap.NewCommandHandler(s.store)

	// act
	_, acceptErr := handler.Handle(ctx, decideswap.BuildCommand(s.swapID, s.userA, core.SwapDecisionAccept, time.Now()))
	_, secondErr := handler.Handle(ctx, decideswap.BuildCommand(s.swapID, s.userA, core.SwapDecisionReject, time.Now()))

	// assert
	require.NoError(t, acceptErr)
	assert.ErrorIs(t, secondErr, core.ErrInvalidTransition)
	history := historyOf(t, ctx, s.store, s)
	assert.Equal(t, core.SwapStatusAccepted, core.FoldSwap(s.swapID.String(), history).Status)
	assert.Equal(t, core.BookStatusSwapped, core.FoldBook(s.book1.String(), history).Status)
	assert.Equal(t, core.BookStatusSwapped, core.FoldBook(s.book2.String(), history).Status)
}

func Test_CommandHandler_Handle_InvalidDecision_IsRejectedBeforeTheStore(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := givenProposedSwapInStore(t, ctx)

	// act
	_, err := decideswap.NewCommandHandler(s.store).Handle(ctx, decideswap.BuildCommand(s.swapID, s.userA, core.SwapDecision("maybe"), time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
}

func Test_CommandHandler_Handle_ConcurrentDecisions_AdmitExactlyOne(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := givenProposedSwapInStore(t, ctx)
	handler := decideswap.NewCommandHandler(
		s.store,
		decideswap.WithRetryOptions(shell.WithMaxAttempts(10), shell.WithBaseDelay(time.Millisecond)),
	)
	commands := []decideswap.Command{
		decideswap.BuildCommand(s.swapID, s.userA, core.SwapDecisionAccept, time.Now()),
		decideswap.BuildCommand(s.swapID, s.userA, core.SwapDecisionReject, time.Now()),
		decideswap.BuildCommand(s.swapID, s.userA, core.SwapDecisionAccept, time.Now()),
		decideswap.BuildCommand(s.swapID, s.userA, core.SwapDecisionReject, time.Now()),
	}
	errs := make([]error, len(commands))
	var wg sync.WaitGroup

	// act
	for i, command := range commands {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = handler.Handle(ctx, command)
		}()
	}
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, core.ErrInvalidTransition)
	}
	assert.Equal(t, 1, succeeded)
}

func Test_CommandHandler_Handle_AcceptNeverExposesAHalfFlippedPair(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := givenProposedSwapInStore(t, ctx)
	bookTypes := core.BookEventTypes()
	bookFilter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(bookTypes[0], bookTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", s.book1.String()), eventstore.P("BookID", s.book2.String())).
		Finalize()
	command := decideswap.BuildCommand(s.swapID, s.userA, core.SwapDecisionAccept, time.Now())
	done := make(chan struct{})
	var observed []int
	var observeErr error
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			storableEvents, _, err := s.store.Query(ctx, bookFilter)
			if err == nil {
				var history core.DomainEvents
				history, err = shell.DomainEventsFrom(storableEvents)
				if err == nil {
					swapped := 0
					for _, book := range core.FoldBooks(history) {
						if book.Status == core.BookStatusSwapped {
							swapped++
						}
					}
					observed = append(observed, swapped)
				}
			}
			if err != nil {
				observeErr = err
				return
			}

			select {
			case <-done:
				return
			default:
			}
		}
	}()

	// act
	_, err := decideswap.NewCommandHandler(s.store).Handle(ctx, command)
	close(done)
	wg.Wait()

	// assert
	require.NoError(t, err)
	require.NoError(t, observeErr)
	for _, swapped := range observed {
		assert.Contains(t, []int{0, 2}, swapped)
	}
}

func Test_CommandHandler_Handle_Accept_AfterDelistIsNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := givenProposedSwapInStore(t, ctx)
	_, err := delistbook.NewCommandHandler(s.store).Handle(ctx, delistbook.BuildCommand(s.book2, s.userB, time.Now()))
	require.NoError(t, err)

	// act
	_, err = decideswap.NewCommandHandler(s.store).Handle(ctx, decideswap.BuildCommand(s.swapID, s.userA, core.SwapDecisionAccept, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, core.BookStatusAvailable, core.FoldBook(s.book1.String(), historyOf(t, ctx, s.store, s)).Status)
}

func Test_CommandHandler_Handle_CompetingSwapsForTheSameBook_OnlyOneIsAccepted(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := givenProposedSwapInStore(t, ctx)
	userC, book3, secondSwapID := uuid.New(), uuid.New(), uuid.New()
	givenListedBook(t, ctx, s.store, book3, userC)
	_, err := proposeswap.NewCommandHandler(s.store).Handle(ctx, proposeswap.BuildCommand(secondSwapID, book3, s.book1, userC, time.Now()))
	require.NoError(t, err)
	handler := decideswap.NewCommandHandler(s.store)

	// act
	_, firstErr := handler.Handle(ctx, decideswap.BuildCommand(s.swapID, s.userA, core.SwapDecisionAccept, time.Now()))
	_, secondErr := handler.Handle(ctx, decideswap.BuildCommand(secondSwapID, s.userA, core.SwapDecisionAccept, time.Now()))

	// assert
	require.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, core.ErrBookUnavailable)
}
