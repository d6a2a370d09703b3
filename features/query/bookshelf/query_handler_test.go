package bookshelf_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/eventstore/memengine"
	"github.com/bookswap-hub/bookswap/features/command/changebookstatus"
	"github.com/bookswap-hub/bookswap/features/command/delistbook"
	"github.com/bookswap-hub/bookswap/features/command/listbook"
	"github.com/bookswap-hub/bookswap/features/command/registeruser"
	"github.com/bookswap-hub/bookswap/features/command/reviseprofile"
	"github.com/bookswap-hub/bookswap/features/query/bookshelf"
	"github.com/bookswap-hub/bookswap/shared/core"
)

type testShelf struct {
	store        *memengine.EventStore
	userA, userB uuid.UUID
	book1, book2 uuid.UUID // owned by A
	book3        uuid.UUID // owned by B
}

// givenShelf registers A and B, lists book1 and book2 for A and book3 for B, one hour apart.
func givenShelf(t *testing.T, ctx context.Context) testShelf {
	t.Helper()

	s := testShelf{
		store: memengine.NewEventStore(),
		userA: uuid.New(),
		userB: uuid.New(),
		book1: uuid.New(),
		book2: uuid.New(),
		book3: uuid.New(),
	}
	fakeClock := time.Unix(0, 0).UTC()

	register := registeruser.NewCommandHandler(s.store)
	_, err := register.Handle(ctx, registeruser.BuildCommand(s.userA, "Ada Lovelace", "ada@example.com", "+44 1", "hash", fakeClock))
	require.NoError(t, err)
	_, err = register.Handle(ctx, registeruser.BuildCommand(s.userB, "Alan Turing", "alan@example.com", "+44 2", "hash", fakeClock))
	require.NoError(t, err)

	list := listbook.NewCommandHandler(s.store)
	for i, book := range []struct {
		id, owner uuid.UUID
		title     string
	}{
		{s.book1, s.userA, "Dune"},
		{s.book2, s.userA, "Emma"},
		{s.book3, s.userB, "Ulysses"},
	} {
		_, err = list.Handle(ctx, listbook.BuildCommand(book.id, book.owner, book.title, "", "", "", fakeClock.Add(time.Duration(i+1)*time.Hour)))
		require.NoError(t, err)
	}

	return s
}

func bookIDsOf(shelf bookshelf.Bookshelf) []string {
	ids := make([]string, 0, len(shelf.Books))
	for _, book := range shelf.Books {
		ids = append(ids, book.BookID)
	}

	return ids
}

func Test_QueryHandler_Handle_All_NewestFirstWithOwners(t *testing.T) {
	// arrange
	ctx := eventstore.WithEventualConsistency(context.Background())
	s := givenShelf(t, ctx)

	// act
	result, err := bookshelf.NewQueryHandler(s.store).Handle(ctx, bookshelf.BuildQuery(bookshelf.ScopeAll, uuid.Nil))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, []string{s.book3.String(), s.book2.String(), s.book1.String()}, bookIDsOf(result))
	assert.Equal(t, "Alan Turing", result.Books[0].Owner.FullName)
	assert.Equal(t, "ada@example.com", result.Books[1].Owner.Email)
	assert.NotZero(t, result.GetSequenceNumber())
}

func Test_QueryHandler_Handle_AvailableExcluding_SkipsOwnAndSwappedBooks(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := givenShelf(t, ctx)
	_, err := changebookstatus.NewCommandHandler(s.store).Handle(ctx, changebookstatus.BuildCommand(s.book2, s.userA, core.BookStatusSwapped, time.Now()))
	require.NoError(t, err)
	handler := bookshelf.NewQueryHandler(s.store)

	// act
	forB, errB := handler.Handle(ctx, bookshelf.BuildQuery(bookshelf.ScopeAvailableExcluding, s.userB))
	forA, errA := handler.Handle(ctx, bookshelf.BuildQuery(bookshelf.ScopeAvailableExcluding, s.userA))

	// assert
	require.NoError(t, errB)
	require.NoError(t, errA)
	assert.Equal(t, []string{s.book1.String()}, bookIDsOf(forB))
	assert.Equal(t, []string{s.book3.String()}, bookIDsOf(forA))
	for _, book := range append(forA.Books, forB.Books...) {
		assert.Equal(t, core.BookStatusAvailable, book.Status)
	}
}

func Test_QueryHandler_Handle_OwnedBy_DropsDelistedBooks(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := givenShelf(t, ctx)
	handler := bookshelf.NewQueryHandler(s.store)
	before, err := handler.Handle(ctx, bookshelf.BuildQuery(bookshelf.ScopeOwnedBy, s.userA))
	require.NoError(t, err)
	require.Equal(t, 2, before.Count)

	// act
	_, err = delistbook.NewCommandHandler(s.store).Handle(ctx, delistbook.BuildCommand(s.book1, s.userA, time.Now()))
	require.NoError(t, err)
	after, err := handler.Handle(ctx, bookshelf.BuildQuery(bookshelf.ScopeOwnedBy, s.userA))

	// assert
	require.NoError(t, err)
	assert.Equal(t, []string{s.book2.String()}, bookIDsOf(after))
	assert.Equal(t, "Ada Lovelace", after.Books[0].Owner.FullName)
}

func Test_QueryHandler_Handle_RejectsInvalidQueries(t *testing.T) {
	// arrange
	handler := bookshelf.NewQueryHandler(memengine.NewEventStore())

	for name, query := range map[string]bookshelf.Query{
		"unknown_scope":   bookshelf.BuildQuery("popular", uuid.New()),
		"missing_user_id": bookshelf.BuildQuery(bookshelf.ScopeOwnedBy, uuid.Nil),
	} {
		t.Run(name, func(t *testing.T) {
			// act
			_, err := handler.Handle(context.Background(), query)

			// assert
			assert.ErrorIs(t, err, core.ErrValidation)
		})
	}
}

func Test_QueryHandler_Handle_ShowsTheRevisedOwnerProfile(t *testing.T) {
	// arrange
	ctx := eventstore.WithEventualConsistency(context.Background())
	s := givenShelf(t, ctx)
	_, err := reviseprofile.NewCommandHandler(s.store).Handle(ctx,
		reviseprofile.BuildCommand(s.userB, "Alan M. Turing", "turing@example.com", "", time.Unix(0, 0).Add(5*time.Hour)))
	require.NoError(t, err)

	// act
	result, err := bookshelf.NewQueryHandler(s.store).Handle(ctx, bookshelf.BuildQuery(bookshelf.ScopeOwnedBy, s.userB))

	// assert
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	assert.Equal(t, bookshelf.OwnerInfo{UserID: s.userB.String(), FullName: "Alan M. Turing", Email: "turing@example.com"}, result.Books[0].Owner)
}
