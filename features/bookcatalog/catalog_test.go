package bookcatalog_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswap-hub/bookswap/eventstore/memengine"
	"github.com/bookswap-hub/bookswap/features/bookcatalog"
	"github.com/bookswap-hub/bookswap/features/command/delistbook"
	"github.com/bookswap-hub/bookswap/features/command/revisebook"
	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
	"github.com/bookswap-hub/bookswap/shared/shell/blobstore"
)

type coverStoreSpy struct {
	mu      sync.Mutex
	stored  []core.BlobKeyString
	deleted []core.BlobKeyString
}

func (s *coverStoreSpy) Put(_ context.Context, filename string, _ string, content io.Reader) (core.BlobKeyString, error) {
	if _, err := io.Copy(io.Discard, content); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := blobstore.NewKey(filename)
	if err != nil {
		return "", err
	}
	s.stored = append(s.stored, key)

	return key, nil
}

func (s *coverStoreSpy) Open(context.Context, core.BlobKeyString) (io.ReadCloser, error) {
	return nil, blobstore.ErrBlobNotFound
}

func (s *coverStoreSpy) Delete(_ context.Context, key core.BlobKeyString) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleted = append(s.deleted, key)
}

func givenCatalog(t *testing.T) (*bookcatalog.Catalog, *coverStoreSpy) {
	t.Helper()

	covers := &coverStoreSpy{}
	fakeClock := time.Unix(0, 0).UTC()
	catalog := bookcatalog.NewCatalog(
		bookcatalog.NewHandlers(memengine.NewEventStore()),
		covers,
		bookcatalog.WithClock(func() time.Time {
			fakeClock = fakeClock.Add(time.Minute)
			return fakeClock
		}),
	)

	return catalog, covers
}

// commandHandlerWithHook runs before once, right ahead of the wrapped handler.
type commandHandlerWithHook[C shell.Command] struct {
	next   shell.CoreCommandHandler[C]
	before func()
}

func (h *commandHandlerWithHook[C]) Handle(ctx context.Context, command C) (shell.HandlerResult, error) {
	if h.before != nil {
		before := h.before
		h.before = nil
		before()
	}

	return h.next.Handle(ctx, command)
}

// givenRacingCatalogs returns two catalogs on one event store and one cover store.
func givenRacingCatalogs(t *testing.T) (bookcatalog.Handlers, *bookcatalog.Catalog, *coverStoreSpy) {
	t.Helper()

	store := memengine.NewEventStore()
	covers := &coverStoreSpy{}

	return bookcatalog.NewHandlers(store), bookcatalog.NewCatalog(bookcatalog.NewHandlers(store), covers), covers
}

func givenCover(filename string) *bookcatalog.Cover {
	return &bookcatalog.Cover{Filename: filename, Content: strings.NewReader("jpeg bytes")}
}

func Test_Catalog_Create_StoresTheCoverAndListsTheBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, covers := givenCatalog(t)
	ownerID := uuid.New()

	// act
	book, err := catalog.Create(ctx, ownerID, bookcatalog.BookInput{Title: " Dune ", Author: "Herbert"}, givenCover("dune.JPG"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
	assert.Equal(t, core.BookStatusAvailable, book.Status)
	assert.Equal(t, ownerID.String(), book.OwnerID)
	require.Len(t, covers.stored, 1)
	assert.Equal(t, covers.stored[0], book.CoverKey)
	assert.True(t, strings.HasSuffix(book.CoverKey, ".jpg"))
}

func Test_Catalog_Create_WithoutTitle_FailsAndDiscardsTheCover(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, covers := givenCatalog(t)

	// act
	_, err := catalog.Create(ctx, uuid.New(), bookcatalog.BookInput{Author: "Herbert"}, givenCover("dune.jpg"))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, covers.stored, covers.deleted)
}

func Test_Catalog_Create_WithNonImageCover_IsInvalidAndStoresNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, covers := givenCatalog(t)
	ownerID := uuid.New()

	// act
	_, err := catalog.Create(ctx, ownerID, bookcatalog.BookInput{Title: "Dune"}, givenCover("dune.html"))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.ErrorIs(t, err, blobstore.ErrUnsupportedImage)
	assert.Empty(t, covers.stored)
	owned, listErr := catalog.ListOwnedBy(ctx, ownerID)
	require.NoError(t, listErr)
	assert.Zero(t, owned.Count)
}

func Test_Catalog_Update_ReplacesTheCoverAndDeletesThePreviousOne(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, covers := givenCatalog(t)
	ownerID := uuid.New()
	book, err := catalog.Create(ctx, ownerID, bookcatalog.BookInput{Title: "Dune"}, givenCover("old.png"))
	require.NoError(t, err)
	bookID := uuid.MustParse(book.BookID)

	// act
	updated, err := catalog.Update(ctx, bookID, ownerID, bookcatalog.BookPatch{Description: "desert planet"}, givenCover("new.png"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, "desert planet", updated.Description)
	assert.Equal(t, covers.stored[1], updated.CoverKey)
	assert.Equal(t, []core.BlobKeyString{book.CoverKey}, covers.deleted)
	assert.True(t, updated.UpdatedAt.After(book.UpdatedAt))
}

func Test_Catalog_Update_ByAnotherUser_IsForbiddenAndKeepsTheBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, covers := givenCatalog(t)
	ownerID := uuid.New()
	book, err := catalog.Create(ctx, ownerID, bookcatalog.BookInput{Title: "Dune"}, givenCover("old.png"))
	require.NoError(t, err)
	bookID := uuid.MustParse(book.BookID)

	// act
	_, err = catalog.Update(ctx, bookID, uuid.New(), bookcatalog.BookPatch{Title: "Mine now"}, givenCover("new.png"))

	// assert
	assert.ErrorIs(t, err, core.ErrForbidden)
	assert.Equal(t, []core.BlobKeyString{covers.stored[1]}, covers.deleted)
	unchanged, getErr := catalog.Get(ctx, bookID)
	require.NoError(t, getErr)
	assert.Equal(t, "Dune", unchanged.Title)
	assert.Equal(t, book.CoverKey, unchanged.CoverKey)
}

func Test_Catalog_Update_UnknownBook_IsNotFound(t *testing.T) {
	// arrange
	catalog, _ := givenCatalog(t)

	// act
	_, err := catalog.Update(context.Background(), uuid.New(), uuid.New(), bookcatalog.BookPatch{Title: "x"}, nil)

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_Catalog_SetStatus_OnlyTheOwner(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, _ := givenCatalog(t)
	ownerID, otherID := uuid.New(), uuid.New()
	book, err := catalog.Create(ctx, ownerID, bookcatalog.BookInput{Title: "Dune"}, nil)
	require.NoError(t, err)
	bookID := uuid.MustParse(book.BookID)

	// act
	_, forbiddenErr := catalog.SetStatus(ctx, bookID, otherID, core.BookStatusSwapped)
	swapped, err := catalog.SetStatus(ctx, bookID, ownerID, core.BookStatusSwapped)

	// assert
	assert.ErrorIs(t, forbiddenErr, core.ErrForbidden)
	require.NoError(t, err)
	assert.Equal(t, core.BookStatusSwapped, swapped.Status)
	available, listErr := catalog.ListAvailableExcluding(ctx, otherID)
	require.NoError(t, listErr)
	assert.Zero(t, available.Count)
}

func Test_Catalog_Delete_RemovesTheBookAndItsCover(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, covers := givenCatalog(t)
	ownerID := uuid.New()
	kept, err := catalog.Create(ctx, ownerID, bookcatalog.BookInput{Title: "Emma"}, nil)
	require.NoError(t, err)
	deleted, err := catalog.Create(ctx, ownerID, bookcatalog.BookInput{Title: "Dune"}, givenCover("dune.jpg"))
	require.NoError(t, err)
	deletedID := uuid.MustParse(deleted.BookID)

	// act
	forbiddenErr := catalog.Delete(ctx, deletedID, uuid.New())
	err = catalog.Delete(ctx, deletedID, ownerID)

	// assert
	assert.ErrorIs(t, forbiddenErr, core.ErrForbidden)
	require.NoError(t, err)
	assert.Equal(t, []core.BlobKeyString{deleted.CoverKey}, covers.deleted)
	owned, listErr := catalog.ListOwnedBy(ctx, ownerID)
	require.NoError(t, listErr)
	require.Equal(t, 1, owned.Count)
	assert.Equal(t, kept.BookID, owned.Books[0].BookID)
	_, getErr := catalog.Get(ctx, deletedID)
	assert.ErrorIs(t, getErr, core.ErrNotFound)
}

func Test_Catalog_ListAll_IncludesSwappedBooks(t *testing.T) {
	// arrange
	ctx := context.Background()
	catalog, _ := givenCatalog(t)
	ownerID := uuid.New()
	book, err := catalog.Create(ctx, ownerID, bookcatalog.BookInput{Title: "Dune"}, nil)
	require.NoError(t, err)
	_, err = catalog.SetStatus(ctx, uuid.MustParse(book.BookID), ownerID, core.BookStatusSwapped)
	require.NoError(t, err)

	// act
	all, err := catalog.ListAll(ctx)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, all.Count)
}

func Test_Catalog_Delete_DeletesTheCoverReplacedInTheMeantime(t *testing.T) {
	// arrange
	ctx := context.Background()
	handlers, racing, covers := givenRacingCatalogs(t)
	ownerID := uuid.New()
	book, err := racing.Create(ctx, ownerID, bookcatalog.BookInput{Title: "Dune"}, givenCover("a.jpg"))
	require.NoError(t, err)
	bookID := uuid.MustParse(book.BookID)
	handlers.DelistBook = &commandHandlerWithHook[delistbook.Command]{
		next: handlers.DelistBook,
		before: func() {
			_, replaceErr := racing.Update(ctx, bookID, ownerID, bookcatalog.BookPatch{}, givenCover("b.jpg"))
			require.NoError(t, replaceErr)
		},
	}
	catalog := bookcatalog.NewCatalog(handlers, covers)

	// act
	err = catalog.Delete(ctx, bookID, ownerID)

	// assert
	require.NoError(t, err)
	require.Len(t, covers.stored, 2)
	assert.Equal(t, []core.BlobKeyString{covers.stored[0], covers.stored[1]}, covers.deleted)
}

func Test_Catalog_Update_DeletesTheCoverReplacedInTheMeantime(t *testing.T) {
	// arrange
	ctx := context.Background()
	handlers, racing, covers := givenRacingCatalogs(t)
	ownerID := uuid.New()
	book, err := racing.Create(ctx, ownerID, bookcatalog.BookInput{Title: "Dune"}, givenCover("a.jpg"))
	require.NoError(t, err)
	bookID := uuid.MustParse(book.BookID)
	handlers.ReviseBook = &commandHandlerWithHook[revisebook.Command]{
		next: handlers.ReviseBook,
		before: func() {
			_, replaceErr := racing.Update(ctx, bookID, ownerID, bookcatalog.BookPatch{}, givenCover("b.jpg"))
			require.NoError(t, replaceErr)
		},
	}
	catalog := bookcatalog.NewCatalog(handlers, covers)

	// act
	updated, err := catalog.Update(ctx, bookID, ownerID, bookcatalog.BookPatch{}, givenCover("c.jpg"))

	// assert
	require.NoError(t, err)
	require.Len(t, covers.stored, 3)
	coverA, coverC, coverB := covers.stored[0], covers.stored[1], covers.stored[2]
	assert.Equal(t, coverC, updated.CoverKey)
	assert.Equal(t, []core.BlobKeyString{coverA, coverB}, covers.deleted)
}
