package bookcatalog

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/eventstore"
	"github.com/bookswap-hub/bookswap/features/command/changebookstatus"
	"github.com/bookswap-hub/bookswap/features/command/delistbook"
	"github.com/bookswap-hub/bookswap/features/command/listbook"
	"github.com/bookswap-hub/bookswap/features/command/revisebook"
	"github.com/bookswap-hub/bookswap/features/query/bookdetails"
	"github.com/bookswap-hub/bookswap/features/query/bookshelf"
	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell"
	"github.com/bookswap-hub/bookswap/shared/shell/blobstore"
)

// Handlers are the slices the catalog runs on. They are usually observable wrappers.
type Handlers struct {
	ListBook         shell.CoreCommandHandler[listbook.Command]
	ReviseBook       shell.CoreCommandHandler[revisebook.Command]
	ChangeBookStatus shell.CoreCommandHandler[changebookstatus.Command]
	DelistBook       shell.CoreCommandHandler[delistbook.Command]
	Bookshelf        shell.CoreQueryHandler[bookshelf.Query, bookshelf.Bookshelf]
	BookDetails      shell.CoreQueryHandler[bookdetails.Query, bookdetails.BookDetails]
}

// NewHandlers creates the unwrapped handlers for the event store.
func NewHandlers(eventStore shell.EventStore, retryOptions ...shell.RetryOption) Handlers {
	return Handlers{
		ListBook:         listbook.NewCommandHandler(eventStore, listbook.WithRetryOptions(retryOptions...)),
		ReviseBook:       revisebook.NewCommandHandler(eventStore, revisebook.WithRetryOptions(retryOptions...)),
		ChangeBookStatus: changebookstatus.NewCommandHandler(eventStore, changebookstatus.WithRetryOptions(retryOptions...)),
		DelistBook:       delistbook.NewCommandHandler(eventStore, delistbook.WithRetryOptions(retryOptions...)),
		Bookshelf:        bookshelf.NewQueryHandler(eventStore),
		BookDetails:      bookdetails.NewQueryHandler(eventStore),
	}
}

// Cover is an uploaded cover image. Its media type follows from the filename extension.
type Cover struct {
	Filename string
	Content  io.Reader
}

// BookInput are the fields of a new book.
type BookInput struct {
	Title       string
	Author      string
	Description string
}

// BookPatch are the fields to change. Empty fields are kept as they are.
type BookPatch struct {
	Title       string
	Author      string
	Description string
	Status      core.BookStatus
}

// Catalog implements the BookCatalog.
type Catalog struct {
	handlers Handlers
	covers   blobstore.Store
	now      func() time.Time
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

// NewCatalog creates a new Catalog.
func NewCatalog(handlers Handlers, covers blobstore.Store, opts ...Option) *Catalog {
	c := &Catalog{
		handlers: handlers,
		covers:   covers,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Create lists a new available book owned by ownerID. The cover is optional.
func (c *Catalog) Create(ctx context.Context, ownerID uuid.UUID, input BookInput, cover *Cover) (bookdetails.BookDetails, error) {
	coverKey, err := c.storeCover(ctx, cover)
	if err != nil {
		return bookdetails.BookDetails{}, err
	}

	bookID := uuid.New()
	command := listbook.BuildCommand(bookID, ownerID, input.Title, input.Author, input.Description, coverKey, c.now())

	if _, err = c.handlers.ListBook.Handle(ctx, command); err != nil {
		c.discardCover(ctx, coverKey)
		return bookdetails.BookDetails{}, err
	}

	return c.Get(ctx, bookID)
}

// Update merges the non-empty fields of the patch into the book and replaces the cover if one is given.
// Only the owner may update. The cover the appended BookCoverReplaced names as previous is deleted.
func (c *Catalog) Update(
	ctx context.Context,
	bookID uuid.UUID,
	requesterID uuid.UUID,
	patch BookPatch,
	cover *Cover,
) (bookdetails.BookDetails, error) {

	coverKey, err := c.storeCover(ctx, cover)
	if err != nil {
		return bookdetails.BookDetails{}, err
	}

	command := revisebook.BuildCommand(
		bookID,
		requesterID,
		patch.Title,
		patch.Author,
		patch.Description,
		coverKey,
		patch.Status,
		c.now(),
	)

	result, err := c.handlers.ReviseBook.Handle(ctx, command)
	if err != nil {
		c.discardCover(ctx, coverKey)
		return bookdetails.BookDetails{}, err
	}

	for _, event := range result.Appended {
		if replaced, ok := event.(core.BookCoverReplaced); ok {
			c.discardCover(ctx, replaced.PreviousCoverKey)
		}
	}

	return c.Get(ctx, bookID)
}

// SetStatus changes the availability of the book. Only the owner may change it.
func (c *Catalog) SetStatus(
	ctx context.Context,
	bookID uuid.UUID,
	requesterID uuid.UUID,
	status core.BookStatus,
) (bookdetails.BookDetails, error) {

	command := changebookstatus.BuildCommand(bookID, requesterID, status, c.now())
	if _, err := c.handlers.ChangeBookStatus.Handle(ctx, command); err != nil {
		return bookdetails.BookDetails{}, err
	}

	return c.Get(ctx, bookID)
}

// Delete delists the book and deletes the cover the appended BookDelisted names. Only the owner may delete.
func (c *Catalog) Delete(ctx context.Context, bookID uuid.UUID, requesterID uuid.UUID) error {
	result, err := c.handlers.DelistBook.Handle(ctx, delistbook.BuildCommand(bookID, requesterID, c.now()))
	if err != nil {
		return err
	}

	for _, event := range result.Appended {
		if delisted, ok := event.(core.BookDelisted); ok {
			c.discardCover(ctx, delisted.CoverKey)
		}
	}

	return nil
}

// Get returns the current details of a book, core.ErrNotFound if it is not listed.
func (c *Catalog) Get(ctx context.Context, bookID uuid.UUID) (bookdetails.BookDetails, error) {
	return c.handlers.BookDetails.Handle(ctx, bookdetails.BuildQuery(bookID))
}

// ListAvailableExcluding returns the available books of all other users.
func (c *Catalog) ListAvailableExcluding(ctx context.Context, userID uuid.UUID) (bookshelf.Bookshelf, error) {
	return c.list(ctx, bookshelf.BuildQuery(bookshelf.ScopeAvailableExcluding, userID))
}

// ListOwnedBy returns all books of the user.
func (c *Catalog) ListOwnedBy(ctx context.Context, userID uuid.UUID) (bookshelf.Bookshelf, error) {
	return c.list(ctx, bookshelf.BuildQuery(bookshelf.ScopeOwnedBy, userID))
}

// ListAll returns every listed book.
func (c *Catalog) ListAll(ctx context.Context) (bookshelf.Bookshelf, error) {
	return c.list(ctx, bookshelf.BuildQuery(bookshelf.ScopeAll, uuid.Nil))
}

func (c *Catalog) list(ctx context.Context, query bookshelf.Query) (bookshelf.Bookshelf, error) {
	return c.handlers.Bookshelf.Handle(eventstore.WithEventualConsistency(ctx), query)
}

func (c *Catalog) storeCover(ctx context.Context, cover *Cover) (core.BlobKeyString, error) {
	if cover == nil || cover.Content == nil {
		return "", nil
	}

	contentType, err := blobstore.ContentType(cover.Filename)
	if err != nil {
		return "", errors.Join(core.ErrValidation, err)
	}

	key, err := c.covers.Put(ctx, cover.Filename, contentType, cover.Content)
	if err != nil {
		return "", errors.Join(core.ErrStorage, err)
	}

	return key, nil
}

func (c *Catalog) discardCover(ctx context.Context, key core.BlobKeyString) {
	if key == "" {
		return
	}

	c.covers.Delete(context.WithoutCancel(ctx), key)
}
