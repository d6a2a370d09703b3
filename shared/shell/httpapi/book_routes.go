package httpapi

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/features/bookcatalog"
	"github.com/bookswap-hub/bookswap/features/query/bookshelf"
	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell/blobstore"
)

const (
	scopeAvailable = "available"
	scopeMine      = "mine"
	scopeAll       = "all"

	coverFormField = "cover"
)

type createBookRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=300"`
	Author      string `json:"author" form:"author" binding:"max=300"`
	Description string `json:"description" form:"description" binding:"max=5000"`
}

type updateBookRequest struct {
	Title       string `json:"title" form:"title" binding:"max=300"`
	Author      string `json:"author" form:"author" binding:"max=300"`
	Description string `json:"description" form:"description" binding:"max=5000"`
	Status      string `json:"status" form:"status" binding:"omitempty,bookstatus"`
}

type bookStatusRequest struct {
	Status string `json:"status" binding:"required,bookstatus"`
}

func (s *Server) listBooks(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)

	var (
		shelf bookshelf.Bookshelf
		err   error
	)

	switch scope := c.DefaultQuery("scope", scopeAvailable); scope {
	case scopeAvailable:
		shelf, err = s.deps.Catalog.ListAvailableExcluding(ctx, userID)
	case scopeMine:
		shelf, err = s.deps.Catalog.ListOwnedBy(ctx, userID)
	case scopeAll:
		shelf, err = s.deps.Catalog.ListAll(ctx)
	default:
		err = fmt.Errorf("unknown scope %q: %w", scope, core.ErrValidation)
	}

	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookListResponse(shelf))
}

func (s *Server) createBook(c *gin.Context) {
	var request createBookRequest
	if err := c.ShouldBind(&request); err != nil {
		s.abortWithError(c, bindingError(err))
		return
	}

	cover, closeCover, err := uploadedCover(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	defer closeCover()

	book, err := s.deps.Catalog.Create(c.Request.Context(), currentUser(c), bookcatalog.BookInput{
		Title:       request.Title,
		Author:      request.Author,
		Description: request.Description,
	}, cover)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(book))
}

func (s *Server) getBook(c *gin.Context) {
	bookID, ok := s.pathID(c)
	if !ok {
		return
	}

	book, err := s.deps.Catalog.Get(c.Request.Context(), bookID)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

func (s *Server) updateBook(c *gin.Context) {
	bookID, ok := s.pathID(c)
	if !ok {
		return
	}

	var request updateBookRequest
	if err := c.ShouldBind(&request); err != nil {
		s.abortWithError(c, bindingError(err))
		return
	}

	cover, closeCover, err := uploadedCover(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	defer closeCover()

	book, err := s.deps.Catalog.Update(c.Request.Context(), bookID, currentUser(c), bookcatalog.BookPatch{
		Title:       request.Title,
		Author:      request.Author,
		Description: request.Description,
		Status:      core.BookStatus(request.Status),
	}, cover)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

func (s *Server) setBookStatus(c *gin.Context) {
	bookID, ok := s.pathID(c)
	if !ok {
		return
	}

	var request bookStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, bindingError(err))
		return
	}

	status, err := core.ParseBookStatus(request.Status)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	book, err := s.deps.Catalog.SetStatus(c.Request.Context(), bookID, currentUser(c), status)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(book))
}

func (s *Server) deleteBook(c *gin.Context) {
	bookID, ok := s.pathID(c)
	if !ok {
		return
	}

	if err := s.deps.Catalog.Delete(c.Request.Context(), bookID, currentUser(c)); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) downloadCover(c *gin.Context) {
	key := c.Param("key")
	if err := blobstore.ValidateKey(key); err != nil {
		s.abortWithError(c, err)
		return
	}

	contentType, err := blobstore.ContentType(key)
	if err != nil {
		s.abortWithError(c, blobstore.ErrInvalidBlobKey)
		return
	}

	content, err := s.deps.Covers.Open(c.Request.Context(), key)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	defer func() { _ = content.Close() }()

	c.Header("Cache-Control", "public, max-age=86400")
	c.Header("X-Content-Type-Options", "nosniff")
	c.DataFromReader(http.StatusOK, -1, contentType, content, nil)
}

// pathID parses the :id path parameter. A malformed id cannot name any resource.
func (s *Server) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.abortWithError(c, fmt.Errorf("id %q: %w", c.Param("id"), core.ErrNotFound))
		return uuid.Nil, false
	}

	return id, true
}

// uploadedCover returns the optional "cover" file of a multipart request.
// The returned close function is always safe to call.
func uploadedCover(c *gin.Context) (*bookcatalog.Cover, func(), error) {
	noop := func() {}

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, noop, nil
	}

	header, err := c.FormFile(coverFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, errors.Join(core.ErrValidation, err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, errors.Join(core.ErrValidation, err)
	}

	return coverOf(header, file), func() { _ = file.Close() }, nil
}

func coverOf(header *multipart.FileHeader, file multipart.File) *bookcatalog.Cover {
	return &bookcatalog.Cover{
		Filename: header.Filename,
		Content:  file,
	}
}
