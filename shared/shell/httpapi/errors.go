package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookswap-hub/bookswap/shared/core"
	"github.com/bookswap-hub/bookswap/shared/shell/blobstore"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings is checked in order, the first match wins.
var errorMappings = []errorMapping{
	{core.ErrValidation, http.StatusBadRequest, "validation_error"},
	{core.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
	{core.ErrForbidden, http.StatusForbidden, "forbidden"},
	{core.ErrNotFound, http.StatusNotFound, "not_found"},
	{blobstore.ErrBlobNotFound, http.StatusNotFound, "not_found"},
	{blobstore.ErrInvalidBlobKey, http.StatusNotFound, "not_found"},
	{core.ErrSelfSwap, http.StatusBadRequest, "self_swap"},
	{core.ErrNotOwner, http.StatusForbidden, "not_owner"},
	{core.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{core.ErrBookUnavailable, http.StatusConflict, "book_unavailable"},
	{core.ErrEmailTaken, http.StatusConflict, "email_taken"},
	{core.ErrStorage, http.StatusInternalServerError, "storage_error"},
}

// statusFor maps an error to the HTTP status and the error code of the response body.
func statusFor(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}

	return http.StatusInternalServerError, "internal_error"
}

// abortWithError writes the error response. Messages of server errors are not exposed.
func (s *Server) abortWithError(c *gin.Context, err error) {
	status, code := statusFor(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
		s.logError(c, logMsgRequestFailed, err)
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: code, Message: message})
}
