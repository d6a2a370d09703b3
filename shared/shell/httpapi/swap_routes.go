package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookswap-hub/bookswap/features/query/swaplist"
	"github.com/bookswap-hub/bookswap/shared/core"
)

type proposeSwapRequest struct {
	BookOfferedID   string `json:"bookOfferedId" binding:"required,uuid"`
	BookRequestedID string `json:"bookRequestedId" binding:"required,uuid"`
}

type decideSwapRequest struct {
	Decision string `json:"decision" binding:"required,swapdecision"`
}

func (s *Server) proposeSwap(c *gin.Context) {
	var request proposeSwapRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, bindingError(err))
		return
	}

	swap, err := s.deps.Negotiation.Propose(
		c.Request.Context(),
		uuid.MustParse(request.BookOfferedID),
		uuid.MustParse(request.BookRequestedID),
		currentUser(c),
	)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSwapResponse(swap))
}

func (s *Server) listReceivedSwaps(c *gin.Context) {
	s.listSwaps(c, s.deps.Negotiation.ListReceived)
}

func (s *Server) listSentSwaps(c *gin.Context) {
	s.listSwaps(c, s.deps.Negotiation.ListSent)
}

func (s *Server) listSwaps(c *gin.Context, list func(ctx context.Context, userID uuid.UUID) (swaplist.SwapList, error)) {
	swaps, err := list(c.Request.Context(), currentUser(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSwapListResponse(swaps))
}

func (s *Server) decideSwap(c *gin.Context) {
	swapID, ok := s.pathID(c)
	if !ok {
		return
	}

	var request decideSwapRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, bindingError(err))
		return
	}

	decision, err := core.ParseSwapDecision(request.Decision)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	swap, err := s.deps.Negotiation.Decide(c.Request.Context(), swapID, currentUser(c), decision)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSwapResponse(swap))
}

func (s *Server) withdrawSwap(c *gin.Context) {
	swapID, ok := s.pathID(c)
	if !ok {
		return
	}

	if err := s.deps.Negotiation.Withdraw(c.Request.Context(), swapID, currentUser(c)); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
