package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookswap-hub/bookswap/features/accounts"
)

type registerRequest struct {
	FullName    string `json:"fullName" binding:"required,max=200"`
	Email       string `json:"email" binding:"required,email,max=254"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,max=40"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

type updateProfileRequest struct {
	FullName    string `json:"fullName" binding:"omitempty,max=200"`
	Email       string `json:"email" binding:"omitempty,email,max=254"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,max=40"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var request registerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, bindingError(err))
		return
	}

	profile, err := s.deps.Accounts.Register(c.Request.Context(), accounts.Registration{
		FullName:    request.FullName,
		Email:       request.Email,
		PhoneNumber: request.PhoneNumber,
		Password:    request.Password,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProfileResponse(profile))
}

func (s *Server) login(c *gin.Context) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, bindingError(err))
		return
	}

	session, err := s.deps.Accounts.Login(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      toProfileResponse(session.Profile),
	})
}

func (s *Server) profile(c *gin.Context) {
	profile, err := s.deps.Accounts.Profile(c.Request.Context(), currentUser(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (s *Server) updateProfile(c *gin.Context) {
	var request updateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		s.abortWithError(c, bindingError(err))
		return
	}

	profile, err := s.deps.Accounts.UpdateProfile(c.Request.Context(), currentUser(c), accounts.ProfileChanges{
		FullName:    request.FullName,
		Email:       request.Email,
		PhoneNumber: request.PhoneNumber,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(profile))
}
