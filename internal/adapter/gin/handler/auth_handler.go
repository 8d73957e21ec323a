package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"article-api/internal/adapter/gin/middleware"
	"article-api/internal/usecase/auth"
	apperrors "article-api/pkg/errors"
)

// MessageLoggedOut is returned by POST /logout
const MessageLoggedOut = "User logged out."

// AuthHandler handles HTTP requests for registration and sessions
type AuthHandler struct {
	uc auth.Service
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(uc auth.Service) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	u, err := h.uc.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, DataResponse{Data: u})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	u, err := h.uc.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: u})
}

// Logout handles POST /logout. The current token, if any, stops working immediately.
func (h *AuthHandler) Logout(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)
	if err := h.uc.Logout(c.Request.Context(), u); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: MessageLoggedOut})
}

// Me handles GET /user
func (h *AuthHandler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperrors.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: auth.NewUser(u)})
}
