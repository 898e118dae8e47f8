package handler

import (
	"log/slog"
	"net/http"

	"eventteam/internal/http-api/dto"
	"eventteam/internal/http-api/middleware"
	"eventteam/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	cookies     *middleware.SessionCookies
}

func NewAuthHandler(authService service.AuthService, cookies *middleware.SessionCookies) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// RegisterRoutes mounts the session-only routes; POST /login is mounted by the router
// so it can sit outside the login gate.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", h.Logout)
	rg.POST("/change-password", h.ChangePassword)
	rg.GET("/current-user", h.CurrentUser)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), h.cookies.Token(c), req.Username, req.Password)
	if err != nil {
		h.cookies.Clear(c)
		respondError(c, err)
		return
	}

	if err := h.cookies.Set(c, result.Token); err != nil {
		if discardErr := h.authService.DiscardSession(c.Request.Context(), result.Token); discardErr != nil {
			slog.WarnContext(c.Request.Context(), "failed to discard unsent session", "user_id", result.User.ID, "error", discardErr)
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message:    "Login successful",
		User:       dto.FromUser(result.User),
		FirstLogin: result.FirstLogin,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), a, c.GetString(middleware.SessionTokenKey)); err != nil {
		respondError(c, err)
		return
	}

	h.cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "All fields are required")
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), a, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": dto.FromUser(user)})
}
