package handler

import (
	"net/http"

	"eventteam/internal/http-api/dto"
	"eventteam/internal/http-api/middleware"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/roles", h.Roles)

	users := rg.Group("/users", middleware.RequireRole(models.RoleLeader))
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.POST("/force-create", h.ForceCreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
		users.POST("/:id/reactivate", h.ReactivateUser)
		users.POST("/:id/reset-password", h.ResetPassword)
	}
}

func (h *UserHandler) Roles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"roles": models.Roles})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.FromUsers(users)})
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and role are required")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), a, req.Username, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    dto.FromUser(user),
	})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and role are required")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), a, id, req.Username, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    dto.FromUser(user),
	})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), a, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deactivated successfully"})
}

// POST /users/:id/reactivate, body optional: {"password": "..."}
func (h *UserHandler) ReactivateUser(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.ReactivateUserRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}
	}

	user, err := h.userService.ReactivateUser(c.Request.Context(), a, id, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User reactivated successfully",
		"user":    dto.FromUser(user),
	})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), a, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset to default"})
}

// ForceCreateUser replaces an inactive account of the same username. Irreversible.
func (h *UserHandler) ForceCreateUser(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req dto.ForceCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	user, err := h.userService.ForceReplaceUser(c.Request.Context(), a, service.ForceReplaceInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User replaced successfully",
		"user":    dto.FromUser(user),
	})
}
