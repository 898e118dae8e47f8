package dto

import (
	"time"

	"eventteam/internal/http-api/models"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UserResponse is the public view of an account. The password hash never leaves the server.
type UserResponse struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Role        models.Role `json:"role"`
	FirstLogin  bool        `json:"first_login"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	CreatorName *string     `json:"creator_name,omitempty"`
}

func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		FirstLogin:  u.FirstLogin,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		CreatorName: u.CreatorName(),
	}
}

func FromUsers(users []models.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = FromUser(&users[i])
	}
	return out
}

type LoginResponse struct {
	Message    string       `json:"message"`
	User       UserResponse `json:"user"`
	FirstLogin bool         `json:"first_login"`
}
