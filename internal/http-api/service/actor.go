package service

import "eventteam/internal/http-api/models"

// Actor is the authenticated user performing an operation.
type Actor struct {
	UserID   int64
	Username string
	Role     models.Role
}

// ActorFromUser builds the actor for a loaded account.
func ActorFromUser(u *models.User) Actor {
	return Actor{UserID: u.ID, Username: u.Username, Role: u.Role}
}
