package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventteam/internal/clock"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/repository"
	"eventteam/internal/middleware/auth"

	"github.com/google/uuid"
)

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	User       *models.User
	Token      string
	FirstLogin bool
	ExpiresAt  time.Time
}

type AuthService interface {
	Login(ctx context.Context, priorToken, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, actor Actor, token string) error
	ChangePassword(ctx context.Context, actor Actor, current, next, confirm string) error
	Authenticate(ctx context.Context, token string) (Actor, error)
	CurrentUser(ctx context.Context, actor Actor) (*models.User, error)
	DiscardSession(ctx context.Context, token string) error
	PruneSessions(ctx context.Context) (int64, error)
}

type authService struct {
	store           *repository.Store
	sessions        repository.SessionRepository
	clock           clock.Clock
	sessionTTL      time.Duration
	defaultPassword string
	logger          *slog.Logger
}

func NewAuthService(
	store *repository.Store,
	sessions repository.SessionRepository,
	clk clock.Clock,
	sessionTTL time.Duration,
	defaultPassword string,
	logger *slog.Logger,
) AuthService {
	return &authService{
		store:           store,
		sessions:        sessions,
		clock:           clk,
		sessionTTL:      sessionTTL,
		defaultPassword: defaultPassword,
		logger:          logger,
	}
}

// Login verifies the credentials of an active account and opens a new session.
// Any session the client already carried is destroyed first.
func (s *authService) Login(ctx context.Context, priorToken, username, password string) (*LoginResult, error) {
	if priorToken != "" {
		if err := s.sessions.Delete(ctx, priorToken); err != nil {
			s.logger.Warn("failed to clear prior session", "error", err)
		}
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, validationError("username and password are required")
	}

	user, err := s.store.Users.FindActiveByUsername(ctx, username)
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, internalError(err)
		}
		// unknown user costs the same as a wrong password
		auth.BurnVerify(password)
		return nil, newError(ErrInvalidCredentials, "invalid username or password")
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, newError(ErrInvalidCredentials, "invalid username or password")
	}

	now := s.clock.Now()
	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, internalError(fmt.Errorf("create session: %w", err))
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		return writeLog(ctx, tx, &user.ID, now, auditEntry{
			Action:   models.ActionLogin,
			Target:   models.TargetUser,
			TargetID: user.ID,
			Details:  fmt.Sprintf("User logged in: %s", user.Username),
		})
	})
	if err != nil {
		_ = s.sessions.Delete(ctx, session.Token)
		return nil, internalError(err)
	}

	return &LoginResult{
		User:       user,
		Token:      session.Token,
		FirstLogin: user.FirstLogin,
		ExpiresAt:  session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, actor Actor, token string) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		return writeLog(ctx, tx, &actor.UserID, s.clock.Now(), auditEntry{
			Action:   models.ActionLogout,
			Target:   models.TargetUser,
			TargetID: actor.UserID,
			Details:  fmt.Sprintf("User logged out: %s", actor.Username),
		})
	})
	if err != nil {
		return internalError(err)
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return internalError(err)
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, actor Actor, current, next, confirm string) error {
	if current == "" || next == "" || confirm == "" {
		return validationError("all password fields are required")
	}
	if next != confirm {
		return validationError("new password and confirmation do not match")
	}
	if len(next) < 3 {
		return validationError("password must be at least 3 characters long")
	}

	user, err := s.store.Users.FindByID(ctx, actor.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return newError(ErrUnauthenticated, "session expired, please log in again")
		}
		return internalError(err)
	}
	if err := auth.VerifyPassword(user.PasswordHash, current); err != nil {
		return newError(ErrInvalidCredentials, "current password is incorrect")
	}
	if next == s.defaultPassword {
		return validationError("the initial password cannot be reused")
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return internalError(err)
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		user.PasswordHash = hash
		user.FirstLogin = false
		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}
		return writeLog(ctx, tx, &user.ID, s.clock.Now(), auditEntry{
			Action:   models.ActionPasswordChange,
			Target:   models.TargetUser,
			TargetID: user.ID,
			Details:  fmt.Sprintf("Password changed for user: %s", user.Username),
		})
	})
	return internalError(err)
}

// Authenticate resolves a session token to the acting user. A session whose
// account was deactivated or removed is destroyed.
func (s *authService) Authenticate(ctx context.Context, token string) (Actor, error) {
	unauthenticated := newError(ErrUnauthenticated, "login required")
	if token == "" {
		return Actor{}, unauthenticated
	}

	session, err := s.sessions.Find(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return Actor{}, unauthenticated
		}
		return Actor{}, internalError(err)
	}
	if session.Expired(s.clock.Now()) {
		_ = s.sessions.Delete(ctx, token)
		return Actor{}, unauthenticated
	}

	user, err := s.store.Users.FindByID(ctx, session.UserID)
	if err != nil && !repository.IsNotFound(err) {
		return Actor{}, internalError(err)
	}
	if err != nil || !user.IsActive {
		if delErr := s.sessions.Delete(ctx, token); delErr != nil {
			s.logger.Warn("failed to drop stale session", "user_id", session.UserID, "error", delErr)
		}
		return Actor{}, newError(ErrUnauthenticated, "session expired, please log in again")
	}

	// role and name come from the account so admin changes apply immediately
	return ActorFromUser(user), nil
}

func (s *authService) CurrentUser(ctx context.Context, actor Actor) (*models.User, error) {
	user, err := s.store.Users.FindByID(ctx, actor.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("user not found")
		}
		return nil, internalError(err)
	}
	return user, nil
}

// DiscardSession drops a session that was opened but never reached the client.
func (s *authService) DiscardSession(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return internalError(err)
	}
	return nil
}

func (s *authService) PruneSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, internalError(err)
	}
	return n, nil
}
