package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"eventteam/internal/clock"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/repository"
	"eventteam/internal/middleware/auth"
)

// CodeUserInactive marks a create that collided with a deactivated account.
const CodeUserInactive = "USER_INACTIVE"

// UserAdminConfig holds the account policy knobs.
type UserAdminConfig struct {
	SuperAdminUsername string
	DefaultPassword    string
}

// ForceReplaceInput names the inactive account to replace and the new account's settings.
type ForceReplaceInput struct {
	Username string
	Password string
	Role     string
}

type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, actor Actor, username, role string) (*models.User, error)
	UpdateUser(ctx context.Context, actor Actor, userID int64, username, role string) (*models.User, error)
	ResetPassword(ctx context.Context, actor Actor, userID int64) error
	DeactivateUser(ctx context.Context, actor Actor, userID int64) error
	ReactivateUser(ctx context.Context, actor Actor, userID int64, password string) (*models.User, error)
	ForceReplaceUser(ctx context.Context, actor Actor, in ForceReplaceInput) (*models.User, error)
	EnsureSuperAdmin(ctx context.Context) (*models.User, bool, error)
	SetPassword(ctx context.Context, username, password string) error
}

type userService struct {
	store    *repository.Store
	sessions repository.SessionRepository
	clock    clock.Clock
	cfg      UserAdminConfig
	logger   *slog.Logger
}

func NewUserService(
	store *repository.Store,
	sessions repository.SessionRepository,
	clk clock.Clock,
	cfg UserAdminConfig,
	logger *slog.Logger,
) UserService {
	return &userService{store: store, sessions: sessions, clock: clk, cfg: cfg, logger: logger}
}

func (s *userService) isSuperAdmin(username string) bool {
	return username == s.cfg.SuperAdminUsername
}

// guardTarget applies the protected-account rules shared by every admin mutation.
func (s *userService) guardTarget(actor Actor, target *models.User, verb string) error {
	if s.isSuperAdmin(target.Username) {
		return forbidden("the primary account %s cannot be %s", s.cfg.SuperAdminUsername, verb)
	}
	if target.Role == models.RoleLeader && !s.isSuperAdmin(actor.Username) {
		return forbidden("only %s can manage leader accounts", s.cfg.SuperAdminUsername)
	}
	return nil
}

func (s *userService) parseRole(actor Actor, raw string) (models.Role, error) {
	role := models.Role(strings.TrimSpace(raw))
	if !role.Valid() {
		return "", validationError("role must be one of leader, co_leader, visor")
	}
	if role == models.RoleLeader && !s.isSuperAdmin(actor.Username) {
		return "", forbidden("only %s can assign the leader role", s.cfg.SuperAdminUsername)
	}
	return role, nil
}

func (s *userService) findActive(ctx context.Context, tx *repository.Store, userID int64) (*models.User, error) {
	user, err := tx.Users.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("user not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, notFound("user not found")
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users.ListActive(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, actor Actor, username, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(role) == "" {
		return nil, validationError("username and role are required")
	}
	r, err := s.parseRole(actor, role)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(s.cfg.DefaultPassword)
	if err != nil {
		return nil, internalError(err)
	}
	now := s.clock.Now()
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         r,
		FirstLogin:   true,
		IsActive:     true,
		CreatedBy:    &actor.UserID,
		CreatedAt:    now,
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Users.FindByUsername(ctx, username)
		if err == nil {
			return usernameTaken(existing)
		}
		if !repository.IsNotFound(err) {
			return err
		}

		if err := tx.Users.Create(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return conflict("username already exists")
			}
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, now, auditEntry{
			Action:   models.ActionCreate,
			Target:   models.TargetUser,
			TargetID: user.ID,
			Details:  fmt.Sprintf("Created user %s with role %s", user.Username, user.Role),
		})
	})
	if err != nil {
		return nil, internalError(err)
	}
	return user, nil
}

// usernameTaken reports a collision, flagging inactive holders so the client
// can offer reactivation or force-replace.
func usernameTaken(existing *models.User) error {
	if existing.IsActive {
		return conflict("username already exists")
	}
	e := newError(ErrConflict, "user exists but is inactive")
	e.Extra = map[string]any{"code": CodeUserInactive, "user_id": existing.ID}
	return e
}

func (s *userService) UpdateUser(ctx context.Context, actor Actor, userID int64, username, role string) (*models.User, error) {
	var user *models.User
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		user, err = s.findActive(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := s.guardTarget(actor, user, "modified"); err != nil {
			return err
		}

		username = strings.TrimSpace(username)
		if username == "" || strings.TrimSpace(role) == "" {
			return validationError("username and role are required")
		}
		newRole, err := s.parseRole(actor, role)
		if err != nil {
			return err
		}

		if other, err := tx.Users.FindByUsername(ctx, username); err == nil && other.ID != user.ID {
			return conflict("another user already has this username")
		} else if err != nil && !repository.IsNotFound(err) {
			return err
		}

		oldUsername, oldRole := user.Username, user.Role
		user.Username = username
		user.Role = newRole
		if err := tx.Users.Update(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return conflict("another user already has this username")
			}
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, s.clock.Now(), auditEntry{
			Action:   models.ActionUpdate,
			Target:   models.TargetUser,
			TargetID: user.ID,
			Details:  fmt.Sprintf("Updated user: %s -> %s, role: %s -> %s", oldUsername, username, oldRole, newRole),
			Metadata: map[string]any{
				"username": change(oldUsername, username),
				"role":     change(oldRole, newRole),
			},
		})
	})
	if err != nil {
		return nil, internalError(err)
	}
	return user, nil
}

func (s *userService) ResetPassword(ctx context.Context, actor Actor, userID int64) error {
	hash, err := auth.HashPassword(s.cfg.DefaultPassword)
	if err != nil {
		return internalError(err)
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := s.findActive(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := s.guardTarget(actor, user, "reset"); err != nil {
			return err
		}

		user.PasswordHash = hash
		user.FirstLogin = true
		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, s.clock.Now(), auditEntry{
			Action:   models.ActionPasswordChange,
			Target:   models.TargetUser,
			TargetID: user.ID,
			Details:  fmt.Sprintf("Password reset for user: %s", user.Username),
		})
	})
	return internalError(err)
}

// DeactivateUser soft-deletes the account and ends its sessions.
func (s *userService) DeactivateUser(ctx context.Context, actor Actor, userID int64) error {
	if userID == actor.UserID {
		return forbidden("you cannot deactivate your own account")
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := s.findActive(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := s.guardTarget(actor, user, "deactivated"); err != nil {
			return err
		}

		user.IsActive = false
		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, s.clock.Now(), auditEntry{
			Action:   models.ActionDelete,
			Target:   models.TargetUser,
			TargetID: user.ID,
			Details:  fmt.Sprintf("Deactivated user: %s", user.Username),
		})
	})
	if err != nil {
		return internalError(err)
	}

	// a leftover session is also rejected on its next request
	if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
		s.logger.Warn("failed to end sessions of deactivated user", "user_id", userID, "error", err)
	}
	return nil
}

// ReactivateUser restores an inactive account, optionally with a new password
// that the user must change on first login.
func (s *userService) ReactivateUser(ctx context.Context, actor Actor, userID int64, password string) (*models.User, error) {
	var hash string
	if password != "" {
		if len(password) < 3 {
			return nil, validationError("password must be at least 3 characters long")
		}
		var err error
		if hash, err = auth.HashPassword(password); err != nil {
			return nil, internalError(err)
		}
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		user, err = tx.Users.FindByID(ctx, userID)
		if err != nil {
			if repository.IsNotFound(err) {
				return notFound("user not found")
			}
			return err
		}
		if user.IsActive {
			return conflict("user is already active")
		}
		if user.Role == models.RoleLeader && !s.isSuperAdmin(actor.Username) {
			return forbidden("only %s can manage leader accounts", s.cfg.SuperAdminUsername)
		}

		user.IsActive = true
		if hash != "" {
			user.PasswordHash = hash
			user.FirstLogin = true
		}
		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, s.clock.Now(), auditEntry{
			Action:   models.ActionReactivate,
			Target:   models.TargetUser,
			TargetID: user.ID,
			Details:  fmt.Sprintf("Reactivated user: %s", user.Username),
			Metadata: map[string]any{"password_reset": hash != ""},
		})
	})
	if err != nil {
		return nil, internalError(err)
	}
	return user, nil
}

// ForceReplaceUser hard-deletes an inactive account together with every member,
// point and log it authored, then creates a fresh account with the same username.
// The purge commits on its own first; if it fails nothing is removed and no
// account is created.
func (s *userService) ForceReplaceUser(ctx context.Context, actor Actor, in ForceReplaceInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, validationError("username and password are required")
	}
	if len(in.Password) < 3 {
		return nil, validationError("password must be at least 3 characters long")
	}
	if strings.TrimSpace(in.Role) == "" {
		in.Role = string(models.RoleVisor)
	}
	role, err := s.parseRole(actor, in.Role)
	if err != nil {
		return nil, err
	}

	old, err := s.store.Users.FindByUsername(ctx, username)
	if err != nil && !repository.IsNotFound(err) {
		return nil, internalError(err)
	}
	if err != nil || old.IsActive {
		return nil, notFound("no inactive user with this username")
	}
	if old.Role == models.RoleLeader && !s.isSuperAdmin(actor.Username) {
		return nil, forbidden("only %s can manage leader accounts", s.cfg.SuperAdminUsername)
	}

	// phase 1: purge
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		return purgeUser(ctx, tx, old.ID)
	})
	if err != nil {
		s.logger.Error("force replace purge failed", "user_id", old.ID, "error", err)
		return nil, &Error{Kind: ErrInternal, Message: "failed to remove the previous account", cause: err}
	}
	if err := s.sessions.DeleteByUser(ctx, old.ID); err != nil {
		s.logger.Warn("failed to end sessions of replaced user", "user_id", old.ID, "error", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, internalError(err)
	}
	now := s.clock.Now()
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		FirstLogin:   true,
		IsActive:     true,
		CreatedBy:    &actor.UserID,
		CreatedAt:    now,
	}

	// phase 2: recreate
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return conflict("username already exists")
			}
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, now, auditEntry{
			Action:   models.ActionCreate,
			Target:   models.TargetUser,
			TargetID: user.ID,
			Details:  fmt.Sprintf("Replaced inactive user %s with a new account", username),
			Metadata: map[string]any{"replaced_user_id": old.ID},
		})
	})
	if err != nil {
		return nil, internalError(err)
	}
	return user, nil
}

// purgeUser removes every row authored by userID and then the account itself.
func purgeUser(ctx context.Context, tx *repository.Store, userID int64) error {
	memberIDs, err := tx.Members.IDsByCreator(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := tx.Points.DeleteOwnedBy(ctx, userID, memberIDs); err != nil {
		return fmt.Errorf("delete points: %w", err)
	}
	if _, err := tx.Members.DeleteByCreator(ctx, userID); err != nil {
		return fmt.Errorf("delete members: %w", err)
	}
	if _, err := tx.Logs.DeleteByCreator(ctx, userID); err != nil {
		return fmt.Errorf("delete logs: %w", err)
	}
	if err := tx.Users.ClearCreator(ctx, userID); err != nil {
		return fmt.Errorf("detach created users: %w", err)
	}
	if err := tx.Users.HardDelete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// EnsureSuperAdmin creates the primary leader account when it is missing.
// It reports whether an account was created.
func (s *userService) EnsureSuperAdmin(ctx context.Context) (*models.User, bool, error) {
	existing, err := s.store.Users.FindByUsername(ctx, s.cfg.SuperAdminUsername)
	if err == nil {
		return existing, false, nil
	}
	if !repository.IsNotFound(err) {
		return nil, false, internalError(err)
	}

	hash, err := auth.HashPassword(s.cfg.DefaultPassword)
	if err != nil {
		return nil, false, internalError(err)
	}
	now := s.clock.Now()
	user := &models.User{
		Username:     s.cfg.SuperAdminUsername,
		PasswordHash: hash,
		Role:         models.RoleLeader,
		FirstLogin:   true,
		IsActive:     true,
		CreatedAt:    now,
	}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return writeLog(ctx, tx, &user.ID, now, auditEntry{
			Action:   models.ActionCreate,
			Target:   models.TargetUser,
			TargetID: user.ID,
			Details:  fmt.Sprintf("Created primary account %s", user.Username),
		})
	})
	if err != nil {
		return nil, false, internalError(err)
	}
	return user, true, nil
}

// SetPassword is the operator path used by the CLI. It bypasses role checks
// and records the change as authored by the account itself.
func (s *userService) SetPassword(ctx context.Context, username, password string) error {
	if len(password) < 3 {
		return validationError("password must be at least 3 characters long")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return internalError(err)
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := tx.Users.FindByUsername(ctx, username)
		if err != nil {
			if repository.IsNotFound(err) {
				return notFound("user not found")
			}
			return err
		}
		user.PasswordHash = hash
		user.FirstLogin = password == s.cfg.DefaultPassword
		if err := tx.Users.Update(ctx, user); err != nil {
			return err
		}
		return writeLog(ctx, tx, &user.ID, s.clock.Now(), auditEntry{
			Action:   models.ActionPasswordChange,
			Target:   models.TargetUser,
			TargetID: user.ID,
			Details:  fmt.Sprintf("Password set from the command line for user: %s", user.Username),
		})
	})
	return internalError(err)
}
