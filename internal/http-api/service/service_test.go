package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"eventteam/internal/clock"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/repository"
	"eventteam/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const superAdmin = "Gon"

// env wires every service against one in-memory database.
type env struct {
	db       *gorm.DB
	clock    *clock.Manual
	store    *repository.Store
	sessions repository.SessionRepository

	auth    AuthService
	members MemberService
	points  PointService
	users   UserService
	logs    LogService

	root Actor
}

func newEnv(t testing.TB) *env {
	t.Helper()
	return newEnvWithSessions(t, repository.NewSessionRepository)
}

// newEnvWithSessions is newEnv with a different session backend.
func newEnvWithSessions(t testing.TB, newSessions func(db *gorm.DB) repository.SessionRepository) *env {
	t.Helper()

	clk := testutil.NewClock()
	db := testutil.NewDB(t, clk)
	store := repository.NewStore(db)
	sessions := newSessions(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := &env{
		db:       db,
		clock:    clk,
		store:    store,
		sessions: sessions,
		auth:     NewAuthService(store, sessions, clk, 24*time.Hour, "123", logger),
		members:  NewMemberService(store, clk),
		points:   NewPointService(store, clk),
		users: NewUserService(store, sessions, clk, UserAdminConfig{
			SuperAdminUsername: superAdmin,
			DefaultPassword:    "123",
		}, logger),
		logs: NewLogService(store, clk),
	}

	root, created, err := e.users.EnsureSuperAdmin(context.Background())
	require.NoError(t, err)
	require.True(t, created)
	e.root = ActorFromUser(root)
	return e
}

func (e *env) countLogs(t testing.TB, action models.ActionType) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Log{}).Where("action_type = ?", action).Count(&n).Error)
	return n
}

func (e *env) countSessions(t testing.TB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Session{}).Count(&n).Error)
	return n
}

// createLeader creates a leader through the super admin and returns it as an actor.
func (e *env) createLeader(t testing.TB, username string) Actor {
	t.Helper()
	u, err := e.users.CreateUser(context.Background(), e.root, username, string(models.RoleLeader))
	require.NoError(t, err)
	return ActorFromUser(u)
}

func (e *env) addMember(t testing.TB, actor Actor, name string) *models.Member {
	t.Helper()
	m, err := e.members.CreateMember(context.Background(), actor, name)
	require.NoError(t, err)
	return m
}

func (e *env) addPoint(t testing.TB, actor Actor, memberID int64, pt models.PointType, category string) *PointView {
	t.Helper()
	p, err := e.points.AddPoint(context.Background(), actor, AddPointInput{
		MemberID:  memberID,
		PointType: string(pt),
		Category:  category,
	})
	require.NoError(t, err)
	return p
}
