package handler

import (
	"context"
	"time"

	"eventteam/internal/http-api/middleware"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/service"
	"eventteam/internal/middleware/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, priorToken, username, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, priorToken, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, actor service.Actor, token string) error {
	args := m.Called(ctx, actor, token)
	return args.Error(0)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, actor service.Actor, current, next, confirm string) error {
	args := m.Called(ctx, actor, current, next, confirm)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (service.Actor, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(service.Actor), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, actor service.Actor) (*models.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) DiscardSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) PruneSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockMemberService mocks the MemberService interface
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) ListMembers(ctx context.Context, q service.PeriodQuery) ([]service.MemberStats, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.MemberStats), args.Error(1)
}

func (m *MockMemberService) GetMemberDetail(ctx context.Context, memberID int64, q service.DetailQuery) (*service.MemberDetail, error) {
	args := m.Called(ctx, memberID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MemberDetail), args.Error(1)
}

func (m *MockMemberService) CreateMember(ctx context.Context, actor service.Actor, name string) (*models.Member, error) {
	args := m.Called(ctx, actor, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberService) UpdateMember(ctx context.Context, actor service.Actor, memberID int64, name string) (*models.Member, error) {
	args := m.Called(ctx, actor, memberID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberService) DeleteMember(ctx context.Context, actor service.Actor, memberID int64) error {
	args := m.Called(ctx, actor, memberID)
	return args.Error(0)
}

// MockPointService mocks the PointService interface
type MockPointService struct {
	mock.Mock
}

func (m *MockPointService) AddPoint(ctx context.Context, actor service.Actor, in service.AddPointInput) (*service.PointView, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PointView), args.Error(1)
}

func (m *MockPointService) UpdatePoint(ctx context.Context, actor service.Actor, id int64, category, description string) (*service.PointView, error) {
	args := m.Called(ctx, actor, id, category, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PointView), args.Error(1)
}

func (m *MockPointService) DeletePoint(ctx context.Context, actor service.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockPointService) BulkDeletePoints(ctx context.Context, actor service.Actor, ids []int64) (int, error) {
	args := m.Called(ctx, actor, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockPointService) ListPoints(ctx context.Context, q service.PointListQuery) ([]service.PointView, service.Page, error) {
	args := m.Called(ctx, q)
	var points []service.PointView
	if args.Get(0) != nil {
		points = args.Get(0).([]service.PointView)
	}
	return points, args.Get(1).(service.Page), args.Error(2)
}

func (m *MockPointService) Categories() service.Categories {
	args := m.Called()
	return args.Get(0).(service.Categories)
}

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, actor service.Actor, username, role string) (*models.User, error) {
	args := m.Called(ctx, actor, username, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, actor service.Actor, userID int64, username, role string) (*models.User, error) {
	args := m.Called(ctx, actor, userID, username, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ResetPassword(ctx context.Context, actor service.Actor, userID int64) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}

func (m *MockUserService) DeactivateUser(ctx context.Context, actor service.Actor, userID int64) error {
	args := m.Called(ctx, actor, userID)
	return args.Error(0)
}

func (m *MockUserService) ReactivateUser(ctx context.Context, actor service.Actor, userID int64, password string) (*models.User, error) {
	args := m.Called(ctx, actor, userID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ForceReplaceUser(ctx context.Context, actor service.Actor, in service.ForceReplaceInput) (*models.User, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) EnsureSuperAdmin(ctx context.Context) (*models.User, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.Bool(1), args.Error(2)
}

func (m *MockUserService) SetPassword(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

// MockLogService mocks the LogService interface
type MockLogService struct {
	mock.Mock
}

func (m *MockLogService) ListLogs(ctx context.Context, q service.LogQuery) ([]service.LogView, service.Page, error) {
	args := m.Called(ctx, q)
	var logs []service.LogView
	if args.Get(0) != nil {
		logs = args.Get(0).([]service.LogView)
	}
	return logs, args.Get(1).(service.Page), args.Error(2)
}

var (
	leader   = service.Actor{UserID: 1, Username: "Gon", Role: models.RoleLeader}
	coLeader = service.Actor{UserID: 2, Username: "killua", Role: models.RoleCoLeader}
	visor    = service.Actor{UserID: 3, Username: "leorio", Role: models.RoleVisor}
)

var testEpoch = time.Date(2024, 3, 15, 14, 30, 0, 0, time.FixedZone("", 3*3600))

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withActor stands in for RequireLogin.
func withActor(a service.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ActorKey, a)
		c.Set(middleware.SessionTokenKey, "session-token")
		c.Set("userID", a.UserID)
		c.Next()
	}
}

// actorRouter mounts routes behind a fixed actor.
func actorRouter(a service.Actor, register func(rg *gin.RouterGroup)) *gin.Engine {
	router := setupRouter()
	register(router.Group("", withActor(a)))
	return router
}

func testCookies() *middleware.SessionCookies {
	return &middleware.SessionCookies{
		Name:   "session",
		Signer: auth.NewCookieSigner("0123456789abcdef0123456789abcdef", time.Hour, nil),
	}
}
