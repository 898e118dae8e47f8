package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventteam/internal/http-api/dto"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoles(t *testing.T) {
	handler := NewUserHandler(new(MockUserService))
	router := actorRouter(visor, handler.RegisterRoutes)

	req, _ := http.NewRequest(http.MethodGet, "/roles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"roles":{"LEADER":"leader","CO_LEADER":"co_leader","VISOR":"visor"}}`, w.Body.String())
}

func TestUsers_LeaderOnly(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)

	for _, a := range []service.Actor{coLeader, visor} {
		req, _ := http.NewRequest(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()
		actorRouter(a, handler.RegisterRoutes).ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, a.Role)
	}
	mockUserService.AssertNotCalled(t, "ListUsers", mock.Anything)
}

func TestListUsers(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)
	router := actorRouter(leader, handler.RegisterRoutes)

	users := []models.User{
		{ID: 2, Username: "killua", Role: models.RoleCoLeader, IsActive: true, Creator: &models.User{ID: 1, Username: "Gon"}},
		{ID: 1, Username: "Gon", Role: models.RoleLeader, IsActive: true},
	}
	mockUserService.On("ListUsers", mock.Anything).Return(users, nil)

	req, _ := http.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []dto.UserResponse `json:"users"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "Gon", *resp.Users[0].CreatorName)
	assert.Nil(t, resp.Users[1].CreatorName)
	mockUserService.AssertExpectations(t)
}

func TestCreateUser_InactiveUsernameCarriesCode(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)
	router := actorRouter(leader, handler.RegisterRoutes)

	mockUserService.On("CreateUser", mock.Anything, leader, "alice", "visor").Return(nil, &service.Error{
		Kind:    service.ErrConflict,
		Message: "an inactive account with this username exists",
		Extra:   map[string]any{"code": service.CodeUserInactive, "user_id": int64(6)},
	})

	body, _ := json.Marshal(dto.CreateUserRequest{Username: "alice", Role: "visor"})
	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"an inactive account with this username exists","code":"USER_INACTIVE","user_id":6}`, w.Body.String())
	mockUserService.AssertExpectations(t)
}

func TestCreateUser_LeaderRoleForbidden(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)
	alice := service.Actor{UserID: 8, Username: "alice", Role: models.RoleLeader}
	router := actorRouter(alice, handler.RegisterRoutes)

	mockUserService.On("CreateUser", mock.Anything, alice, "bob", "leader").
		Return(nil, &service.Error{Kind: service.ErrForbidden, Message: "only the super admin can create leaders"})

	body, _ := json.Marshal(dto.CreateUserRequest{Username: "bob", Role: "leader"})
	req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUserService.AssertExpectations(t)
}

func TestReactivateUser_EmptyBody(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)
	router := actorRouter(leader, handler.RegisterRoutes)

	user := &models.User{ID: 6, Username: "alice", Role: models.RoleVisor, IsActive: true}
	mockUserService.On("ReactivateUser", mock.Anything, leader, int64(6), "").Return(user, nil)

	req, _ := http.NewRequest(http.MethodPost, "/users/6/reactivate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUserService.AssertExpectations(t)
}

func TestReactivateUser_WithPassword(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)
	router := actorRouter(leader, handler.RegisterRoutes)

	user := &models.User{ID: 6, Username: "alice", Role: models.RoleVisor, IsActive: true, FirstLogin: true}
	mockUserService.On("ReactivateUser", mock.Anything, leader, int64(6), "fresh-pass").Return(user, nil)

	body, _ := json.Marshal(dto.ReactivateUserRequest{Password: "fresh-pass"})
	req, _ := http.NewRequest(http.MethodPost, "/users/6/reactivate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUserService.AssertExpectations(t)
}

func TestDeleteUser_SelfForbidden(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)
	router := actorRouter(leader, handler.RegisterRoutes)

	mockUserService.On("DeactivateUser", mock.Anything, leader, int64(1)).
		Return(&service.Error{Kind: service.ErrForbidden, Message: "you cannot deactivate your own account"})

	req, _ := http.NewRequest(http.MethodDelete, "/users/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUserService.AssertExpectations(t)
}

func TestResetPassword(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)
	router := actorRouter(leader, handler.RegisterRoutes)

	mockUserService.On("ResetPassword", mock.Anything, leader, int64(6)).Return(nil)

	req, _ := http.NewRequest(http.MethodPost, "/users/6/reset-password", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUserService.AssertExpectations(t)
}

func TestForceCreateUser_PurgeFailure(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)
	router := actorRouter(leader, handler.RegisterRoutes)

	in := service.ForceReplaceInput{Username: "alice", Password: "secret", Role: "visor"}
	mockUserService.On("ForceReplaceUser", mock.Anything, leader, in).
		Return(nil, &service.Error{Kind: service.ErrInternal, Message: "failed to remove the previous account"})

	body, _ := json.Marshal(dto.ForceCreateUserRequest{Username: "alice", Password: "secret", Role: "visor"})
	req, _ := http.NewRequest(http.MethodPost, "/users/force-create", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to remove the previous account"}`, w.Body.String())
	mockUserService.AssertExpectations(t)
}

func TestForceCreateUser_Created(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewUserHandler(mockUserService)
	router := actorRouter(leader, handler.RegisterRoutes)

	in := service.ForceReplaceInput{Username: "alice", Password: "secret"}
	user := &models.User{ID: 12, Username: "alice", Role: models.RoleVisor, IsActive: true, FirstLogin: true}
	mockUserService.On("ForceReplaceUser", mock.Anything, leader, in).Return(user, nil)

	body, _ := json.Marshal(dto.ForceCreateUserRequest{Username: "alice", Password: "secret"})
	req, _ := http.NewRequest(http.MethodPost, "/users/force-create", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":12`)
	mockUserService.AssertExpectations(t)
}
