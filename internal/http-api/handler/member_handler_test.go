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

func TestListMembers_DefaultsToAll(t *testing.T) {
	mockMemberService := new(MockMemberService)
	handler := NewMemberHandler(mockMemberService)
	router := actorRouter(visor, handler.RegisterRoutes)

	stats := []service.MemberStats{
		{Member: models.Member{ID: 4, Name: "Bob", CreatedAt: testEpoch}, PositiveCount: 1, TotalPoints: 1},
	}
	mockMemberService.On("ListMembers", mock.Anything, service.PeriodQuery{Period: "all"}).Return(stats, nil)

	req, _ := http.NewRequest(http.MethodGet, "/members", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Members []dto.MemberStatsResponse `json:"members"`
		Period  string                    `json:"period"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "all", resp.Period)
	require.Len(t, resp.Members, 1)
	assert.Equal(t, "Bob", resp.Members[0].Name)
	assert.Equal(t, 1, resp.Members[0].PositiveCount)
	assert.Equal(t, 0, resp.Members[0].NegativeCount)
	assert.Equal(t, 1, resp.Members[0].TotalPoints)
	mockMemberService.AssertExpectations(t)
}

func TestListMembers_CustomPeriodValidation(t *testing.T) {
	mockMemberService := new(MockMemberService)
	handler := NewMemberHandler(mockMemberService)
	router := actorRouter(visor, handler.RegisterRoutes)

	q := service.PeriodQuery{Period: "custom", StartDate: "2024-13-01", EndDate: "2024-03-02"}
	mockMemberService.On("ListMembers", mock.Anything, q).
		Return(nil, &service.Error{Kind: service.ErrValidation, Message: "invalid start_date"})

	req, _ := http.NewRequest(http.MethodGet, "/members?period=custom&start_date=2024-13-01&end_date=2024-03-02", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockMemberService.AssertExpectations(t)
}

func TestGetMember_DefaultsWeekAndNegative(t *testing.T) {
	mockMemberService := new(MockMemberService)
	handler := NewMemberHandler(mockMemberService)
	router := actorRouter(visor, handler.RegisterRoutes)

	detail := &service.MemberDetail{
		Member:              models.Member{ID: 4, Name: "Bob", IsActive: true},
		TotalNegative:       1,
		CurrentWeekNegative: 1,
		Performance:         "declined",
		FilteredNotes: []service.PointView{{
			Point:       models.Point{ID: 9, MemberID: 4, PointType: models.PointNegative, Category: models.CategoryMissedMeeting, CreatedAt: testEpoch},
			MemberName:  "Bob",
			CreatorName: "Gon",
		}},
		Period:   "week",
		NoteType: "negative",
	}
	q := service.DetailQuery{PeriodQuery: service.PeriodQuery{Period: "week"}, NoteType: "negative"}
	mockMemberService.On("GetMemberDetail", mock.Anything, int64(4), q).Return(detail, nil)

	req, _ := http.NewRequest(http.MethodGet, "/members/4", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.MemberDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "declined", resp.Statistics.Performance)
	assert.Equal(t, 1, resp.Statistics.CurrentWeekNegative)
	require.Len(t, resp.FilteredNotes, 1)
	require.NotNil(t, resp.FilteredNotes[0].CreatedBy)
	assert.Equal(t, "Gon", *resp.FilteredNotes[0].CreatedBy)
	assert.Equal(t, "negative", resp.NoteType)
	mockMemberService.AssertExpectations(t)
}

func TestGetMember_NotFound(t *testing.T) {
	mockMemberService := new(MockMemberService)
	handler := NewMemberHandler(mockMemberService)
	router := actorRouter(visor, handler.RegisterRoutes)

	mockMemberService.On("GetMemberDetail", mock.Anything, int64(99), mock.Anything).
		Return(nil, &service.Error{Kind: service.ErrNotFound, Message: "member not found"})

	req, _ := http.NewRequest(http.MethodGet, "/members/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"member not found"}`, w.Body.String())
}

func TestGetMember_InvalidID(t *testing.T) {
	mockMemberService := new(MockMemberService)
	handler := NewMemberHandler(mockMemberService)
	router := actorRouter(visor, handler.RegisterRoutes)

	req, _ := http.NewRequest(http.MethodGet, "/members/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockMemberService.AssertNotCalled(t, "GetMemberDetail", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMember_Success(t *testing.T) {
	mockMemberService := new(MockMemberService)
	handler := NewMemberHandler(mockMemberService)
	router := actorRouter(coLeader, handler.RegisterRoutes)

	member := &models.Member{ID: 5, Name: "Bob", IsActive: true, CreatedAt: testEpoch}
	mockMemberService.On("CreateMember", mock.Anything, coLeader, "Bob").Return(member, nil)

	body, _ := json.Marshal(dto.MemberRequest{Name: "Bob"})
	req, _ := http.NewRequest(http.MethodPost, "/members", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Bob"`)
	mockMemberService.AssertExpectations(t)
}

func TestCreateMember_VisorForbidden(t *testing.T) {
	mockMemberService := new(MockMemberService)
	handler := NewMemberHandler(mockMemberService)
	router := actorRouter(visor, handler.RegisterRoutes)

	body, _ := json.Marshal(dto.MemberRequest{Name: "Bob"})
	req, _ := http.NewRequest(http.MethodPost, "/members", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockMemberService.AssertNotCalled(t, "CreateMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateMember_Conflict(t *testing.T) {
	mockMemberService := new(MockMemberService)
	handler := NewMemberHandler(mockMemberService)
	router := actorRouter(leader, handler.RegisterRoutes)

	mockMemberService.On("CreateMember", mock.Anything, leader, "Bob").
		Return(nil, &service.Error{Kind: service.ErrConflict, Message: "a member with this name already exists"})

	body, _ := json.Marshal(dto.MemberRequest{Name: "Bob"})
	req, _ := http.NewRequest(http.MethodPost, "/members", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockMemberService.AssertExpectations(t)
}

func TestDeleteMember_LeaderOnly(t *testing.T) {
	mockMemberService := new(MockMemberService)
	handler := NewMemberHandler(mockMemberService)

	req, _ := http.NewRequest(http.MethodDelete, "/members/4", nil)
	w := httptest.NewRecorder()
	actorRouter(coLeader, handler.RegisterRoutes).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	mockMemberService.On("DeleteMember", mock.Anything, leader, int64(4)).Return(nil)

	req, _ = http.NewRequest(http.MethodDelete, "/members/4", nil)
	w = httptest.NewRecorder()
	actorRouter(leader, handler.RegisterRoutes).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	mockMemberService.AssertExpectations(t)
}
