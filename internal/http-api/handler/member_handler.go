package handler

import (
	"net/http"

	"eventteam/internal/http-api/dto"
	"eventteam/internal/http-api/middleware"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

func (h *MemberHandler) RegisterRoutes(rg *gin.RouterGroup) {
	members := rg.Group("/members")
	{
		// Reports, any logged-in role
		members.GET("", h.ListMembers)
		members.GET("/:id", h.GetMember)

		// Mutations
		members.POST("", middleware.RequireRole(models.RoleLeader, models.RoleCoLeader), h.CreateMember)
		members.PUT("/:id", middleware.RequireRole(models.RoleLeader, models.RoleCoLeader), h.UpdateMember)
		members.DELETE("/:id", middleware.RequireRole(models.RoleLeader), h.DeleteMember)
	}
}

func periodQuery(c *gin.Context, def string) service.PeriodQuery {
	return service.PeriodQuery{
		Period:    c.DefaultQuery("period", def),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
}

// GET /members?period=&start_date=&end_date=
func (h *MemberHandler) ListMembers(c *gin.Context) {
	q := periodQuery(c, "all")
	stats, err := h.memberService.ListMembers(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.FromMemberStats(stats),
		"period":  q.Period,
	})
}

// GET /members/:id?period=&note_type=&start_date=&end_date=
func (h *MemberHandler) GetMember(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.memberService.GetMemberDetail(c.Request.Context(), id, service.DetailQuery{
		PeriodQuery: periodQuery(c, "week"),
		NoteType:    c.DefaultQuery("note_type", string(models.PointNegative)),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMemberDetail(detail))
}

func (h *MemberHandler) CreateMember(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Member name is required")
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), a, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member added successfully",
		"member":  dto.FromMember(member),
	})
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Member name is required")
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), a, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member updated successfully",
		"member":  dto.FromMember(member),
	})
}

func (h *MemberHandler) DeleteMember(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.memberService.DeleteMember(c.Request.Context(), a, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}
