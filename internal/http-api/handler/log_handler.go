package handler

import (
	"net/http"

	"eventteam/internal/http-api/dto"
	"eventteam/internal/http-api/middleware"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type LogHandler struct {
	logService service.LogService
}

func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

func (h *LogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/logs", middleware.RequireRole(models.RoleLeader), h.ListLogs)
}

// GET /logs?action_type=&target_type=&start_date=&end_date=&page=&per_page=
func (h *LogHandler) ListLogs(c *gin.Context) {
	logs, page, err := h.logService.ListLogs(c.Request.Context(), service.LogQuery{
		ActionType: c.Query("action_type"),
		TargetType: c.Query("target_type"),
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		Page:       queryInt(c, "page"),
		PerPage:    queryInt(c, "per_page"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedLogsResponse{
		Logs:       dto.FromLogs(logs),
		Pagination: dto.NewPagination(page),
	})
}
