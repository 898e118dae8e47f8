package handler

import (
	"fmt"
	"net/http"

	"eventteam/internal/http-api/dto"
	"eventteam/internal/http-api/middleware"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type PointHandler struct {
	pointService service.PointService
}

func NewPointHandler(pointService service.PointService) *PointHandler {
	return &PointHandler{pointService: pointService}
}

func (h *PointHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.Categories)

	editors := middleware.RequireRole(models.RoleLeader, models.RoleCoLeader)
	points := rg.Group("/points")
	{
		points.GET("", h.ListPoints)
		points.POST("", editors, h.AddPoint)
		points.POST("/bulk-delete", editors, h.BulkDeletePoints)
		points.PUT("/:id", editors, h.UpdatePoint)
		points.DELETE("/:id", editors, h.DeletePoint)
	}
}

func (h *PointHandler) Categories(c *gin.Context) {
	cats := h.pointService.Categories()
	c.JSON(http.StatusOK, dto.CategoriesResponse{
		PositiveCategories: cats.Positive,
		NegativeCategories: cats.Negative,
	})
}

// GET /points?member_id=&point_type=&page=&per_page=
func (h *PointHandler) ListPoints(c *gin.Context) {
	points, page, err := h.pointService.ListPoints(c.Request.Context(), service.PointListQuery{
		MemberID:  int64(queryInt(c, "member_id")),
		PointType: c.Query("point_type"),
		Page:      queryInt(c, "page"),
		PerPage:   queryInt(c, "per_page"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedPointsResponse{
		Points:     dto.FromPoints(points),
		Pagination: dto.NewPagination(page),
	})
}

func (h *PointHandler) AddPoint(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req dto.AddPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Member, point type and category are required")
		return
	}

	point, err := h.pointService.AddPoint(c.Request.Context(), a, service.AddPointInput{
		MemberID:    req.MemberID,
		PointType:   req.PointType,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Point added successfully",
		"point":   dto.FromPoint(point),
	})
}

func (h *PointHandler) UpdatePoint(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Category is required")
		return
	}

	point, err := h.pointService.UpdatePoint(c.Request.Context(), a, id, req.Category, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Point updated successfully",
		"point":   dto.FromPoint(point),
	})
}

func (h *PointHandler) DeletePoint(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.pointService.DeletePoint(c.Request.Context(), a, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Point deleted successfully"})
}

func (h *PointHandler) BulkDeletePoints(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req dto.BulkDeletePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "point_ids must be a list of ids")
		return
	}

	deleted, err := h.pointService.BulkDeletePoints(c.Request.Context(), a, req.PointIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       fmt.Sprintf("%d points deleted successfully", deleted),
		"deleted_count": deleted,
	})
}
