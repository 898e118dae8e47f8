package dto

import (
	"time"

	"eventteam/internal/http-api/service"
)

type AddPointRequest struct {
	MemberID    int64  `json:"member_id"`
	PointType   string `json:"point_type"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type UpdatePointRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

type BulkDeletePointsRequest struct {
	PointIDs []int64 `json:"point_ids"`
}

type PointResponse struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"member_id"`
	MemberName  *string   `json:"member_name"`
	PointType   string    `json:"point_type"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   int64     `json:"created_by"`
	CreatorName *string   `json:"creator_name"`
}

func FromPoint(p *service.PointView) PointResponse {
	return PointResponse{
		ID:          p.ID,
		MemberID:    p.MemberID,
		MemberName:  optional(p.MemberName),
		PointType:   string(p.PointType),
		Category:    p.Category,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		CreatedBy:   p.CreatedBy,
		CreatorName: optional(p.CreatorName),
	}
}

func FromPoints(points []service.PointView) []PointResponse {
	out := make([]PointResponse, len(points))
	for i := range points {
		out[i] = FromPoint(&points[i])
	}
	return out
}
