package dto

import "eventteam/internal/http-api/service"

// Pagination accompanies every paginated listing.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

func NewPagination(p service.Page) Pagination {
	return Pagination{
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   p.Total,
		Pages:   p.Pages(),
		HasNext: p.HasNext(),
		HasPrev: p.HasPrev(),
	}
}

type PaginatedPointsResponse struct {
	Points     []PointResponse `json:"points"`
	Pagination Pagination      `json:"pagination"`
}

type PaginatedLogsResponse struct {
	Logs       []LogResponse `json:"logs"`
	Pagination Pagination    `json:"pagination"`
}
