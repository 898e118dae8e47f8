package dto

import (
	"time"

	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/service"
)

type MemberRequest struct {
	Name string `json:"name"`
}

type MemberResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

func FromMember(m *models.Member) MemberResponse {
	return MemberResponse{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt, IsActive: m.IsActive}
}

// MemberStatsResponse is one row of GET /members.
type MemberStatsResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	PositiveCount int       `json:"positive_count"`
	NegativeCount int       `json:"negative_count"`
	TotalPoints   int       `json:"total_points"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromMemberStats(stats []service.MemberStats) []MemberStatsResponse {
	out := make([]MemberStatsResponse, len(stats))
	for i, s := range stats {
		out[i] = MemberStatsResponse{
			ID:            s.Member.ID,
			Name:          s.Member.Name,
			PositiveCount: s.PositiveCount,
			NegativeCount: s.NegativeCount,
			TotalPoints:   s.TotalPoints,
			CreatedAt:     s.Member.CreatedAt,
		}
	}
	return out
}

type MemberStatistics struct {
	TotalPositive          int    `json:"total_positive"`
	TotalNegative          int    `json:"total_negative"`
	FilteredChatActivities int    `json:"filtered_chat_activities"`
	CurrentWeekPositive    int    `json:"current_week_positive"`
	CurrentWeekNegative    int    `json:"current_week_negative"`
	PreviousWeekPositive   int    `json:"previous_week_positive"`
	PreviousWeekNegative   int    `json:"previous_week_negative"`
	Performance            string `json:"performance"`
}

// NoteResponse is a point as listed in the member detail; CreatedBy is the author's username.
type NoteResponse struct {
	ID          int64     `json:"id"`
	PointType   string    `json:"point_type"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   *string   `json:"created_by"`
}

type MemberDetailResponse struct {
	Member        MemberResponse   `json:"member"`
	Statistics    MemberStatistics `json:"statistics"`
	FilteredNotes []NoteResponse   `json:"filtered_notes"`
	NoteType      string           `json:"note_type"`
	Period        string           `json:"period"`
}

func FromMemberDetail(d *service.MemberDetail) MemberDetailResponse {
	notes := make([]NoteResponse, len(d.FilteredNotes))
	for i, p := range d.FilteredNotes {
		notes[i] = NoteResponse{
			ID:          p.ID,
			PointType:   string(p.PointType),
			Category:    p.Category,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			CreatedBy:   optional(p.CreatorName),
		}
	}
	return MemberDetailResponse{
		Member: FromMember(&d.Member),
		Statistics: MemberStatistics{
			TotalPositive:          d.TotalPositive,
			TotalNegative:          d.TotalNegative,
			FilteredChatActivities: d.FilteredChatActivity,
			CurrentWeekPositive:    d.CurrentWeekPositive,
			CurrentWeekNegative:    d.CurrentWeekNegative,
			PreviousWeekPositive:   d.PreviousWeekPositive,
			PreviousWeekNegative:   d.PreviousWeekNegative,
			Performance:            d.Performance,
		},
		FilteredNotes: notes,
		NoteType:      d.NoteType,
		Period:        d.Period,
	}
}

type CategoriesResponse struct {
	PositiveCategories map[string]string `json:"positive_categories"`
	NegativeCategories map[string]string `json:"negative_categories"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
