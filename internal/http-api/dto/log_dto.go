package dto

import (
	"encoding/json"
	"time"

	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/service"
)

type LogResponse struct {
	ID          int64             `json:"id"`
	ActionType  models.ActionType `json:"action_type"`
	TargetType  models.TargetType `json:"target_type"`
	TargetID    *int64            `json:"target_id"`
	Details     string            `json:"details"`
	Metadata    json.RawMessage   `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	CreatedBy   *int64            `json:"created_by"`
	CreatorName *string           `json:"creator_name"`
}

func FromLogs(logs []service.LogView) []LogResponse {
	out := make([]LogResponse, len(logs))
	for i, l := range logs {
		out[i] = LogResponse{
			ID:          l.ID,
			ActionType:  l.ActionType,
			TargetType:  l.TargetType,
			TargetID:    l.TargetID,
			Details:     l.Details,
			CreatedAt:   l.CreatedAt,
			CreatedBy:   l.CreatedBy,
			CreatorName: optional(l.CreatorName),
		}
		if len(l.Metadata) > 0 {
			out[i].Metadata = json.RawMessage(l.Metadata)
		}
	}
	return out
}
