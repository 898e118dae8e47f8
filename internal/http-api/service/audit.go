package service

import (
	"context"
	"encoding/json"
	"time"

	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/repository"

	"gorm.io/datatypes"
)

// auditEntry describes one log row. Metadata, when set, is stored as JSON.
type auditEntry struct {
	Action   models.ActionType
	Target   models.TargetType
	TargetID int64
	Details  string
	Metadata map[string]any
}

// writeLog appends an audit record through tx so it commits or rolls back with the mutation.
func writeLog(ctx context.Context, tx *repository.Store, authorID *int64, at time.Time, e auditEntry) error {
	entry := &models.Log{
		ActionType: e.Action,
		TargetType: e.Target,
		Details:    e.Details,
		CreatedBy:  authorID,
		CreatedAt:  at,
	}
	if e.TargetID != 0 {
		id := e.TargetID
		entry.TargetID = &id
	}
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return err
		}
		entry.Metadata = datatypes.JSON(raw)
	}
	return tx.Logs.Create(ctx, entry)
}

// change records an old/new pair for the log metadata.
func change(from, to any) map[string]any {
	return map[string]any{"from": from, "to": to}
}
