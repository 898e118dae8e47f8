package service

import (
	"context"
	"strings"

	"eventteam/internal/clock"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/repository"
	"eventteam/internal/period"
)

const DefaultLogsPerPage = 50

// LogQuery filters the audit listing. Unknown action or target types are ignored.
type LogQuery struct {
	ActionType string
	TargetType string
	StartDate  string
	EndDate    string
	Page       int
	PerPage    int
}

// LogView is an audit record with its author's username.
type LogView struct {
	models.Log
	CreatorName string
}

type LogService interface {
	ListLogs(ctx context.Context, q LogQuery) ([]LogView, Page, error)
}

type logService struct {
	store *repository.Store
	clock clock.Clock
}

func NewLogService(store *repository.Store, clk clock.Clock) LogService {
	return &logService{store: store, clock: clk}
}

// ListLogs returns audit records newest first. The end date includes its whole day.
func (s *logService) ListLogs(ctx context.Context, q LogQuery) ([]LogView, Page, error) {
	page, perPage := normalizePage(q.Page, q.PerPage, DefaultLogsPerPage)

	var filter repository.LogFilter
	if a := models.ActionType(q.ActionType); a.Valid() {
		filter.ActionType = a
	}
	if t := models.TargetType(q.TargetType); t.Valid() {
		filter.TargetType = t
	}
	loc := s.clock.Location()
	if strings.TrimSpace(q.StartDate) != "" {
		start, err := period.ParseDate(q.StartDate, loc)
		if err != nil {
			return nil, Page{}, validationError("%s", err.Error())
		}
		filter.Start = &start
	}
	if strings.TrimSpace(q.EndDate) != "" {
		day, err := period.ParseDate(q.EndDate, loc)
		if err != nil {
			return nil, Page{}, validationError("%s", err.Error())
		}
		end := period.EndOfDay(day)
		filter.End = &end
	}

	logs, total, err := s.store.Logs.List(ctx, filter, page, perPage)
	if err != nil {
		return nil, Page{}, internalError(err)
	}

	ids := make([]int64, 0, len(logs))
	for _, l := range logs {
		if l.CreatedBy != nil {
			ids = append(ids, *l.CreatedBy)
		}
	}
	names, err := s.store.Users.UsernamesByID(ctx, ids)
	if err != nil {
		return nil, Page{}, internalError(err)
	}

	views := make([]LogView, len(logs))
	for i, l := range logs {
		views[i] = LogView{Log: l}
		if l.CreatedBy != nil {
			views[i].CreatorName = names[*l.CreatedBy]
		}
	}
	return views, Page{Page: page, PerPage: perPage, Total: total}, nil
}
