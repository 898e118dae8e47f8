package service

import (
	"context"
	"fmt"
	"strings"

	"eventteam/internal/clock"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/repository"
)

// Paging bounds for point listings.
const (
	DefaultPointsPerPage = 20
	MaxPerPage           = 100
)

// AddPointInput carries the fields of a new point.
type AddPointInput struct {
	MemberID    int64
	PointType   string
	Category    string
	Description string
}

// PointListQuery filters the paginated point listing.
type PointListQuery struct {
	MemberID  int64
	PointType string
	Page      int
	PerPage   int
}

// Page describes one slice of a paginated listing.
type Page struct {
	Page    int
	PerPage int
	Total   int64
}

// Pages returns the number of pages needed for Total.
func (p Page) Pages() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 0
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}

func (p Page) HasNext() bool { return p.Page < p.Pages() }

func (p Page) HasPrev() bool { return p.Page > 1 }

func normalizePage(page, perPage, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = def
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// Categories holds the code to label maps for each point type.
type Categories struct {
	Positive map[string]string
	Negative map[string]string
}

type PointService interface {
	AddPoint(ctx context.Context, actor Actor, in AddPointInput) (*PointView, error)
	UpdatePoint(ctx context.Context, actor Actor, pointID int64, category, description string) (*PointView, error)
	DeletePoint(ctx context.Context, actor Actor, pointID int64) error
	BulkDeletePoints(ctx context.Context, actor Actor, pointIDs []int64) (int, error)
	ListPoints(ctx context.Context, q PointListQuery) ([]PointView, Page, error)
	Categories() Categories
}

type pointService struct {
	store *repository.Store
	clock clock.Clock
}

func NewPointService(store *repository.Store, clk clock.Clock) PointService {
	return &pointService{store: store, clock: clk}
}

func (s *pointService) AddPoint(ctx context.Context, actor Actor, in AddPointInput) (*PointView, error) {
	in.Category = strings.TrimSpace(in.Category)
	if in.MemberID == 0 || in.PointType == "" || in.Category == "" {
		return nil, validationError("member_id, point_type and category are required")
	}
	pointType := models.PointType(in.PointType)
	if !pointType.Valid() {
		return nil, validationError("point_type must be positive or negative")
	}
	if !models.ValidCategory(pointType, in.Category) {
		return nil, validationError("category %s is not valid for %s points", in.Category, pointType)
	}

	point := &models.Point{
		MemberID:    in.MemberID,
		PointType:   pointType,
		Category:    in.Category,
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   actor.UserID,
		CreatedAt:   s.clock.Now(),
		IsActive:    true,
	}

	var member *models.Member
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		member, err = tx.Members.FindActiveByID(ctx, in.MemberID)
		if err != nil {
			if repository.IsNotFound(err) {
				return notFound("member not found")
			}
			return err
		}
		if err := tx.Points.Create(ctx, point); err != nil {
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, point.CreatedAt, auditEntry{
			Action:   models.ActionCreate,
			Target:   models.TargetPoint,
			TargetID: point.ID,
			Details:  fmt.Sprintf("Added %s point to %s: %s", pointType, member.Name, in.Category),
		})
	})
	if err != nil {
		return nil, internalError(err)
	}

	return &PointView{Point: *point, MemberName: member.Name, CreatorName: actor.Username}, nil
}

// UpdatePoint changes category and description. The point type never changes.
func (s *pointService) UpdatePoint(ctx context.Context, actor Actor, pointID int64, category, description string) (*PointView, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, validationError("category is required")
	}

	var point *models.Point
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		point, err = tx.Points.FindActiveByID(ctx, pointID)
		if err != nil {
			if repository.IsNotFound(err) {
				return notFound("point not found")
			}
			return err
		}
		if !models.ValidCategory(point.PointType, category) {
			return validationError("category %s is not valid for %s points", category, point.PointType)
		}

		oldCategory, oldDescription := point.Category, point.Description
		point.Category = category
		point.Description = strings.TrimSpace(description)
		if err := tx.Points.Update(ctx, point); err != nil {
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, s.clock.Now(), auditEntry{
			Action:   models.ActionUpdate,
			Target:   models.TargetPoint,
			TargetID: point.ID,
			Details:  fmt.Sprintf("Updated point for %s: %s -> %s", memberName(point), oldCategory, category),
			Metadata: map[string]any{
				"category":    change(oldCategory, category),
				"description": change(oldDescription, point.Description),
			},
		})
	})
	if err != nil {
		return nil, internalError(err)
	}

	names, err := authorNames(ctx, s.store, []models.Point{*point})
	if err != nil {
		return nil, err
	}
	return &PointView{Point: *point, MemberName: memberName(point), CreatorName: names[point.CreatedBy]}, nil
}

func (s *pointService) DeletePoint(ctx context.Context, actor Actor, pointID int64) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		point, err := tx.Points.FindActiveByID(ctx, pointID)
		if err != nil {
			if repository.IsNotFound(err) {
				return notFound("point not found")
			}
			return err
		}
		return s.deactivate(ctx, tx, actor, point, "")
	})
	return internalError(err)
}

// BulkDeletePoints soft-deletes whichever of pointIDs are active and returns how many.
// Only an empty match is an error.
func (s *pointService) BulkDeletePoints(ctx context.Context, actor Actor, pointIDs []int64) (int, error) {
	if len(pointIDs) == 0 {
		return 0, validationError("point_ids must list the points to delete")
	}

	deleted := 0
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		points, err := tx.Points.FindActiveByIDs(ctx, pointIDs)
		if err != nil {
			return err
		}
		if len(points) == 0 {
			return notFound("none of the selected points were found")
		}
		for i := range points {
			if err := s.deactivate(ctx, tx, actor, &points[i], " (bulk delete)"); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, internalError(err)
	}
	return deleted, nil
}

func (s *pointService) deactivate(ctx context.Context, tx *repository.Store, actor Actor, point *models.Point, suffix string) error {
	point.IsActive = false
	if err := tx.Points.Update(ctx, point); err != nil {
		return err
	}
	return writeLog(ctx, tx, &actor.UserID, s.clock.Now(), auditEntry{
		Action:   models.ActionDelete,
		Target:   models.TargetPoint,
		TargetID: point.ID,
		Details:  fmt.Sprintf("Deleted point for %s: %s%s", memberName(point), point.Category, suffix),
	})
}

func (s *pointService) ListPoints(ctx context.Context, q PointListQuery) ([]PointView, Page, error) {
	page, perPage := normalizePage(q.Page, q.PerPage, DefaultPointsPerPage)

	filter := repository.PointFilter{MemberID: q.MemberID}
	if pt := models.PointType(q.PointType); pt.Valid() {
		filter.PointType = pt
	}

	points, total, err := s.store.Points.List(ctx, filter, page, perPage)
	if err != nil {
		return nil, Page{}, internalError(err)
	}
	names, err := authorNames(ctx, s.store, points)
	if err != nil {
		return nil, Page{}, err
	}

	views := make([]PointView, len(points))
	for i := range points {
		views[i] = PointView{Point: points[i], MemberName: memberName(&points[i]), CreatorName: names[points[i].CreatedBy]}
	}
	return views, Page{Page: page, PerPage: perPage, Total: total}, nil
}

func (s *pointService) Categories() Categories {
	return Categories{Positive: models.PositiveCategories, Negative: models.NegativeCategories}
}

func memberName(p *models.Point) string {
	if p.Member == nil {
		return ""
	}
	return p.Member.Name
}
