package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"eventteam/internal/clock"
	"eventteam/internal/http-api/models"
	"eventteam/internal/http-api/repository"
	"eventteam/internal/period"
)

// Performance verdicts for the week-over-week comparison.
const (
	PerformanceImproved = "improved"
	PerformanceDeclined = "declined"
	PerformanceStable   = "stable"
)

// NoteAll asks the member detail for both positive and negative points.
const NoteAll = "all"

// PeriodQuery selects a reporting window.
type PeriodQuery struct {
	Period    string
	StartDate string
	EndDate   string
}

// DetailQuery selects the window and point polarity of a member detail.
type DetailQuery struct {
	PeriodQuery
	NoteType string
}

// MemberStats is one row of the member ranking.
type MemberStats struct {
	Member        models.Member
	PositiveCount int
	NegativeCount int
	TotalPoints   int
}

// PointView is a point with its display names resolved.
type PointView struct {
	models.Point
	MemberName  string
	CreatorName string
}

// MemberDetail is the per-member report.
type MemberDetail struct {
	Member               models.Member
	TotalPositive        int
	TotalNegative        int
	CurrentWeekPositive  int
	CurrentWeekNegative  int
	PreviousWeekPositive int
	PreviousWeekNegative int
	Performance          string
	FilteredChatActivity int
	FilteredNotes        []PointView
	Period               string
	NoteType             string
}

type MemberService interface {
	ListMembers(ctx context.Context, q PeriodQuery) ([]MemberStats, error)
	GetMemberDetail(ctx context.Context, memberID int64, q DetailQuery) (*MemberDetail, error)
	CreateMember(ctx context.Context, actor Actor, name string) (*models.Member, error)
	UpdateMember(ctx context.Context, actor Actor, memberID int64, name string) (*models.Member, error)
	DeleteMember(ctx context.Context, actor Actor, memberID int64) error
}

type memberService struct {
	store *repository.Store
	clock clock.Clock
}

func NewMemberService(store *repository.Store, clk clock.Clock) MemberService {
	return &memberService{store: store, clock: clk}
}

func (s *memberService) resolve(q PeriodQuery) (period.Window, error) {
	w, err := period.Resolve(s.clock.Now(), q.Period, q.StartDate, q.EndDate)
	if err != nil {
		return period.Window{}, validationError("%s", err.Error())
	}
	return w, nil
}

// ListMembers ranks every active member by positive minus negative points inside the window.
// Equal totals keep ascending id order.
func (s *memberService) ListMembers(ctx context.Context, q PeriodQuery) ([]MemberStats, error) {
	window, err := s.resolve(q)
	if err != nil {
		return nil, err
	}

	members, err := s.store.Members.ListActive(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	ids := make([]int64, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	points, err := s.store.Points.ListActiveByMembers(ctx, ids)
	if err != nil {
		return nil, internalError(err)
	}

	stats := make([]MemberStats, len(members))
	index := make(map[int64]*MemberStats, len(members))
	for i, m := range members {
		stats[i] = MemberStats{Member: m}
		index[m.ID] = &stats[i]
	}
	for _, p := range points {
		row, ok := index[p.MemberID]
		if !ok || !window.Contains(p.CreatedAt) {
			continue
		}
		switch p.PointType {
		case models.PointPositive:
			row.PositiveCount++
		case models.PointNegative:
			row.NegativeCount++
		}
	}
	for i := range stats {
		stats[i].TotalPoints = stats[i].PositiveCount - stats[i].NegativeCount
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalPoints != stats[j].TotalPoints {
			return stats[i].TotalPoints > stats[j].TotalPoints
		}
		return stats[i].Member.ID < stats[j].Member.ID
	})
	return stats, nil
}

func (s *memberService) GetMemberDetail(ctx context.Context, memberID int64, q DetailQuery) (*MemberDetail, error) {
	if q.Period == "" {
		q.Period = period.Week
	}
	if q.NoteType == "" {
		q.NoteType = string(models.PointNegative)
	}
	if q.NoteType != NoteAll && !models.PointType(q.NoteType).Valid() {
		return nil, validationError("note_type must be positive, negative or all")
	}

	window, err := s.resolve(q.PeriodQuery)
	if err != nil {
		return nil, err
	}

	member, err := s.store.Members.FindActiveByID(ctx, memberID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("member not found")
		}
		return nil, internalError(err)
	}

	points, err := s.store.Points.ListActiveByMember(ctx, member.ID)
	if err != nil {
		return nil, internalError(err)
	}

	now := s.clock.Now()
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	detail := &MemberDetail{
		Member:   *member,
		Period:   q.Period,
		NoteType: q.NoteType,
	}
	var notes []models.Point
	for _, p := range points {
		positive := p.PointType == models.PointPositive
		if positive {
			detail.TotalPositive++
		} else {
			detail.TotalNegative++
		}

		switch {
		case !p.CreatedAt.Before(weekAgo) && !p.CreatedAt.After(now):
			if positive {
				detail.CurrentWeekPositive++
			} else {
				detail.CurrentWeekNegative++
			}
		case !p.CreatedAt.Before(twoWeeksAgo) && p.CreatedAt.Before(weekAgo):
			if positive {
				detail.PreviousWeekPositive++
			} else {
				detail.PreviousWeekNegative++
			}
		}

		if !window.Contains(p.CreatedAt) {
			continue
		}
		if positive && p.Category == models.CategoryChatActivity {
			detail.FilteredChatActivity++
		}
		if q.NoteType == NoteAll || string(p.PointType) == q.NoteType {
			notes = append(notes, p)
		}
	}

	detail.Performance = comparePerformance(
		detail.CurrentWeekPositive-detail.CurrentWeekNegative,
		detail.PreviousWeekPositive-detail.PreviousWeekNegative,
	)

	// points arrive newest first, keep that order
	detail.FilteredNotes, err = s.views(ctx, notes, member.Name)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func comparePerformance(current, previous int) string {
	switch {
	case current > previous:
		return PerformanceImproved
	case current < previous:
		return PerformanceDeclined
	default:
		return PerformanceStable
	}
}

func (s *memberService) views(ctx context.Context, points []models.Point, memberName string) ([]PointView, error) {
	names, err := authorNames(ctx, s.store, points)
	if err != nil {
		return nil, err
	}
	out := make([]PointView, len(points))
	for i, p := range points {
		out[i] = PointView{Point: p, MemberName: memberName, CreatorName: names[p.CreatedBy]}
	}
	return out, nil
}

// authorNames resolves the usernames of every point author in one query.
func authorNames(ctx context.Context, store *repository.Store, points []models.Point) (map[int64]string, error) {
	seen := make(map[int64]struct{}, len(points))
	ids := make([]int64, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p.CreatedBy]; ok {
			continue
		}
		seen[p.CreatedBy] = struct{}{}
		ids = append(ids, p.CreatedBy)
	}
	names, err := store.Users.UsernamesByID(ctx, ids)
	if err != nil {
		return nil, internalError(err)
	}
	return names, nil
}

func (s *memberService) CreateMember(ctx context.Context, actor Actor, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("member name is required")
	}

	now := s.clock.Now()
	member := &models.Member{
		Name:      name,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		IsActive:  true,
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Members.FindActiveByName(ctx, name); err == nil {
			return conflict("a member with this name already exists")
		} else if !repository.IsNotFound(err) {
			return err
		}
		if err := tx.Members.Create(ctx, member); err != nil {
			if repository.IsUniqueViolation(err) {
				return conflict("a member with this name already exists")
			}
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, now, auditEntry{
			Action:   models.ActionCreate,
			Target:   models.TargetMember,
			TargetID: member.ID,
			Details:  fmt.Sprintf("Member added: %s", member.Name),
		})
	})
	if err != nil {
		return nil, internalError(err)
	}
	return member, nil
}

func (s *memberService) UpdateMember(ctx context.Context, actor Actor, memberID int64, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("member name is required")
	}

	var member *models.Member
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		member, err = tx.Members.FindActiveByID(ctx, memberID)
		if err != nil {
			if repository.IsNotFound(err) {
				return notFound("member not found")
			}
			return err
		}

		if other, err := tx.Members.FindActiveByName(ctx, name); err == nil && other.ID != member.ID {
			return conflict("another member already has this name")
		} else if err != nil && !repository.IsNotFound(err) {
			return err
		}

		oldName := member.Name
		member.Name = name
		if err := tx.Members.Update(ctx, member); err != nil {
			if repository.IsUniqueViolation(err) {
				return conflict("another member already has this name")
			}
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, s.clock.Now(), auditEntry{
			Action:   models.ActionUpdate,
			Target:   models.TargetMember,
			TargetID: member.ID,
			Details:  fmt.Sprintf("Member renamed from %s to %s", oldName, name),
			Metadata: map[string]any{"name": change(oldName, name)},
		})
	})
	if err != nil {
		return nil, internalError(err)
	}
	return member, nil
}

// DeleteMember soft-deletes the member and all of its points with a single log entry.
func (s *memberService) DeleteMember(ctx context.Context, actor Actor, memberID int64) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		member, err := tx.Members.FindActiveByID(ctx, memberID)
		if err != nil {
			if repository.IsNotFound(err) {
				return notFound("member not found")
			}
			return err
		}

		member.IsActive = false
		if err := tx.Members.Update(ctx, member); err != nil {
			return err
		}
		deactivated, err := tx.Points.DeactivateByMember(ctx, member.ID)
		if err != nil {
			return err
		}
		return writeLog(ctx, tx, &actor.UserID, s.clock.Now(), auditEntry{
			Action:   models.ActionDelete,
			Target:   models.TargetMember,
			TargetID: member.ID,
			Details:  fmt.Sprintf("Member deleted: %s", member.Name),
			Metadata: map[string]any{"points_deactivated": deactivated},
		})
	})
	return internalError(err)
}
