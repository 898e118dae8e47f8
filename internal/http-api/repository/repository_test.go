package repository

import (
	"context"
	"testing"
	"time"

	"eventteam/internal/http-api/models"
	"eventteam/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(testutil.NewDB(t, testutil.NewClock()))
}

func seedUser(t *testing.T, s *Store, username string, createdBy *int64) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		PasswordHash: "hash",
		Role:         models.RoleLeader,
		IsActive:     true,
		CreatedBy:    createdBy,
	}
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	root := seedUser(t, s, "Gon", nil)
	alice := seedUser(t, s, "alice", &root.ID)

	t.Run("duplicate username is a unique violation", func(t *testing.T) {
		err := s.Users.Create(ctx, &models.User{Username: "alice", PasswordHash: "x", Role: models.RoleVisor})
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))
	})

	t.Run("find by id loads creator", func(t *testing.T) {
		got, err := s.Users.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, got.CreatorName())
		assert.Equal(t, "Gon", *got.CreatorName())
	})

	t.Run("inactive users are hidden from active lookups", func(t *testing.T) {
		alice.IsActive = false
		require.NoError(t, s.Users.Update(ctx, alice))

		_, err := s.Users.FindActiveByUsername(ctx, "alice")
		assert.True(t, IsNotFound(err))

		got, err := s.Users.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		users, err := s.Users.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Gon", users[0].Username)
	})

	t.Run("usernames by id", func(t *testing.T) {
		names, err := s.Users.UsernamesByID(ctx, []int64{root.ID, alice.ID, 999})
		require.NoError(t, err)
		assert.Equal(t, map[int64]string{root.ID: "Gon", alice.ID: "alice"}, names)
	})

	t.Run("clear creator then hard delete", func(t *testing.T) {
		require.NoError(t, s.Users.ClearCreator(ctx, root.ID))
		got, err := s.Users.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CreatedBy)

		require.NoError(t, s.Users.HardDelete(ctx, alice.ID))
		assert.True(t, IsNotFound(s.Users.HardDelete(ctx, alice.ID)))
	})
}

func TestMemberAndPointRepository(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	owner := seedUser(t, s, "Gon", nil)

	bob := &models.Member{Name: "Bob", CreatedBy: owner.ID, IsActive: true}
	require.NoError(t, s.Members.Create(ctx, bob))

	t.Run("active name is unique", func(t *testing.T) {
		err := s.Members.Create(ctx, &models.Member{Name: "Bob", CreatedBy: owner.ID, IsActive: true})
		assert.True(t, IsUniqueViolation(err))
	})

	base := testutil.Epoch
	for i, pt := range []models.PointType{models.PointPositive, models.PointNegative, models.PointPositive} {
		p := &models.Point{
			MemberID:  bob.ID,
			PointType: pt,
			Category:  models.CategoryOther,
			CreatedBy: owner.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			IsActive:  true,
		}
		require.NoError(t, s.Points.Create(ctx, p))
	}

	t.Run("list by member newest first", func(t *testing.T) {
		points, err := s.Points.ListActiveByMember(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, points, 3)
		assert.True(t, points[0].CreatedAt.After(points[2].CreatedAt))
	})

	t.Run("paginated listing with filters", func(t *testing.T) {
		points, total, err := s.Points.List(ctx, PointFilter{MemberID: bob.ID, PointType: models.PointPositive}, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, points, 1)
		require.NotNil(t, points[0].Member)
		assert.Equal(t, "Bob", points[0].Member.Name)

		points, _, err = s.Points.List(ctx, PointFilter{}, 2, 2)
		require.NoError(t, err)
		assert.Len(t, points, 1)
	})

	t.Run("deactivate by member", func(t *testing.T) {
		n, err := s.Points.DeactivateByMember(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		points, err := s.Points.ListActiveByMembers(ctx, []int64{bob.ID})
		require.NoError(t, err)
		assert.Empty(t, points)
	})

	t.Run("inactive name can be reused", func(t *testing.T) {
		bob.IsActive = false
		require.NoError(t, s.Members.Update(ctx, bob))
		require.NoError(t, s.Members.Create(ctx, &models.Member{Name: "Bob", CreatedBy: owner.ID, IsActive: true}))

		ids, err := s.Members.IDsByCreator(ctx, owner.ID)
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	owner := seedUser(t, s, "Gon", nil)

	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.Members.Create(ctx, &models.Member{Name: "Bob", CreatedBy: owner.ID, IsActive: true}); err != nil {
			return err
		}
		return tx.Members.Create(ctx, &models.Member{Name: "Bob", CreatedBy: owner.ID, IsActive: true})
	})
	require.Error(t, err)

	members, err := s.Members.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestLogRepositoryFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	owner := seedUser(t, s, "Gon", nil)

	day := testutil.Epoch
	entries := []struct {
		action models.ActionType
		target models.TargetType
		at     time.Time
	}{
		{models.ActionLogin, models.TargetUser, day.AddDate(0, 0, -2)},
		{models.ActionCreate, models.TargetMember, day.AddDate(0, 0, -1)},
		{models.ActionCreate, models.TargetPoint, day},
	}
	for _, e := range entries {
		require.NoError(t, s.Logs.Create(ctx, &models.Log{
			ActionType: e.action,
			TargetType: e.target,
			CreatedBy:  &owner.ID,
			CreatedAt:  e.at,
		}))
	}

	logs, total, err := s.Logs.List(ctx, LogFilter{ActionType: models.ActionCreate}, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, models.TargetPoint, logs[0].TargetType)

	start := day.AddDate(0, 0, -1).Add(-time.Hour)
	end := day.AddDate(0, 0, -1).Add(time.Hour)
	logs, total, err = s.Logs.List(ctx, LogFilter{Start: &start, End: &end}, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, models.TargetMember, logs[0].TargetType)

	n, err := s.Logs.DeleteByCreator(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t, testutil.NewClock())
	repo := NewSessionRepository(db)

	now := testutil.Epoch
	for _, tok := range []string{"a", "b"} {
		require.NoError(t, repo.Create(ctx, &models.Session{
			Token:     tok,
			UserID:    1,
			Username:  "Gon",
			Role:      models.RoleLeader,
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Session{
		Token: "old", UserID: 2, Username: "bob", Role: models.RoleVisor,
		CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}))

	got, err := repo.Find(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)

	_, err = repo.Find(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.DeleteByUser(ctx, 1))
	_, err = repo.Find(ctx, "b")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	require.NoError(t, repo.Delete(ctx, "a"))
}
