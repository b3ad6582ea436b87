package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
)

func setupTestDB(t *testing.T) *Sqlite {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath, logger.New(logger.Opts{}))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestSqlite_UserOperations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("GetUserByTelegramID returns nil for unknown user", func(t *testing.T) {
		user, err := db.GetUserByTelegramID(ctx, 999)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("FindOrCreateUser creates on first call", func(t *testing.T) {
		user, err := db.FindOrCreateUser(ctx, 42, domain.UserProfile{
			Username:  "alice",
			FirstName: "Alice",
		})
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(42), user.TelegramID)
		assert.Equal(t, "alice", user.Username)
		assert.True(t, user.IsActive)
	})

	t.Run("FindOrCreateUser returns the existing row", func(t *testing.T) {
		first, err := db.FindOrCreateUser(ctx, 42, domain.UserProfile{Username: "alice"})
		require.NoError(t, err)

		second, err := db.FindOrCreateUser(ctx, 42, domain.UserProfile{Username: "renamed"})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "alice", second.Username)
	})
}

func TestSqlite_ProjectOperations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user, err := db.FindOrCreateUser(ctx, 100, domain.UserProfile{})
	require.NoError(t, err)

	t.Run("empty collection is non-nil", func(t *testing.T) {
		projects, err := db.GetProjectsByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, projects)
		assert.Len(t, projects, 0)
	})

	t.Run("CreateProject and list", func(t *testing.T) {
		p, err := db.CreateProject(ctx, user.ID, "My Clinic")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "My Clinic", p.Name)
		assert.True(t, p.IsActive)

		projects, err := db.GetProjectsByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, p.ID, projects[0].ID)
	})

	t.Run("duplicate names are allowed", func(t *testing.T) {
		_, err := db.CreateProject(ctx, user.ID, "My Clinic")
		require.NoError(t, err)

		projects, err := db.GetProjectsByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})

	t.Run("GetProjectByID nil for unknown id", func(t *testing.T) {
		p, err := db.GetProjectByID(ctx, 9999)
		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("GetActiveProjects sees all users", func(t *testing.T) {
		other, err := db.FindOrCreateUser(ctx, 101, domain.UserProfile{})
		require.NoError(t, err)
		_, err = db.CreateProject(ctx, other.ID, "Second Owner")
		require.NoError(t, err)

		projects, err := db.GetActiveProjects(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 3)
	})
}

func TestSqlite_CompetitorOperations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user, err := db.FindOrCreateUser(ctx, 200, domain.UserProfile{})
	require.NoError(t, err)
	project, err := db.CreateProject(ctx, user.ID, "Tracking")
	require.NoError(t, err)

	t.Run("add against missing project returns nil", func(t *testing.T) {
		c, err := db.AddCompetitorAccount(ctx, 9999, "ghost", "")
		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("add and list", func(t *testing.T) {
		c, err := db.AddCompetitorAccount(ctx, project.ID, "rivals_clinic", "https://instagram.com/rivals_clinic")
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "rivals_clinic", c.Username)

		list, err := db.GetCompetitorAccounts(ctx, project.ID, true)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("same username can be added twice", func(t *testing.T) {
		_, err := db.AddCompetitorAccount(ctx, project.ID, "rivals_clinic", "")
		require.NoError(t, err)

		list, err := db.GetCompetitorAccounts(ctx, project.ID, false)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("delete reports whether a row went away", func(t *testing.T) {
		deleted, err := db.DeleteCompetitorAccount(ctx, project.ID, "rivals_clinic")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = db.DeleteCompetitorAccount(ctx, project.ID, "nobody")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestSqlite_HashtagOperations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user, err := db.FindOrCreateUser(ctx, 300, domain.UserProfile{})
	require.NoError(t, err)
	project, err := db.CreateProject(ctx, user.ID, "Tags")
	require.NoError(t, err)

	h, err := db.AddHashtag(ctx, project.ID, "fitness")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "fitness", h.Tag)

	tags, err := db.GetHashtagsByProjectID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	removed, err := db.RemoveHashtag(ctx, project.ID, "fitness")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = db.RemoveHashtag(ctx, project.ID, "fitness")
	require.NoError(t, err)
	assert.False(t, removed)

	tags, err = db.GetHashtagsByProjectID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, tags)
	assert.Len(t, tags, 0)
}

func TestSqlite_SaveReels(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user, err := db.FindOrCreateUser(ctx, 400, domain.UserProfile{})
	require.NoError(t, err)
	project, err := db.CreateProject(ctx, user.ID, "Reels")
	require.NoError(t, err)

	source := domain.Source{Type: domain.SourceCompetitor, ID: 7}

	t.Run("skips records without URL", func(t *testing.T) {
		saved, err := db.SaveReels(ctx, []domain.Reel{
			{URL: "", ViewCount: 10},
			{URL: "https://instagram.com/reel/abc", ViewCount: 100},
		}, project.ID, source)
		require.NoError(t, err)
		assert.Equal(t, 1, saved)
	})

	t.Run("upserts on project and url", func(t *testing.T) {
		saved, err := db.SaveReels(ctx, []domain.Reel{
			{URL: "https://instagram.com/reel/abc", ViewCount: 250, LikeCount: 12},
		}, project.ID, source)
		require.NoError(t, err)
		assert.Equal(t, 1, saved)

		reels, err := db.GetReels(ctx, storage.ReelFilter{ProjectID: project.ID})
		require.NoError(t, err)
		require.Len(t, reels, 1)
		assert.Equal(t, 250, reels[0].ViewCount)
		assert.Equal(t, 12, reels[0].LikeCount)
	})
}

func TestSqlite_GetReelsFilter(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user, err := db.FindOrCreateUser(ctx, 500, domain.UserProfile{})
	require.NoError(t, err)
	project, err := db.CreateProject(ctx, user.ID, "Filters")
	require.NoError(t, err)

	now := time.Now()
	source := domain.Source{Type: domain.SourceHashtag, ID: 3}
	_, err = db.SaveReels(ctx, []domain.Reel{
		{URL: "u1", ViewCount: 100, PublishedAt: now.Add(-48 * time.Hour)},
		{URL: "u2", ViewCount: 5000, PublishedAt: now.Add(-24 * time.Hour)},
		{URL: "u3", ViewCount: 900, PublishedAt: now},
	}, project.ID, source)
	require.NoError(t, err)

	t.Run("min views", func(t *testing.T) {
		reels, err := db.GetReels(ctx, storage.ReelFilter{ProjectID: project.ID, MinViews: 500})
		require.NoError(t, err)
		assert.Len(t, reels, 2)
	})

	t.Run("since cutoff", func(t *testing.T) {
		reels, err := db.GetReels(ctx, storage.ReelFilter{
			ProjectID: project.ID,
			Since:     now.Add(-30 * time.Hour),
		})
		require.NoError(t, err)
		assert.Len(t, reels, 2)
	})

	t.Run("order by views with limit", func(t *testing.T) {
		reels, err := db.GetReels(ctx, storage.ReelFilter{
			ProjectID:    project.ID,
			OrderByViews: true,
			Limit:        2,
		})
		require.NoError(t, err)
		require.Len(t, reels, 2)
		assert.Equal(t, "u2", reels[0].URL)
		assert.Equal(t, "u3", reels[1].URL)
	})

	t.Run("default order is newest first", func(t *testing.T) {
		reels, err := db.GetReels(ctx, storage.ReelFilter{ProjectID: project.ID})
		require.NoError(t, err)
		require.Len(t, reels, 3)
		assert.Equal(t, "u3", reels[0].URL)
	})
}

func TestSqlite_ParsingRunLogs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	source := domain.Source{Type: domain.SourceCompetitor, ID: 11}

	opened, err := db.LogParsingRun(ctx, domain.ParsingRunLog{
		RunID:      "run-1",
		ProjectID:  1,
		SourceType: source.Type,
		SourceID:   source.ID,
		Status:     domain.RunStatusRunning,
	})
	require.NoError(t, err)
	require.NotNil(t, opened)
	assert.Equal(t, domain.RunStatusRunning, opened.Status)
	assert.False(t, opened.StartedAt.IsZero())
	assert.Nil(t, opened.EndedAt)

	ended := time.Now()
	closed, err := db.LogParsingRun(ctx, domain.ParsingRunLog{
		RunID:      "run-1",
		ProjectID:  1,
		SourceType: source.Type,
		SourceID:   source.ID,
		Status:     domain.RunStatusCompleted,
		PostsFound: 9,
		PostsAdded: 7,
		EndedAt:    &ended,
	})
	require.NoError(t, err)
	require.NotNil(t, closed)
	assert.Equal(t, opened.ID, closed.ID)
	assert.Equal(t, domain.RunStatusCompleted, closed.Status)
	assert.Equal(t, 9, closed.PostsFound)
	assert.Equal(t, 7, closed.PostsAdded)
	require.NotNil(t, closed.EndedAt)

	t.Run("logs come back newest first", func(t *testing.T) {
		_, err := db.LogParsingRun(ctx, domain.ParsingRunLog{
			RunID:      "run-2",
			ProjectID:  1,
			SourceType: source.Type,
			SourceID:   source.ID,
			Status:     domain.RunStatusFailed,
			StartedAt:  time.Now().Add(time.Minute),
		})
		require.NoError(t, err)

		logs, err := db.GetParsingRunLogs(ctx, source)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "run-2", logs[0].RunID)
	})
}

func TestSqlite_CloseIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	assert.NoError(t, db.Close())
	assert.NoError(t, db.Close())
}

func TestSqlite_CloseBeforeUse(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "untouched.db")
	db, err := New(dbPath, logger.New(logger.Opts{}))
	require.NoError(t, err)

	assert.NoError(t, db.Close())
}
