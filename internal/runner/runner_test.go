package runner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/scraper"
	mock_scraper "github.com/orgball2608/insta-competitor-bot/internal/scraper/mocks"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/internal/storage/sqlite"
	"github.com/orgball2608/insta-competitor-bot/pkg/config"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
)

type runnerEnv struct {
	runner  *Runner
	scraper *mock_scraper.MockClient
	db      storage.Adapter
	project *domain.Project
}

func setupRunner(t *testing.T) *runnerEnv {
	t.Helper()

	log := logger.New(logger.Opts{})
	db, err := sqlite.New(filepath.Join(t.TempDir(), "runner.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	user, err := db.FindOrCreateUser(ctx, 1, domain.UserProfile{})
	require.NoError(t, err)
	project, err := db.CreateProject(ctx, user.ID, "Runner Project")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	mockScraper := mock_scraper.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Scraper.MinViews = 100
	cfg.Scraper.MaxAgeDays = 14
	cfg.Scraper.Limit = 50

	r := New(Opts{
		Storage: db,
		Scraper: mockScraper,
		Logger:  log,
		Config:  cfg,
	})

	return &runnerEnv{runner: r, scraper: mockScraper, db: db, project: project}
}

func TestRunSource_Completed(t *testing.T) {
	env := setupRunner(t)
	ctx := context.Background()

	env.scraper.EXPECT().
		ScrapeAccount(gomock.Any(), "rival", scraper.Options{MinViews: 100, MaxAgeDays: 14, Limit: 50}).
		Return([]domain.ScrapedPost{
			{URL: "u1", ViewCount: 500, TakenAt: time.Now()},
			{URL: "u2", ViewCount: 900, TakenAt: time.Now()},
		}, nil)

	source := domain.Source{Type: domain.SourceCompetitor, ID: 42}
	found, added, err := env.runner.RunSource(ctx, env.project.ID, source, "rival")
	require.NoError(t, err)
	assert.Equal(t, 2, found)
	assert.Equal(t, 2, added)

	reels, err := env.db.GetReels(ctx, storage.ReelFilter{ProjectID: env.project.ID})
	require.NoError(t, err)
	assert.Len(t, reels, 2)

	logs, err := env.db.GetParsingRunLogs(ctx, source)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.RunStatusCompleted, logs[0].Status)
	assert.Equal(t, 2, logs[0].PostsFound)
	assert.Equal(t, 2, logs[0].PostsAdded)
	require.NotNil(t, logs[0].EndedAt)
}

func TestRunSource_ScrapeFailureClosesRunAsFailed(t *testing.T) {
	env := setupRunner(t)
	ctx := context.Background()

	env.scraper.EXPECT().
		ScrapeHashtag(gomock.Any(), "fitness", gomock.Any()).
		Return(nil, scraper.ErrRunFailed)

	source := domain.Source{Type: domain.SourceHashtag, ID: 9}
	_, _, err := env.runner.RunSource(ctx, env.project.ID, source, "fitness")
	require.Error(t, err)
	assert.ErrorIs(t, err, scraper.ErrRunFailed)

	logs, err := env.db.GetParsingRunLogs(ctx, source)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.RunStatusFailed, logs[0].Status)
	assert.NotEmpty(t, logs[0].ErrorMessage)
}

// partialSaveStorage fails SaveReels midway through a batch.
type partialSaveStorage struct {
	storage.Adapter
}

func (p *partialSaveStorage) SaveReels(ctx context.Context, reels []domain.Reel, projectID int64, source domain.Source) (int, error) {
	if len(reels) < 2 {
		return p.Adapter.SaveReels(ctx, reels, projectID, source)
	}
	saved, err := p.Adapter.SaveReels(ctx, reels[:1], projectID, source)
	if err != nil {
		return saved, err
	}
	return saved, errors.New("disk full")
}

func TestRunSource_PartialSave(t *testing.T) {
	env := setupRunner(t)
	ctx := context.Background()

	env.runner.storage = &partialSaveStorage{Adapter: env.db}

	env.scraper.EXPECT().
		ScrapeAccount(gomock.Any(), "rival", gomock.Any()).
		Return([]domain.ScrapedPost{
			{URL: "u1", ViewCount: 500},
			{URL: "u2", ViewCount: 900},
		}, nil)

	source := domain.Source{Type: domain.SourceCompetitor, ID: 5}
	found, added, err := env.runner.RunSource(ctx, env.project.ID, source, "rival")
	require.NoError(t, err, "a partially saved run is not an error for the caller")
	assert.Equal(t, 2, found)
	assert.Equal(t, 1, added)

	logs, err := env.db.GetParsingRunLogs(ctx, source)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.RunStatusPartialSuccess, logs[0].Status)
}

func TestScrapeCompetitors_FailingSourceIsCountedNotFatal(t *testing.T) {
	env := setupRunner(t)
	ctx := context.Background()

	_, err := env.db.AddCompetitorAccount(ctx, env.project.ID, "good_one", "")
	require.NoError(t, err)
	_, err = env.db.AddCompetitorAccount(ctx, env.project.ID, "bad_one", "")
	require.NoError(t, err)

	env.scraper.EXPECT().
		ScrapeAccount(gomock.Any(), "bad_one", gomock.Any()).
		Return(nil, errors.New("actor crashed"))
	env.scraper.EXPECT().
		ScrapeAccount(gomock.Any(), "good_one", gomock.Any()).
		Return([]domain.ScrapedPost{{URL: "u1", ViewCount: 300}}, nil)

	sum, err := env.runner.ScrapeCompetitors(ctx, env.project.ID)
	require.NoError(t, err)
	assert.Equal(t, Summary{Sources: 2, Found: 1, Added: 1, Failed: 1}, sum)
}

func TestScrapeHashtags_EmptyProject(t *testing.T) {
	env := setupRunner(t)
	ctx := context.Background()

	sum, err := env.runner.ScrapeHashtags(ctx, env.project.ID)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
}
