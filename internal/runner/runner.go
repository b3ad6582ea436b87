package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/scraper"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/pkg/config"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Storage storage.Adapter
	Scraper scraper.Client
	Logger  logger.Logger
	Config  *config.Config
}

// Runner executes scraping runs: it opens a run log, calls the scraping
// service, persists the mapped posts and closes the run with counts. Every
// run against one source gets its own log row.
type Runner struct {
	storage storage.Adapter
	scraper scraper.Client
	logger  logger.Logger
	config  *config.Config
}

func New(opts Opts) *Runner {
	return &Runner{
		storage: opts.Storage,
		scraper: opts.Scraper,
		logger:  opts.Logger.WithComponent("Runner"),
		config:  opts.Config,
	}
}

// Summary aggregates the outcome of one or more runs.
type Summary struct {
	Sources int
	Found   int
	Added   int
	Failed  int
}

func (r *Runner) options() scraper.Options {
	return scraper.Options{
		MinViews:   r.config.Scraper.MinViews,
		MaxAgeDays: r.config.Scraper.MaxAgeDays,
		Limit:      r.config.Scraper.Limit,
	}
}

// RunSource executes one scraping run against one competitor or hashtag.
func (r *Runner) RunSource(ctx context.Context, projectID int64, source domain.Source, target string) (found, added int, err error) {
	runID := uuid.NewString()
	startedAt := time.Now()

	if _, logErr := r.storage.LogParsingRun(ctx, domain.ParsingRunLog{
		RunID:      runID,
		ProjectID:  projectID,
		SourceType: source.Type,
		SourceID:   source.ID,
		Status:     domain.RunStatusRunning,
		StartedAt:  startedAt,
	}); logErr != nil {
		return 0, 0, fmt.Errorf("open run log: %w", logErr)
	}

	var posts []domain.ScrapedPost
	switch source.Type {
	case domain.SourceCompetitor:
		posts, err = r.scraper.ScrapeAccount(ctx, target, r.options())
	case domain.SourceHashtag:
		posts, err = r.scraper.ScrapeHashtag(ctx, target, r.options())
	default:
		err = fmt.Errorf("unknown source type %q", source.Type)
	}

	if err != nil {
		r.closeRun(ctx, runID, domain.RunStatusFailed, 0, 0, err.Error())
		return 0, 0, fmt.Errorf("scrape %s %q: %w", source.Type, target, err)
	}

	reels := make([]domain.Reel, 0, len(posts))
	for _, p := range posts {
		reels = append(reels, p.ToReel(projectID, source))
	}

	saved, saveErr := r.storage.SaveReels(ctx, reels, projectID, source)
	switch {
	case saveErr != nil && saved > 0:
		r.closeRun(ctx, runID, domain.RunStatusPartialSuccess, len(posts), saved, saveErr.Error())
		return len(posts), saved, nil
	case saveErr != nil:
		r.closeRun(ctx, runID, domain.RunStatusFailed, len(posts), 0, saveErr.Error())
		return len(posts), 0, fmt.Errorf("save reels: %w", saveErr)
	}

	r.closeRun(ctx, runID, domain.RunStatusCompleted, len(posts), saved, "")
	return len(posts), saved, nil
}

func (r *Runner) closeRun(ctx context.Context, runID string, status domain.RunStatus, found, added int, errMsg string) {
	endedAt := time.Now()
	if _, err := r.storage.LogParsingRun(ctx, domain.ParsingRunLog{
		RunID:        runID,
		Status:       status,
		PostsFound:   found,
		PostsAdded:   added,
		ErrorMessage: errMsg,
		EndedAt:      &endedAt,
	}); err != nil {
		r.logger.Error("Failed to close run log", "run_id", runID, "error", err)
	}
}

// ScrapeCompetitors runs the pipeline for every active competitor of a
// project. A failing source is counted and skipped, not fatal to the batch.
func (r *Runner) ScrapeCompetitors(ctx context.Context, projectID int64) (Summary, error) {
	competitors, err := r.storage.GetCompetitorAccounts(ctx, projectID, true)
	if err != nil {
		return Summary{}, fmt.Errorf("list competitors: %w", err)
	}

	var sum Summary
	for _, c := range competitors {
		sum.Sources++
		found, added, err := r.RunSource(ctx, projectID,
			domain.Source{Type: domain.SourceCompetitor, ID: c.ID}, c.Username)
		if err != nil {
			r.logger.Error("Competitor run failed", "project_id", projectID, "username", c.Username, "error", err)
			sum.Failed++
			continue
		}
		sum.Found += found
		sum.Added += added
	}
	return sum, nil
}

// ScrapeHashtags runs the pipeline for every active hashtag of a project.
func (r *Runner) ScrapeHashtags(ctx context.Context, projectID int64) (Summary, error) {
	hashtags, err := r.storage.GetHashtagsByProjectID(ctx, projectID)
	if err != nil {
		return Summary{}, fmt.Errorf("list hashtags: %w", err)
	}

	var sum Summary
	for _, h := range hashtags {
		sum.Sources++
		found, added, err := r.RunSource(ctx, projectID,
			domain.Source{Type: domain.SourceHashtag, ID: h.ID}, h.Tag)
		if err != nil {
			r.logger.Error("Hashtag run failed", "project_id", projectID, "tag", h.Tag, "error", err)
			sum.Failed++
			continue
		}
		sum.Found += found
		sum.Added += added
	}
	return sum, nil
}
