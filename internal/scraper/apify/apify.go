package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/scraper"
	"github.com/orgball2608/insta-competitor-bot/pkg/config"
	apperrors "github.com/orgball2608/insta-competitor-bot/pkg/errors"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
	"github.com/orgball2608/insta-competitor-bot/pkg/retry"
	"go.uber.org/fx"
)

type Options = scraper.Options

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// Client talks to the Apify actor API: start a run, wait until it reaches a
// terminal state, then download the dataset items.
type Client struct {
	baseURL      string
	token        string
	reelActor    string
	hashtagActor string
	http         *http.Client
	logger       logger.Logger
}

func New(opts Opts) *Client {
	return &Client{
		baseURL:      opts.Config.Apify.BaseURL,
		token:        opts.Config.Apify.Token,
		reelActor:    opts.Config.Apify.ReelActor,
		hashtagActor: opts.Config.Apify.HashtagActor,
		http:         &http.Client{Timeout: 60 * time.Second},
		logger:       opts.Logger.WithComponent("ApifyClient"),
	}
}

var _ scraper.Client = (*Client)(nil)

type runResponse struct {
	Data struct {
		ID               string `json:"id"`
		Status           string `json:"status"`
		DefaultDatasetID string `json:"defaultDatasetId"`
	} `json:"data"`
}

func (c *Client) ScrapeAccount(ctx context.Context, username string, opts Options) ([]domain.ScrapedPost, error) {
	input := map[string]any{
		"username":     []string{username},
		"resultsLimit": limitOrDefault(opts.Limit),
	}
	return c.run(ctx, c.reelActor, input, opts)
}

func (c *Client) ScrapeHashtag(ctx context.Context, tag string, opts Options) ([]domain.ScrapedPost, error) {
	input := map[string]any{
		"hashtags":     []string{tag},
		"resultsLimit": limitOrDefault(opts.Limit),
	}
	return c.run(ctx, c.hashtagActor, input, opts)
}

func (c *Client) run(ctx context.Context, actor string, input map[string]any, opts Options) ([]domain.ScrapedPost, error) {
	run, err := c.startRun(ctx, actor, input)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to start scraping run")
	}
	c.logger.Info("Scraping run started", "actor", actor, "run_id", run.Data.ID)

	finished, err := c.waitForRun(ctx, run.Data.ID)
	if err != nil {
		return nil, err
	}

	items, err := c.fetchDatasetItems(ctx, finished.Data.DefaultDatasetID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to fetch dataset items")
	}

	posts := MapItems(items, c.logger)
	posts = applyFilters(posts, opts)

	c.logger.Info("Scraping run finished",
		"run_id", run.Data.ID,
		"items", len(items),
		"posts", len(posts))
	return posts, nil
}

func (c *Client) startRun(ctx context.Context, actor string, input map[string]any) (*runResponse, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/acts/%s/runs?token=%s", c.baseURL, actor, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doRunRequest(req)
}

// waitForRun polls the run until it leaves the running states. The backoff
// here is waiting for completion, not retrying failures.
func (c *Client) waitForRun(ctx context.Context, runID string) (*runResponse, error) {
	var finished *runResponse

	err := retry.Do(ctx, c.logger, "apify_run_poll", func() error {
		url := fmt.Sprintf("%s/actor-runs/%s?token=%s", c.baseURL, runID, c.token)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		run, err := c.doRunRequest(req)
		if err != nil {
			return err
		}

		switch run.Data.Status {
		case "SUCCEEDED":
			finished = run
			return nil
		case "FAILED", "ABORTED", "TIMED-OUT":
			finished = run
			return nil
		default:
			return fmt.Errorf("run %s still %s", runID, run.Data.Status)
		}
	}, retry.PollConfig())
	if err != nil {
		return nil, fmt.Errorf("timed out waiting for run %s: %w", runID, err)
	}

	if finished.Data.Status != "SUCCEEDED" {
		return nil, fmt.Errorf("%w: run %s ended with status %s", scraper.ErrRunFailed, runID, finished.Data.Status)
	}
	return finished, nil
}

func (c *Client) fetchDatasetItems(ctx context.Context, datasetID string) ([]byte, error) {
	url := fmt.Sprintf("%s/datasets/%s/items?token=%s&format=json", c.baseURL, datasetID, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset request returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) doRunRequest(req *http.Request) (*runResponse, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("apify returned status %d: %s", resp.StatusCode, string(body))
	}

	var run runResponse
	if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
		return nil, fmt.Errorf("failed to decode run response: %w", err)
	}
	return &run, nil
}

func applyFilters(posts []domain.ScrapedPost, opts Options) []domain.ScrapedPost {
	out := make([]domain.ScrapedPost, 0, len(posts))
	var cutoff time.Time
	if opts.MaxAgeDays > 0 {
		cutoff = time.Now().AddDate(0, 0, -opts.MaxAgeDays)
	}

	for _, p := range posts {
		if opts.MinViews > 0 && p.ViewCount < opts.MinViews {
			continue
		}
		if !cutoff.IsZero() && !p.TakenAt.IsZero() && p.TakenAt.Before(cutoff) {
			continue
		}
		out = append(out, p)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
