package apify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/pkg/config"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Apify.BaseURL = server.URL
	cfg.Apify.Token = "test-token"
	cfg.Apify.ReelActor = "acme~reel-scraper"
	cfg.Apify.HashtagActor = "acme~hashtag-scraper"

	return New(Opts{Config: cfg, Logger: logger.New(logger.Opts{})})
}

func TestScrapeAccount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/acts/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.RawQuery, "token=test-token")
		fmt.Fprint(w, `{"data":{"id":"run-1","status":"RUNNING","defaultDatasetId":"ds-1"}}`)
	})
	mux.HandleFunc("/actor-runs/run-1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"run-1","status":"SUCCEEDED","defaultDatasetId":"ds-1"}}`)
	})
	mux.HandleFunc("/datasets/ds-1/items", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"url":"https://www.instagram.com/reel/a/","videoViewCount":5000},
			{"url":"https://www.instagram.com/reel/b/","videoViewCount":50},
			{"caption":"dropped, no url"}
		]`)
	})

	client := newTestClient(t, mux)

	posts, err := client.ScrapeAccount(context.Background(), "rival", Options{MinViews: 100})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "https://www.instagram.com/reel/a/", posts[0].URL)
}

func TestScrapeHashtag_FailedRun(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/acts/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"run-2","status":"RUNNING","defaultDatasetId":"ds-2"}}`)
	})
	mux.HandleFunc("/actor-runs/run-2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"run-2","status":"FAILED","defaultDatasetId":"ds-2"}}`)
	})

	client := newTestClient(t, mux)

	_, err := client.ScrapeHashtag(context.Background(), "fitness", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FAILED")
}

func TestScrapeAccount_StartRejection(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/acts/") {
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		http.NotFound(w, r)
	})

	client := newTestClient(t, handler)

	_, err := client.ScrapeAccount(context.Background(), "rival", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestApplyFilters(t *testing.T) {
	now := time.Now()
	posts := []domain.ScrapedPost{
		{URL: "fresh-popular", ViewCount: 9000, TakenAt: now.Add(-24 * time.Hour)},
		{URL: "fresh-quiet", ViewCount: 10, TakenAt: now.Add(-24 * time.Hour)},
		{URL: "old-popular", ViewCount: 9000, TakenAt: now.AddDate(0, 0, -30)},
		{URL: "undated", ViewCount: 9000},
	}

	t.Run("min views and age", func(t *testing.T) {
		got := applyFilters(posts, Options{MinViews: 100, MaxAgeDays: 14})
		require.Len(t, got, 2)
		assert.Equal(t, "fresh-popular", got[0].URL)
		assert.Equal(t, "undated", got[1].URL, "posts without a date pass the age filter")
	})

	t.Run("limit caps the result", func(t *testing.T) {
		got := applyFilters(posts, Options{Limit: 1})
		require.Len(t, got, 1)
	})

	t.Run("zero options keep everything", func(t *testing.T) {
		got := applyFilters(posts, Options{})
		assert.Len(t, got, len(posts))
	})
}
