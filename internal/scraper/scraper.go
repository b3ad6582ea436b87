package scraper

import (
	"context"
	"errors"

	"github.com/orgball2608/insta-competitor-bot/internal/domain"
)

var ErrRunFailed = errors.New("scraping run failed")

// Options filter what the scraping service returns. Zero values fall back
// to the service defaults.
type Options struct {
	MinViews   int
	MaxAgeDays int
	Limit      int
}

//go:generate go run go.uber.org/mock/mockgen -source=scraper.go -destination=mocks/mock.go

// Client is the boundary to the hosted scraping service. Both methods may
// fail for external reasons (network, auth, rate limits); callers treat any
// error as "scraping failed, report and stop".
type Client interface {
	ScrapeAccount(ctx context.Context, username string, opts Options) ([]domain.ScrapedPost, error)
	ScrapeHashtag(ctx context.Context, tag string, opts Options) ([]domain.ScrapedPost, error)
}
