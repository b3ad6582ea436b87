package storage

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/insta-competitor-bot/internal/domain"
)

var (
	ErrAlreadyExists = errors.New("row already exists")
	ErrNotFound      = errors.New("row not found")
	ErrBadQuery      = errors.New("bad query")
)

// ReelFilter narrows GetReels. Zero values mean "no constraint".
type ReelFilter struct {
	ProjectID       int64
	SourceType      domain.SourceType
	SourceID        int64
	MinViews        int
	Since           time.Time
	OnlyUnprocessed bool
	OrderByViews    bool
	Limit           int
	Offset          int
}

//go:generate go run go.uber.org/mock/mockgen -source=storage.go -destination=mocks/mock.go

// Adapter is the backend-agnostic data-access surface the scene handlers run
// against. Single-entity getters return a nil pointer for not-found;
// collection getters always return a non-nil slice, possibly empty. Close is
// idempotent and safe to call even if the adapter was never pinged.
type Adapter interface {
	Ping(ctx context.Context) error
	Close() error

	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	FindOrCreateUser(ctx context.Context, telegramID int64, profile domain.UserProfile) (*domain.User, error)

	GetProjectsByUserID(ctx context.Context, userID int64) ([]domain.Project, error)
	GetActiveProjects(ctx context.Context) ([]domain.Project, error)
	CreateProject(ctx context.Context, userID int64, name string) (*domain.Project, error)
	GetProjectByID(ctx context.Context, id int64) (*domain.Project, error)

	GetCompetitorAccounts(ctx context.Context, projectID int64, activeOnly bool) ([]domain.Competitor, error)
	AddCompetitorAccount(ctx context.Context, projectID int64, username, profileURL string) (*domain.Competitor, error)
	DeleteCompetitorAccount(ctx context.Context, projectID int64, username string) (bool, error)

	GetHashtagsByProjectID(ctx context.Context, projectID int64) ([]domain.Hashtag, error)
	AddHashtag(ctx context.Context, projectID int64, tag string) (*domain.Hashtag, error)
	RemoveHashtag(ctx context.Context, projectID int64, tag string) (bool, error)

	// SaveReels persists a batch, skipping records without a URL and
	// upserting on (project_id, url). Returns the number of rows written.
	SaveReels(ctx context.Context, reels []domain.Reel, projectID int64, source domain.Source) (int, error)
	GetReels(ctx context.Context, filter ReelFilter) ([]domain.Reel, error)

	// LogParsingRun inserts a new run row, or updates the existing row with
	// the same RunID when the run is closed out.
	LogParsingRun(ctx context.Context, runLog domain.ParsingRunLog) (*domain.ParsingRunLog, error)
	GetParsingRunLogs(ctx context.Context, source domain.Source) ([]domain.ParsingRunLog, error)
}
