package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
)

// SaveReels persists a scraped batch. Records without a URL are skipped, and
// a record whose (project_id, url) already exists updates the engagement
// metrics of the stored row instead of inserting a duplicate.
func (p *Pgx) SaveReels(ctx context.Context, reels []domain.Reel, projectID int64, source domain.Source) (int, error) {
	saved := 0
	for _, reel := range reels {
		if reel.URL == "" {
			p.logger.Warn("Skipping reel without URL", "project_id", projectID)
			continue
		}

		fetchedAt := reel.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = time.Now()
		}

		query, args, err := sqBuilder.
			Insert("reels").
			Columns("project_id", "source_type", "source_id", "url", "caption",
				"owner_username", "view_count", "like_count", "comment_count",
				"published_at", "fetched_at").
			Values(projectID, source.Type, source.ID, reel.URL, reel.Caption,
				reel.OwnerUsername, reel.ViewCount, reel.LikeCount, reel.CommentCount,
				reel.PublishedAt, fetchedAt).
			Suffix(`ON CONFLICT (project_id, url) DO UPDATE SET
				view_count = EXCLUDED.view_count,
				like_count = EXCLUDED.like_count,
				comment_count = EXCLUDED.comment_count,
				fetched_at = EXCLUDED.fetched_at`).
			ToSql()
		if err != nil {
			return saved, storage.ErrBadQuery
		}

		if _, err := p.pool.Exec(ctx, query, args...); err != nil {
			return saved, err
		}
		saved++
	}

	return saved, nil
}

func (p *Pgx) GetReels(ctx context.Context, filter storage.ReelFilter) ([]domain.Reel, error) {
	builder := sqBuilder.
		Select("id", "project_id", "source_type", "source_id", "url", "caption",
			"owner_username", "view_count", "like_count", "comment_count",
			"published_at", "fetched_at", "is_processed").
		From("reels")

	if filter.ProjectID != 0 {
		builder = builder.Where(sq.Eq{"project_id": filter.ProjectID})
	}
	if filter.SourceType != "" {
		builder = builder.Where(sq.Eq{"source_type": filter.SourceType})
	}
	if filter.SourceID != 0 {
		builder = builder.Where(sq.Eq{"source_id": filter.SourceID})
	}
	if filter.MinViews > 0 {
		builder = builder.Where(sq.GtOrEq{"view_count": filter.MinViews})
	}
	if !filter.Since.IsZero() {
		builder = builder.Where(sq.GtOrEq{"published_at": filter.Since})
	}
	if filter.OnlyUnprocessed {
		builder = builder.Where(sq.Eq{"is_processed": false})
	}
	if filter.OrderByViews {
		builder = builder.OrderBy("view_count DESC")
	} else {
		builder = builder.OrderBy("published_at DESC")
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reels := make([]domain.Reel, 0)
	for rows.Next() {
		var r domain.Reel
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.SourceType, &r.SourceID, &r.URL, &r.Caption,
			&r.OwnerUsername, &r.ViewCount, &r.LikeCount, &r.CommentCount,
			&r.PublishedAt, &r.FetchedAt, &r.IsProcessed); err != nil {
			return nil, err
		}
		reels = append(reels, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reels, nil
}
