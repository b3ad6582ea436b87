package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
)

func (p *Pgx) GetHashtagsByProjectID(ctx context.Context, projectID int64) ([]domain.Hashtag, error) {
	query, args, err := sqBuilder.
		Select("id", "project_id", "tag", "is_active", "created_at").
		From("hashtags").
		Where(sq.Eq{"project_id": projectID, "is_active": true}).
		OrderBy("tag ASC").
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hashtags := make([]domain.Hashtag, 0)
	for rows.Next() {
		var h domain.Hashtag
		if err := rows.Scan(&h.ID, &h.ProjectID, &h.Tag, &h.IsActive, &h.CreatedAt); err != nil {
			return nil, err
		}
		hashtags = append(hashtags, h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return hashtags, nil
}

func (p *Pgx) AddHashtag(ctx context.Context, projectID int64, tag string) (*domain.Hashtag, error) {
	query, args, err := sqBuilder.
		Insert("hashtags").
		Columns("project_id", "tag").
		Values(projectID, tag).
		Suffix("RETURNING id, project_id, tag, is_active, created_at").
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	var h domain.Hashtag
	err = p.pool.QueryRow(ctx, query, args...).
		Scan(&h.ID, &h.ProjectID, &h.Tag, &h.IsActive, &h.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &h, nil
}

func (p *Pgx) RemoveHashtag(ctx context.Context, projectID int64, tag string) (bool, error) {
	query, args, err := sqBuilder.
		Delete("hashtags").
		Where(sq.Eq{"project_id": projectID, "tag": tag}).
		ToSql()
	if err != nil {
		return false, storage.ErrBadQuery
	}

	result, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}
