package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
)

func (p *Pgx) GetCompetitorAccounts(ctx context.Context, projectID int64, activeOnly bool) ([]domain.Competitor, error) {
	builder := sqBuilder.
		Select("id", "project_id", "username", "profile_url", "is_active", "created_at").
		From("competitors").
		Where(sq.Eq{"project_id": projectID}).
		OrderBy("username ASC")
	if activeOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
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

	competitors := make([]domain.Competitor, 0)
	for rows.Next() {
		var c domain.Competitor
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Username, &c.ProfileURL, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		competitors = append(competitors, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return competitors, nil
}

func (p *Pgx) AddCompetitorAccount(ctx context.Context, projectID int64, username, profileURL string) (*domain.Competitor, error) {
	query, args, err := sqBuilder.
		Insert("competitors").
		Columns("project_id", "username", "profile_url").
		Values(projectID, username, profileURL).
		Suffix("RETURNING id, project_id, username, profile_url, is_active, created_at").
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	var c domain.Competitor
	err = p.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.ProjectID, &c.Username, &c.ProfileURL, &c.IsActive, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Unknown project.
			return nil, nil
		}
		return nil, err
	}

	return &c, nil
}

func (p *Pgx) DeleteCompetitorAccount(ctx context.Context, projectID int64, username string) (bool, error) {
	query, args, err := sqBuilder.
		Delete("competitors").
		Where(sq.Eq{"project_id": projectID, "username": username}).
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
