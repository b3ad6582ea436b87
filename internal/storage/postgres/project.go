package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
)

func (p *Pgx) GetProjectsByUserID(ctx context.Context, userID int64) ([]domain.Project, error) {
	query, args, err := sqBuilder.
		Select("id", "user_id", "name", "is_active", "created_at").
		From("projects").
		Where(sq.Eq{"user_id": userID, "is_active": true}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		var pr domain.Project
		if err := rows.Scan(&pr.ID, &pr.UserID, &pr.Name, &pr.IsActive, &pr.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, pr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

func (p *Pgx) GetActiveProjects(ctx context.Context) ([]domain.Project, error) {
	query, args, err := sqBuilder.
		Select("id", "user_id", "name", "is_active", "created_at").
		From("projects").
		Where(sq.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]domain.Project, 0)
	for rows.Next() {
		var pr domain.Project
		if err := rows.Scan(&pr.ID, &pr.UserID, &pr.Name, &pr.IsActive, &pr.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, pr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

func (p *Pgx) CreateProject(ctx context.Context, userID int64, name string) (*domain.Project, error) {
	query, args, err := sqBuilder.
		Insert("projects").
		Columns("user_id", "name").
		Values(userID, name).
		Suffix("RETURNING id, user_id, name, is_active, created_at").
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	var pr domain.Project
	err = p.pool.QueryRow(ctx, query, args...).
		Scan(&pr.ID, &pr.UserID, &pr.Name, &pr.IsActive, &pr.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &pr, nil
}

func (p *Pgx) GetProjectByID(ctx context.Context, id int64) (*domain.Project, error) {
	query, args, err := sqBuilder.
		Select("id", "user_id", "name", "is_active", "created_at").
		From("projects").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	var pr domain.Project
	err = p.pool.QueryRow(ctx, query, args...).
		Scan(&pr.ID, &pr.UserID, &pr.Name, &pr.IsActive, &pr.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &pr, nil
}
