package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
)

func (p *Pgx) LogParsingRun(ctx context.Context, runLog domain.ParsingRunLog) (*domain.ParsingRunLog, error) {
	existing, err := p.getRunByRunID(ctx, runLog.RunID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		startedAt := runLog.StartedAt
		if startedAt.IsZero() {
			startedAt = time.Now()
		}

		query, args, err := sqBuilder.
			Insert("parsing_run_logs").
			Columns("run_id", "project_id", "source_type", "source_id", "status",
				"posts_found", "posts_added", "error_message", "started_at").
			Values(runLog.RunID, runLog.ProjectID, runLog.SourceType, runLog.SourceID,
				runLog.Status, runLog.PostsFound, runLog.PostsAdded, runLog.ErrorMessage, startedAt).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, storage.ErrBadQuery
		}

		if err := p.pool.QueryRow(ctx, query, args...).Scan(&runLog.ID); err != nil {
			return nil, err
		}
		runLog.StartedAt = startedAt
		return &runLog, nil
	}

	query, args, err := sqBuilder.
		Update("parsing_run_logs").
		Set("status", runLog.Status).
		Set("posts_found", runLog.PostsFound).
		Set("posts_added", runLog.PostsAdded).
		Set("error_message", runLog.ErrorMessage).
		Set("ended_at", runLog.EndedAt).
		Where(sq.Eq{"run_id": runLog.RunID}).
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	if _, err := p.pool.Exec(ctx, query, args...); err != nil {
		return nil, err
	}

	return p.getRunByRunID(ctx, runLog.RunID)
}

func (p *Pgx) GetParsingRunLogs(ctx context.Context, source domain.Source) ([]domain.ParsingRunLog, error) {
	query, args, err := sqBuilder.
		Select("id", "run_id", "project_id", "source_type", "source_id", "status",
			"posts_found", "posts_added", "error_message", "started_at", "ended_at").
		From("parsing_run_logs").
		Where(sq.Eq{"source_type": source.Type, "source_id": source.ID}).
		OrderBy("started_at DESC").
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]domain.ParsingRunLog, 0)
	for rows.Next() {
		var l domain.ParsingRunLog
		if err := rows.Scan(&l.ID, &l.RunID, &l.ProjectID, &l.SourceType, &l.SourceID, &l.Status,
			&l.PostsFound, &l.PostsAdded, &l.ErrorMessage, &l.StartedAt, &l.EndedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

func (p *Pgx) getRunByRunID(ctx context.Context, runID string) (*domain.ParsingRunLog, error) {
	query, args, err := sqBuilder.
		Select("id", "run_id", "project_id", "source_type", "source_id", "status",
			"posts_found", "posts_added", "error_message", "started_at", "ended_at").
		From("parsing_run_logs").
		Where(sq.Eq{"run_id": runID}).
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	var l domain.ParsingRunLog
	err = p.pool.QueryRow(ctx, query, args...).
		Scan(&l.ID, &l.RunID, &l.ProjectID, &l.SourceType, &l.SourceID, &l.Status,
			&l.PostsFound, &l.PostsAdded, &l.ErrorMessage, &l.StartedAt, &l.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &l, nil
}
