package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upReelsAndRunLogs, downReelsAndRunLogs)
}

func upReelsAndRunLogs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE reels (
		id BIGSERIAL PRIMARY KEY,
		project_id BIGINT NOT NULL REFERENCES projects(id),
		source_type VARCHAR NOT NULL,
		source_id BIGINT NOT NULL,
		url VARCHAR NOT NULL,
		caption TEXT NOT NULL DEFAULT '',
		owner_username VARCHAR NOT NULL DEFAULT '',
		view_count INTEGER NOT NULL DEFAULT 0,
		like_count INTEGER NOT NULL DEFAULT 0,
		comment_count INTEGER NOT NULL DEFAULT 0,
		published_at TIMESTAMP WITH TIME ZONE,
		fetched_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		is_processed BOOLEAN NOT NULL DEFAULT FALSE,
		CONSTRAINT uq_reels_project_url UNIQUE (project_id, url)
	);

	CREATE TABLE parsing_run_logs (
		id BIGSERIAL PRIMARY KEY,
		run_id VARCHAR NOT NULL UNIQUE,
		project_id BIGINT NOT NULL,
		source_type VARCHAR NOT NULL,
		source_id BIGINT NOT NULL,
		status VARCHAR NOT NULL,
		posts_found INTEGER NOT NULL DEFAULT 0,
		posts_added INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		ended_at TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX idx_reels_source ON reels(source_type, source_id);
	CREATE INDEX idx_run_logs_source ON parsing_run_logs(source_type, source_id);
	`)
	return err
}

func downReelsAndRunLogs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE parsing_run_logs;
	DROP TABLE reels;
	`)
	return err
}
