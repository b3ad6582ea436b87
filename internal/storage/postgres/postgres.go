package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
)

var sqBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Pgx struct {
	pool   *pgxpool.Pool
	logger logger.Logger
	closed bool
}

func NewPgx(pool *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pool:   pool,
		logger: logger.WithComponent("PostgresStorage"),
	}
}

var _ storage.Adapter = (*Pgx)(nil)

func (p *Pgx) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the pool. Safe to call more than once; pgxpool ignores
// repeated Close calls.
func (p *Pgx) Close() error {
	if p.pool != nil && !p.closed {
		p.pool.Close()
		p.closed = true
	}
	return nil
}
