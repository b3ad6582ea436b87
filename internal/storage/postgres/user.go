package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
)

func (p *Pgx) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query, args, err := sqBuilder.
		Select("id", "telegram_id", "username", "first_name", "last_name", "is_active", "created_at").
		From("users").
		Where(sq.Eq{"telegram_id": telegramID}).
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	var u domain.User
	err = p.pool.QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

func (p *Pgx) FindOrCreateUser(ctx context.Context, telegramID int64, profile domain.UserProfile) (*domain.User, error) {
	existing, err := p.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	query, args, err := sqBuilder.
		Insert("users").
		Columns("telegram_id", "username", "first_name", "last_name").
		Values(telegramID, profile.Username, profile.FirstName, profile.LastName).
		Suffix("ON CONFLICT (telegram_id) DO UPDATE SET username = EXCLUDED.username").
		Suffix("RETURNING id, telegram_id, username, first_name, last_name, is_active, created_at").
		ToSql()
	if err != nil {
		return nil, storage.ErrBadQuery
	}

	var u domain.User
	err = p.pool.QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &u, nil
}
