package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-catalog-service/internal/models"
	"github.com/pribylovaa/go-catalog-service/internal/storage"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SaveRefreshToken сохраняет новый refresh-токен в БД.
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	const op = "storage.postgres.SaveRefreshToken"

	query := `
		INSERT INTO refresh_tokens(token, user_id)
		VALUES ($1, $2)
		RETURNING id
	`

	err := s.db.QueryRow(ctx, query,
		token.Token,
		token.UserID,
	).Scan(&token.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserIDByRefreshToken находит владельца refresh-токена.
func (s *Storage) UserIDByRefreshToken(ctx context.Context, token string) (int64, error) {
	const op = "storage.postgres.UserIDByRefreshToken"

	query := `
		SELECT user_id
		FROM refresh_tokens
		WHERE token = $1
	`

	var userID int64
	err := s.db.QueryRow(ctx, query, token).Scan(&userID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return userID, nil
}
