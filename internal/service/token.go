package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/pribylovaa/go-catalog-service/internal/models"
	"github.com/pribylovaa/go-catalog-service/internal/pkg/log"
	"github.com/pribylovaa/go-catalog-service/internal/storage"

	"github.com/golang-jwt/jwt/v5"
)

// refreshTokenBytes — размер случайной части refresh-токена.
// 40 байт -> 80 hex-символов.
const refreshTokenBytes = 40

// refreshCacheTTL ограничивает время жизни записи в кэше, а не токена:
// сами токены бессрочны, промах кэша ведёт к запросу в БД.
const refreshCacheTTL = 24 * time.Hour

// Claims — аутентифицированная личность, извлечённая из access-токена.
//
// Email пуст для токенов, выпущенных через refresh: после обновления
// access-токен несёт только идентификатор пользователя.
type Claims struct {
	UserID int64
	Email  string
}

type accessClaims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// generateAccessToken генерирует access-токен.
// Пустой email не включается в клеймы.
func (s *Service) generateAccessToken(ctx context.Context, userID int64, email string, now time.Time) (string, error) {
	const op = "service.token.generateAccessToken"

	lg := log.From(ctx)

	claims := accessClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		lg.Error("access_token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// validateAccessToken валидирует access-токен.
//
// Любой дефект — битый формат, чужая подпись, истёкший срок — схлопывается
// в один ErrInvalidToken: вызывающему не сообщается, какая проверка не прошла.
func (s *Service) validateAccessToken(tokenStr string) (Claims, error) {
	const op = "service.token.validateAccessToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	if err != nil {
		return Claims{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return Claims{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// generateRefreshToken создает новый refresh-токен и сохраняет его в БД.
func (s *Service) generateRefreshToken(ctx context.Context, userID int64) (string, error) {
	const (
		op          = "service.token.generateRefreshToken"
		maxAttempts = 5
	)

	lg := log.From(ctx)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		b := make([]byte, refreshTokenBytes)
		if _, err := rand.Read(b); err != nil {
			lg.Error("refresh_rand_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", fmt.Errorf("%s: %w", op, err)
		}
		plain := hex.EncodeToString(b)

		token := &models.RefreshToken{
			Token:  plain,
			UserID: userID,
		}

		if err := s.storage.SaveRefreshToken(ctx, token); err != nil {
			if errors.Is(err, storage.ErrAlreadyExists) {
				// Редкая коллизия — пробуем сгенерировать заново.
				continue
			}

			lg.Error("save_refresh_token_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return "", fmt.Errorf("%s: %w", op, err)
		}

		s.cacheRefreshToken(ctx, plain, userID)

		return plain, nil
	}

	lg.Error("refresh_collision_exceeded",
		slog.String("op", op),
	)

	return "", fmt.Errorf("%s: %w", op, ErrRefreshTokenCollision)
}

// RefreshToken выпускает новый access-токен по refresh-токену.
//
// Выпущенный здесь access-токен не несёт email-клейм: в нём только
// идентификатор пользователя из хранилища. Клиенты, полагающиеся на email
// после refresh, должны переносить его отсутствие.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	const op = "service.token.RefreshToken"

	userID, err := s.lookupRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	accessToken, err := s.generateAccessToken(ctx, userID, "", time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return accessToken, nil
}

// lookupRefreshToken находит владельца refresh-токена: сперва в кэше,
// затем в хранилище. Отсутствующий токен — ErrInvalidRefreshToken.
func (s *Service) lookupRefreshToken(ctx context.Context, plain string) (int64, error) {
	const op = "service.token.lookupRefreshToken"

	lg := log.From(ctx)

	if s.rcache != nil {
		uid, ok, err := s.rcache.Get(ctx, plain)
		if err != nil {
			// Кэш не источник истины: деградируем до БД.
			lg.Warn("refresh_cache_get_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		} else if ok {
			return uid, nil
		}
	}

	userID, err := s.storage.UserIDByRefreshToken(ctx, plain)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("refresh_lookup_not_found",
				slog.String("op", op),
			)
			return 0, fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
		}

		lg.Error("refresh_lookup_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.cacheRefreshToken(ctx, plain, userID)

	return userID, nil
}

// cacheRefreshToken кладёт токен в кэш, если тот сконфигурирован.
// Ошибка кэша не фатальна.
func (s *Service) cacheRefreshToken(ctx context.Context, plain string, userID int64) {
	const op = "service.token.cacheRefreshToken"

	if s.rcache == nil {
		return
	}

	if err := s.rcache.Set(ctx, plain, userID, refreshCacheTTL); err != nil {
		log.From(ctx).Warn("refresh_cache_set_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}
