// service содержит бизнес-логику catalog-сервиса:
// регистрацию/аутентификацию пользователей, выпуск/проверку токенов
// и CRUD-операции каталога через интерфейсы из пакета storage.
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно.
//   - Единственное разделяемое состояние процесса — секрет подписи из
//     конфигурации; он читается на старте и не меняется в рантайме.
//   - Ошибки возвращаются и далее маппятся HTTP-слоем на статус-коды
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/pribylovaa/go-catalog-service/internal/cache"
	"github.com/pribylovaa/go-catalog-service/internal/config"
	"github.com/pribylovaa/go-catalog-service/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Сообщение намеренно одно на оба случая (анти-перечисление). HTTP 400.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — access-токен некорректен по формату/подписи или просрочен.
	// Причина наружу не различается. HTTP 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidRefreshToken — refresh-токен отсутствует в хранилище. HTTP 401.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrEmailTaken — e-mail уже занят другим пользователем. HTTP 400.
	ErrEmailTaken = errors.New("email already taken")

	// ErrRefreshTokenCollision — исчерпаны попытки сгенерировать уникальный
	// refresh-токен (практически недостижимо при 40 случайных байтах). HTTP 500.
	ErrRefreshTokenCollision = errors.New("refresh token collision")

	// ErrEmptyName — имя пользователя не задано. HTTP 400.
	ErrEmptyName = errors.New("name is required")

	// ErrInvalidEmail — e-mail имеет некорректный формат. HTTP 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль короче минимальной длины. HTTP 400.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
)

// Service описывает бизнес-логику catalog-сервиса.
type Service struct {
	storage storage.Storage
	cfg     config.AuthConfig
	rcache  cache.RefreshCache // может быть nil, если кэш не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetRefreshCache устанавливает кэш refresh-токенов (опционально).
func (s *Service) SetRefreshCache(c cache.RefreshCache) {
	s.rcache = c
}
