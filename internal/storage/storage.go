package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-catalog-service/internal/models"
)

//go:generate mockgen -source=storage.go -destination=../../mocks/mock_storage.go -package=mocks

var (
	// ErrNotFound — запись не найдена (пользователь/токен/товар).
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email/refresh-token).
	ErrAlreadyExists = errors.New("already exists")
)

// UserStorage выполняет операции над пользователями.
type UserStorage interface {
	// SaveUser создает нового пользователя и проставляет сгенерированный ID.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// RefreshTokenStorage выполняет операции над refresh-токенами.
type RefreshTokenStorage interface {
	// SaveRefreshToken сохраняет новый refresh-токен.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error
	// UserIDByRefreshToken находит владельца refresh-токена.
	UserIDByRefreshToken(ctx context.Context, token string) (int64, error)
}

// ProductStorage выполняет операции над каталогом товаров.
type ProductStorage interface {
	// ListProducts возвращает все товары каталога.
	ListProducts(ctx context.Context) ([]models.Product, error)
	// ProductByID находит товар по ID.
	ProductByID(ctx context.Context, id int64) (*models.Product, error)
	// SaveProduct создает новый товар и проставляет сгенерированный ID.
	SaveProduct(ctx context.Context, product *models.Product) error
	// UpdateProduct полностью обновляет товар по ID.
	UpdateProduct(ctx context.Context, product *models.Product) error
	// DeleteProduct удаляет товар по ID.
	DeleteProduct(ctx context.Context, id int64) error
}

// Storage задает контракт работы с БД.
type Storage interface {
	UserStorage
	RefreshTokenStorage
	ProductStorage
	Close()
}
