package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-catalog-service/internal/models"
)

// ErrProductFields — обязательные поля товара не заполнены. HTTP 400.
var ErrProductFields = errors.New("name, price and stock are required")

// ListProducts возвращает все товары каталога.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "service.products.ListProducts"

	products, err := s.storage.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

// ProductByID находит товар по ID.
// Отсутствие товара пробрасывается как storage.ErrNotFound.
func (s *Service) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	const op = "service.products.ProductByID"

	product, err := s.storage.ProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return product, nil
}

// CreateProduct создает новый товар. Название обязательно, description
// опционален; price и stock приходят уже провалидированными на границе HTTP.
func (s *Service) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	const op = "service.products.CreateProduct"

	if strings.TrimSpace(product.Name) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrProductFields)
	}

	if err := s.storage.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return product, nil
}

// UpdateProduct полностью обновляет товар по ID.
// Отсутствие товара пробрасывается как storage.ErrNotFound.
func (s *Service) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	const op = "service.products.UpdateProduct"

	if err := s.storage.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return product, nil
}

// DeleteProduct удаляет товар по ID.
// Отсутствие товара пробрасывается как storage.ErrNotFound.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	const op = "service.products.DeleteProduct"

	if err := s.storage.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
