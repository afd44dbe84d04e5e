package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-catalog-service/internal/models"
	"github.com/pribylovaa/go-catalog-service/internal/storage"

	"github.com/jackc/pgx/v5"
)

// ListProducts возвращает все товары каталога в порядке возрастания ID.
func (s *Storage) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "storage.postgres.ListProducts"

	query := `
		SELECT id, name, COALESCE(description, ''), price, stock
		FROM products
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if scanErr := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Stock,
		); scanErr != nil {
			return nil, fmt.Errorf("%s: %w", op, scanErr)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

// ProductByID находит товар по ID.
func (s *Storage) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	const op = "storage.postgres.ProductByID"

	query := `
		SELECT id, name, COALESCE(description, ''), price, stock
		FROM products
		WHERE id = $1
	`

	var p models.Product
	err := s.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Stock,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &p, nil
}

// SaveProduct создает новый товар в БД.
func (s *Storage) SaveProduct(ctx context.Context, product *models.Product) error {
	const op = "storage.postgres.SaveProduct"

	query := `
		INSERT INTO products(name, description, price, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateProduct полностью обновляет товар по ID.
func (s *Storage) UpdateProduct(ctx context.Context, product *models.Product) error {
	const op = "storage.postgres.UpdateProduct"

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4
		WHERE id = $5
	`

	cmdTag, err := s.db.Exec(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.ID,
	)

	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteProduct удаляет товар по ID.
func (s *Storage) DeleteProduct(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteProduct"

	query := `
		DELETE FROM products
		WHERE id = $1
	`

	cmdTag, err := s.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
