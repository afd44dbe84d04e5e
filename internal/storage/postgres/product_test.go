package postgres

import (
	"context"
	"testing"

	"github.com/pribylovaa/go-catalog-service/internal/models"
	"github.com/pribylovaa/go-catalog-service/internal/storage"

	"github.com/stretchr/testify/require"
)

// Полный цикл: создание, чтение, список, обновление, удаление.
func TestIntegration_Products_CRUD(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	p := &models.Product{
		Name:        "Widget",
		Description: "A useful widget",
		Price:       9.99,
		Stock:       5,
	}
	require.NoError(t, st.SaveProduct(ctx, p))
	require.NotZero(t, p.ID)

	got, err := st.ProductByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Widget", got.Name)
	require.Equal(t, "A useful widget", got.Description)
	require.InDelta(t, 9.99, got.Price, 0.001)
	require.Equal(t, int32(5), got.Stock)

	list, err := st.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got.Name = "Widget v2"
	got.Price = 19.99
	require.NoError(t, st.UpdateProduct(ctx, got))

	updated, err := st.ProductByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Widget v2", updated.Name)
	require.InDelta(t, 19.99, updated.Price, 0.001)

	require.NoError(t, st.DeleteProduct(ctx, p.ID))

	_, err = st.ProductByID(ctx, p.ID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// Список отсортирован по возрастанию ID; пустой каталог даёт пустой срез, не nil.
func TestIntegration_ListProducts_OrderAndEmpty(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	list, err := st.ListProducts(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		require.NoError(t, st.SaveProduct(ctx, &models.Product{Name: name, Price: 1, Stock: 1}))
	}

	list, err = st.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "Alpha", list[0].Name)
	require.Equal(t, "Gamma", list[2].Name)
}

// Операции над несуществующим товаром: ожидаем storage.ErrNotFound.
func TestIntegration_Products_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	_, err := st.ProductByID(ctx, 999999)
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = st.UpdateProduct(ctx, &models.Product{ID: 999999, Name: "Ghost", Price: 1, Stock: 1})
	require.ErrorIs(t, err, storage.ErrNotFound)

	err = st.DeleteProduct(ctx, 999999)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
