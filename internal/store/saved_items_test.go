package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"weexpense/internal/models"
)

func TestUpdateSavedItemOverwrites(t *testing.T) {
	s, mock := newMockStore(t)

	price := decimal.RequireFromString("4.99")
	mock.ExpectExec("UPDATE saved_items SET name = ?, default_price = ? WHERE id = ? AND user_id = ?").
		WithArgs("Coffee", price, "item-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	item, err := s.UpdateSavedItem(context.Background(), "item-1", "user-1", models.SavedItemCreate{
		Name:         "Coffee",
		DefaultPrice: price,
	})
	require.NoError(t, err)
	require.Equal(t, "item-1", item.ID)
	require.Equal(t, "Coffee", item.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSavedItemNoOpStillSucceeds(t *testing.T) {
	s, mock := newMockStore(t)

	price := decimal.RequireFromString("4.99")
	mock.ExpectExec("UPDATE saved_items SET name = ?, default_price = ? WHERE id = ? AND user_id = ?").
		WithArgs("Coffee", price, "item-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS(SELECT 1 FROM saved_items WHERE id = ? AND user_id = ?)").
		WithArgs("item-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	item, err := s.UpdateSavedItem(context.Background(), "item-1", "user-1", models.SavedItemCreate{
		Name:         "Coffee",
		DefaultPrice: price,
	})
	require.NoError(t, err)
	require.Equal(t, "Coffee", item.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSavedItemForeignNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	price := decimal.RequireFromString("4.99")
	mock.ExpectExec("UPDATE saved_items SET name = ?, default_price = ? WHERE id = ? AND user_id = ?").
		WithArgs("Coffee", price, "item-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS(SELECT 1 FROM saved_items WHERE id = ? AND user_id = ?)").
		WithArgs("item-1", "intruder").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := s.UpdateSavedItem(context.Background(), "item-1", "intruder", models.SavedItemCreate{
		Name:         "Coffee",
		DefaultPrice: price,
	})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSavedItemReturnsSnapshot(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, user_id, name, default_price FROM saved_items WHERE id = ? AND user_id = ?").
		WithArgs("item-1", "user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "default_price"}).
			AddRow("item-1", "user-1", "Coffee", "4.99"))
	mock.ExpectExec("DELETE FROM saved_items WHERE id = ? AND user_id = ?").
		WithArgs("item-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	item, err := s.DeleteSavedItem(context.Background(), "item-1", "user-1")
	require.NoError(t, err)
	require.Equal(t, "Coffee", item.Name)
	require.Equal(t, "4.99", item.DefaultPrice.StringFixed(2))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSavedItemForeignNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT id, user_id, name, default_price FROM saved_items WHERE id = ? AND user_id = ?").
		WithArgs("item-1", "intruder").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "default_price"}))

	_, err := s.DeleteSavedItem(context.Background(), "item-1", "intruder")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
