package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"weexpense/internal/models"
)

func (s *Store) CreateSavedItem(ctx context.Context, userID string, draft models.SavedItemCreate) (*models.SavedItem, error) {
	item := &models.SavedItem{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         draft.Name,
		DefaultPrice: draft.DefaultPrice,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO saved_items (id, user_id, name, default_price) VALUES (?, ?, ?, ?)",
		item.ID, item.UserID, item.Name, item.DefaultPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert saved item: %w", err)
	}

	return item, nil
}

func (s *Store) ListSavedItems(ctx context.Context, userID string, skip, limit int) ([]models.SavedItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, default_price FROM saved_items WHERE user_id = ? LIMIT ? OFFSET ?",
		userID, limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved items: %w", err)
	}
	defer rows.Close()

	items := []models.SavedItem{}
	for rows.Next() {
		var item models.SavedItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.DefaultPrice); err != nil {
			return nil, fmt.Errorf("failed to scan saved item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved items: %w", err)
	}

	return items, nil
}

// UpdateSavedItem overwrites the whole record. Unlike expense updates this is
// not a sparse patch; the client always sends name and default_price.
func (s *Store) UpdateSavedItem(ctx context.Context, itemID, userID string, draft models.SavedItemCreate) (*models.SavedItem, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE saved_items SET name = ?, default_price = ? WHERE id = ? AND user_id = ?",
		draft.Name, draft.DefaultPrice, itemID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update saved item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// The overwrite may be a no-op on identical values; distinguish a
		// genuinely missing (or foreign) row before reporting not found.
		var exists bool
		err := s.db.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM saved_items WHERE id = ? AND user_id = ?)", itemID, userID,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to verify saved item: %w", err)
		}
		if !exists {
			return nil, ErrNotFound
		}
	}

	return &models.SavedItem{
		ID:           itemID,
		UserID:       userID,
		Name:         draft.Name,
		DefaultPrice: draft.DefaultPrice,
	}, nil
}

func (s *Store) DeleteSavedItem(ctx context.Context, itemID, userID string) (*models.SavedItem, error) {
	var item models.SavedItem
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, default_price FROM saved_items WHERE id = ? AND user_id = ?",
		itemID, userID,
	).Scan(&item.ID, &item.UserID, &item.Name, &item.DefaultPrice)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query saved item: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM saved_items WHERE id = ? AND user_id = ?", itemID, userID); err != nil {
		return nil, fmt.Errorf("failed to delete saved item: %w", err)
	}

	return &item, nil
}
