package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"weexpense/internal/models"
)

func (s *Store) CreateFriend(ctx context.Context, userID string, draft models.FriendCreate) (*models.Friend, error) {
	friend := &models.Friend{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          draft.Name,
		Initials:      draft.Initials,
		GradientStart: draft.GradientStart,
		GradientEnd:   draft.GradientEnd,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO friends (id, user_id, name, initials, gradient_start, gradient_end) VALUES (?, ?, ?, ?, ?, ?)",
		friend.ID, friend.UserID, friend.Name, friend.Initials, friend.GradientStart, friend.GradientEnd,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert friend: %w", err)
	}

	return friend, nil
}

func (s *Store) ListFriends(ctx context.Context, userID string, skip, limit int) ([]models.Friend, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, initials, gradient_start, gradient_end FROM friends WHERE user_id = ? LIMIT ? OFFSET ?",
		userID, limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query friends: %w", err)
	}
	defer rows.Close()

	friends := []models.Friend{}
	for rows.Next() {
		var friend models.Friend
		if err := rows.Scan(&friend.ID, &friend.UserID, &friend.Name, &friend.Initials, &friend.GradientStart, &friend.GradientEnd); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, friend)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}

	return friends, nil
}
