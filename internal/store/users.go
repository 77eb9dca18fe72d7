package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"weexpense/internal/models"
)

// CreateUser inserts a new user row. The caller supplies the already-hashed
// credential; plaintext never reaches this package.
func (s *Store) CreateUser(ctx context.Context, email, hashedPassword, username, subtitle string) (*models.User, error) {
	user := &models.User{
		ID:             uuid.New().String(),
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
		Username:       username,
		Subtitle:       subtitle,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, hashed_password, is_active, username, subtitle) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.HashedPassword, user.IsActive, user.Username, user.Subtitle,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, email, hashed_password, is_active, username, subtitle, profile_image_data FROM users WHERE email = ?", email)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "SELECT id, email, hashed_password, is_active, username, subtitle, profile_image_data FROM users WHERE id = ?", id)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.HashedPassword, &user.IsActive, &user.Username, &user.Subtitle, &user.ProfileImageData)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// UpdateProfile applies a sparse patch over username, subtitle and profile
// image. Email and credential hash are not touchable from here.
func (s *Store) UpdateProfile(ctx context.Context, userID string, patch models.UserUpdate) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Subtitle != nil {
		user.Subtitle = *patch.Subtitle
	}
	if patch.ProfileImageData != nil {
		user.ProfileImageData = patch.ProfileImageData
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE users SET username = ?, subtitle = ?, profile_image_data = ? WHERE id = ?",
		user.Username, user.Subtitle, user.ProfileImageData, user.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return user, nil
}
