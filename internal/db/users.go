package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/lead-prospector/internal/types"
)

// CreateUser inserts a new user and returns its profile.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash, photoURL string) (*types.User, error) {
	user := &types.User{ID: uuid.New()}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, photo_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING name, email, photo_url, created_at, updated_at`,
		user.ID, name, email, passwordHash, photoURL,
	).Scan(&user.Name, &user.Email, &user.PhotoURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByID returns a user profile, or nil when not found.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	user := &types.User{ID: id}
	err := db.pool.QueryRow(ctx,
		`SELECT name, email, photo_url, created_at, updated_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.Name, &user.Email, &user.PhotoURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserCredentials returns a user profile plus stored password hash for
// login verification, or nils when the email is unknown.
func (db *DB) GetUserCredentials(ctx context.Context, email string) (*types.User, string, error) {
	user := &types.User{}
	var hash string
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, photo_url, password_hash, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PhotoURL, &hash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, hash, nil
}

// UpdateUserProfile updates the mutable profile fields. Empty values leave
// the stored value unchanged.
func (db *DB) UpdateUserProfile(ctx context.Context, id uuid.UUID, name, photoURL string) (*types.User, error) {
	user := &types.User{ID: id}
	err := db.pool.QueryRow(ctx,
		`UPDATE users
		 SET name = COALESCE(NULLIF($2, ''), name),
		     photo_url = COALESCE(NULLIF($3, ''), photo_url),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING name, email, photo_url, created_at, updated_at`,
		id, name, photoURL,
	).Scan(&user.Name, &user.Email, &user.PhotoURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
