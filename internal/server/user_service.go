package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/lead-prospector/internal/config"
	"github.com/jonathan/lead-prospector/internal/types"
)

// UserStore is the database surface the user service needs. *db.DB
// satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash, photoURL string) (*types.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	GetUserCredentials(ctx context.Context, email string) (*types.User, string, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, name, photoURL string) (*types.User, error)
}

// UserService provides business logic for user account operations
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	existing, _, err := s.store.GetUserCredentials(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, req.Name, req.Email, passwordHash, req.PhotoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns the profile
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, hash, err := s.store.GetUserCredentials(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Security: same generic error whether the email is unknown or the
	// password is wrong
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, hash) {
		return nil, &ErrInvalidCredentials{}
	}

	return user, nil
}

// GetProfile returns a user's profile
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return user, nil
}

// UpdateProfile updates a user's mutable profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.User, error) {
	user, err := s.store.UpdateUserProfile(ctx, userID, req.Name, req.PhotoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return user, nil
}
