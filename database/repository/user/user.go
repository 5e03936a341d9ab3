package userRepo

import (
	"context"
	"errors"

	"streambook/models"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserRepository defines access to user accounts and their profile fields.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req models.ProfileUpdateRequest) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}
