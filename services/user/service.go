package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	userRepo "streambook/database/repository/user"
	"streambook/models"
	"streambook/services/storage"
	"streambook/utils"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the email or password is wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

const tokenLifetime = 24 * time.Hour

// UserService covers sign-in and the settings page: profile fields, password
// change, and image uploads.
type UserService interface {
	SignIn(ctx context.Context, email, password string) (string, *models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UploadProfileImage(ctx context.Context, userID, localFilePath, kind string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo    userRepo.UserRepository
	Storage storage.StorageService
}

// SignIn verifies credentials and issues a JWT.
func (s *DefaultUserService) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := utils.GenerateToken(u.ID, u.Email, tokenLifetime)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, u, nil
}

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdateRequest) (*models.User, error) {
	return s.Repo.UpdateProfile(ctx, userID, req)
}

// ChangePassword re-verifies the current password before storing a new hash.
func (s *DefaultUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.Repo.UpdatePasswordHash(ctx, userID, string(hash))
}

// UploadProfileImage stores an avatar or cover image and records its URL;
// kind is "avatar" or "cover".
func (s *DefaultUserService) UploadProfileImage(ctx context.Context, userID, localFilePath, kind string) (*models.User, error) {
	url, err := s.Storage.UploadImage(ctx, localFilePath, "profiles/"+userID)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s image: %w", kind, err)
	}

	var req models.ProfileUpdateRequest
	switch kind {
	case "cover":
		req.CoverURL = &url
	default:
		req.AvatarURL = &url
	}
	return s.Repo.UpdateProfile(ctx, userID, req)
}
