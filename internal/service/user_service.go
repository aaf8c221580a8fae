package service

import (
	"context"
	"daily_trivia_backend/internal/model"
	"daily_trivia_backend/internal/repository"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Storage:  storage,
	}
}

func (s *UserService) Profile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

// UploadAvatar stores the image under a random object name and saves the
// resulting URL on the user.
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("avatars/%s%s", uuid.New().String(), filepath.Ext(filename))

	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}

	if err := s.UserRepo.UpdateAvatar(userID, url); err != nil {
		return "", err
	}
	return url, nil
}
