package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/arabic-stories-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser registers the user on first contact and reports whether they are new.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) (bool, error) {
	exists, err := s.repository.Exists(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	if exists {
		return false, nil
	}

	created, err := s.repository.Save(ctx, entities.NewUser(userID, chatID))
	if err != nil {
		return false, fmt.Errorf("save user: %w", err)
	}

	return created, nil
}
