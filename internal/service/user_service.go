package service

import (
	"GameLibraryAPI/internal/model"
	"GameLibraryAPI/internal/ports"
	"GameLibraryAPI/internal/security"
	"context"
	"fmt"
)

type UserService struct {
	UserRepository ports.UserRepositoryInterface
}

func NewUserService(userRepository ports.UserRepositoryInterface) *UserService {
	return &UserService{UserRepository: userRepository}
}

func (service *UserService) GetProfile(ctx context.Context, userUUID string) (*model.User, error) {
	user, err := service.UserRepository.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	return user, nil
}

// UpdateProfile изменяет только переданные поля; nil означает "не трогать"
func (service *UserService) UpdateProfile(ctx context.Context, userUUID string, name *string, email *string, password *string) (*model.User, error) {
	user, err := service.UserRepository.FindByID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if name != nil {
		user.Name = name
	}
	if email != nil {
		user.Email = *email
	}
	if password != nil {
		passwordHash, err := security.HashPassword(*password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = passwordHash
	}

	if err := service.UserRepository.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
