package service

import (
	"GameLibraryAPI/internal/model"
	"GameLibraryAPI/internal/ports"
	"GameLibraryAPI/internal/security"
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AuthenticationService выпускает пары токенов и управляет единственным
// сохраненным рефреш токеном пользователя. Выпуск пары и запись рефреш
// токена в БД — один логический шаг: если запись не удалась, пара
// вызывающему не возвращается
type AuthenticationService struct {
	UserRepository ports.UserRepositoryInterface
	JWTService     ports.JWTServiceInterface
}

func NewAuthenticationService(userRepository ports.UserRepositoryInterface, jwtService ports.JWTServiceInterface) *AuthenticationService {
	return &AuthenticationService{
		UserRepository: userRepository,
		JWTService:     jwtService,
	}
}

func (service *AuthenticationService) Register(ctx context.Context, email string, password string, name *string) (*model.User, *model.TokensPair, error) {
	existing, err := service.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка проверки email: %w", err)
	}
	if existing != nil {
		return nil, nil, ErrEmailAlreadyExists
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Id:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
	}
	if err := service.UserRepository.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	tokensPair, err := service.issueAndPersist(ctx, user.Id)
	if err != nil {
		return nil, nil, err
	}

	return user, tokensPair, nil
}

func (service *AuthenticationService) Login(ctx context.Context, email string, password string) (*model.User, *model.TokensPair, error) {
	user, err := service.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if security.ComparePassword(user.PasswordHash, password) == false {
		return nil, nil, ErrInvalidCredentials
	}

	tokensPair, err := service.issueAndPersist(ctx, user.Id)
	if err != nil {
		return nil, nil, err
	}

	return user, tokensPair, nil
}

// Refresh выпускает новую пару для уже проверенной middleware личности.
// Запись нового рефреш токена затирает предыдущий — это единственное
// место ротации, старый токен после нее отклоняется на проверке в БД
func (service *AuthenticationService) Refresh(ctx context.Context, userUUID string) (*model.TokensPair, error) {
	return service.issueAndPersist(ctx, userUUID)
}

// Logout сбрасывает сохраненный рефреш токен в NULL: все последующие
// попытки обновления отклоняются независимо от валидности подписи
func (service *AuthenticationService) Logout(ctx context.Context, userUUID string) error {
	if err := service.UserRepository.UpdateRefreshToken(ctx, userUUID, nil); err != nil {
		return fmt.Errorf("не удалось сбросить рефреш токен: %w", err)
	}

	return nil
}

func (service *AuthenticationService) issueAndPersist(ctx context.Context, userUUID string) (*model.TokensPair, error) {
	tokensPair, err := service.JWTService.GenerateTokenPair(userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	if err := service.UserRepository.UpdateRefreshToken(ctx, userUUID, &tokensPair.RefreshToken); err != nil {
		return nil, fmt.Errorf("не удалось сохранить рефреш токен: %w", err)
	}

	return tokensPair, nil
}
