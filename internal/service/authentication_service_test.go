package service

import (
	"GameLibraryAPI/config"
	"GameLibraryAPI/internal/model"
	"GameLibraryAPI/internal/security"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByIDAndRefreshToken(ctx context.Context, id string, refreshToken string) (*model.User, error) {
	args := m.Called(ctx, id, refreshToken)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, id string, refreshToken *string) error {
	return m.Called(ctx, id, refreshToken).Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func testJWTService(t *testing.T) *security.JWTService {
	t.Helper()

	jwtService, err := security.NewJWTService(config.JWTConfig{
		AccessSecret:    "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  "15m",
		RefreshTokenTTL: "168h",
	})
	require.NoError(t, err)
	return jwtService
}

// 1
func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)

	authService := NewAuthenticationService(mockRepo, testJWTService(t))

	mockRepo.On("FindByEmail", ctx, "a@x.com").Return(nil, nil)
	mockRepo.On("Create", ctx, mock.Anything).Return(nil)

	var persistedToken *string
	mockRepo.On("UpdateRefreshToken", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persistedToken, _ = args.Get(2).(*string)
		}).
		Return(nil)

	user, tokensPair, err := authService.Register(ctx, "a@x.com", "secret1", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, user.Id)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	// сохраненный рефреш токен совпадает с выданным клиенту
	require.NotNil(t, persistedToken)
	assert.Equal(t, tokensPair.RefreshToken, *persistedToken)
}

// 2
func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)

	authService := NewAuthenticationService(mockRepo, testJWTService(t))

	mockRepo.On("FindByEmail", ctx, "a@x.com").Return(&model.User{Id: "existing"}, nil)

	_, _, err := authService.Register(ctx, "a@x.com", "secret1", nil)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 3
func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)

	authService := NewAuthenticationService(mockRepo, testJWTService(t))

	mockRepo.On("FindByEmail", ctx, "a@x.com").Return(nil, nil)

	_, _, err := authService.Login(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	mockRepo.AssertNotCalled(t, "UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

// 4
func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)

	authService := NewAuthenticationService(mockRepo, testJWTService(t))

	passwordHash, err := security.HashPassword("correct-password")
	require.NoError(t, err)

	mockRepo.On("FindByEmail", ctx, "a@x.com").
		Return(&model.User{Id: "user-uuid", Email: "a@x.com", PasswordHash: passwordHash}, nil)

	_, _, err = authService.Login(ctx, "a@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	mockRepo.AssertNotCalled(t, "UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything)
}

// 5
func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)

	authService := NewAuthenticationService(mockRepo, testJWTService(t))

	passwordHash, err := security.HashPassword("secret1")
	require.NoError(t, err)

	mockRepo.On("FindByEmail", ctx, "a@x.com").
		Return(&model.User{Id: "user-uuid", Email: "a@x.com", PasswordHash: passwordHash}, nil)
	mockRepo.On("UpdateRefreshToken", ctx, "user-uuid", mock.Anything).Return(nil)

	user, tokensPair, err := authService.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "user-uuid", user.Id)
	assert.NotEmpty(t, tokensPair.AccessToken)
	assert.NotEmpty(t, tokensPair.RefreshToken)
}

// 6
func TestRefresh_RotatesToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)

	authService := NewAuthenticationService(mockRepo, testJWTService(t))

	mockRepo.On("UpdateRefreshToken", ctx, "user-uuid", mock.Anything).Return(nil)

	first, err := authService.Refresh(ctx, "user-uuid")
	require.NoError(t, err)
	second, err := authService.Refresh(ctx, "user-uuid")
	require.NoError(t, err)

	// каждая ротация выпускает новый рефреш токен и затирает предыдущий
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	mockRepo.AssertNumberOfCalls(t, "UpdateRefreshToken", 2)
}

// 7
func TestRefresh_PersistFails(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)

	authService := NewAuthenticationService(mockRepo, testJWTService(t))

	mockRepo.On("UpdateRefreshToken", ctx, "user-uuid", mock.Anything).
		Return(fmt.Errorf("database error"))

	// пара не возвращается, если рефреш токен не удалось сохранить
	tokensPair, err := authService.Refresh(ctx, "user-uuid")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "не удалось сохранить рефреш токен")
	assert.Nil(t, tokensPair)
}

// 8
func TestLogout_ClearsStoredToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)

	authService := NewAuthenticationService(mockRepo, testJWTService(t))

	mockRepo.On("UpdateRefreshToken", ctx, "user-uuid", (*string)(nil)).Return(nil)

	err := authService.Logout(ctx, "user-uuid")
	require.NoError(t, err)
	mockRepo.AssertCalled(t, "UpdateRefreshToken", ctx, "user-uuid", (*string)(nil))
}
