package security

import (
	"GameLibraryAPI/internal/apiresponse"
	"GameLibraryAPI/internal/model"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserFinder) FindByIDAndRefreshToken(ctx context.Context, id string, refreshToken string) (*model.User, error) {
	args := m.Called(ctx, id, refreshToken)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func testUser() *model.User {
	name := "Тестовый Пользователь"
	return &model.User{
		Id:           "user-uuid",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		Name:         &name,
	}
}

type probeHandler struct {
	called   bool
	authUser *model.AuthUser
	hasUser  bool
}

func (p *probeHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	p.called = true
	p.authUser, p.hasUser = CurrentUser(request.Context())
	writer.WriteHeader(http.StatusOK)
}

func decodeErrorResponse(t *testing.T, recorder *httptest.ResponseRecorder) *apiresponse.ErrorResponse {
	t.Helper()

	var response apiresponse.ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	return &response
}

// 1
func TestAuthenticate_NoHeader(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())
	mockFinder := new(MockUserFinder)
	probe := &probeHandler{}

	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	recorder := httptest.NewRecorder()
	authMiddleware.Authenticate(probe).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, probe.called)
	assert.Equal(t, ErrNoToken.Error(), decodeErrorResponse(t, recorder).Message)
}

// 2
func TestAuthenticate_GarbageToken(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())
	mockFinder := new(MockUserFinder)
	probe := &probeHandler{}

	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer garbage")
	recorder := httptest.NewRecorder()
	authMiddleware.Authenticate(probe).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, probe.called)
	assert.Equal(t, ErrTokenInvalid.Error(), decodeErrorResponse(t, recorder).Message)
	mockFinder.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// 3
func TestAuthenticate_ExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	jwtService := newTestJWTService(t, cfg)

	expiredCfg := cfg
	expiredCfg.AccessTokenTTL = "-1m"
	expiredService := newTestJWTService(t, expiredCfg)

	expiredToken, err := expiredService.GenerateAccessToken("user-uuid")
	require.NoError(t, err)

	mockFinder := new(MockUserFinder)
	probe := &probeHandler{}
	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+expiredToken)
	recorder := httptest.NewRecorder()
	authMiddleware.Authenticate(probe).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, probe.called)
	assert.Equal(t, ErrTokenExpired.Error(), decodeErrorResponse(t, recorder).Message)
}

// 4
func TestAuthenticate_UserNotFound(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())

	token, err := jwtService.GenerateAccessToken("user-uuid")
	require.NoError(t, err)

	mockFinder := new(MockUserFinder)
	mockFinder.On("FindByID", mock.Anything, "user-uuid").Return(nil, nil)

	probe := &probeHandler{}
	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	authMiddleware.Authenticate(probe).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, probe.called)
	assert.Equal(t, ErrUserNotFound.Error(), decodeErrorResponse(t, recorder).Message)
}

// 5
func TestAuthenticate_Success(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())

	token, err := jwtService.GenerateAccessToken("user-uuid")
	require.NoError(t, err)

	mockFinder := new(MockUserFinder)
	mockFinder.On("FindByID", mock.Anything, "user-uuid").Return(testUser(), nil)

	probe := &probeHandler{}
	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	authMiddleware.Authenticate(probe).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, probe.called)
	require.True(t, probe.hasUser)
	assert.Equal(t, "user-uuid", probe.authUser.Id)
	assert.Equal(t, "a@x.com", probe.authUser.Email)
}

// 6
func TestOptionalAuth_NoHeader(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())
	mockFinder := new(MockUserFinder)
	probe := &probeHandler{}

	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	request := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	recorder := httptest.NewRecorder()
	authMiddleware.OptionalAuth(probe).ServeHTTP(recorder, request)

	// обработчик вызывается, личность не прикреплена
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, probe.called)
	assert.False(t, probe.hasUser)
}

// 7
func TestOptionalAuth_BadToken(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())
	mockFinder := new(MockUserFinder)
	probe := &probeHandler{}

	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	request := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	request.Header.Set("Authorization", "Bearer garbage")
	recorder := httptest.NewRecorder()
	authMiddleware.OptionalAuth(probe).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, probe.called)
	assert.False(t, probe.hasUser)
}

// 8
func TestVerifyRefreshToken_MissingToken(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())
	mockFinder := new(MockUserFinder)
	probe := &probeHandler{}

	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	request := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBufferString(`{}`))
	recorder := httptest.NewRecorder()
	authMiddleware.VerifyRefreshToken(probe).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, probe.called)
}

// 9
func TestVerifyRefreshToken_ExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	jwtService := newTestJWTService(t, cfg)

	expiredCfg := cfg
	expiredCfg.RefreshTokenTTL = "-1m"
	expiredService := newTestJWTService(t, expiredCfg)

	expiredToken, err := expiredService.GenerateRefreshToken("user-uuid")
	require.NoError(t, err)

	mockFinder := new(MockUserFinder)
	probe := &probeHandler{}
	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	body, err := json.Marshal(&RefreshTokenRequest{RefreshToken: expiredToken})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(body))
	recorder := httptest.NewRecorder()
	authMiddleware.VerifyRefreshToken(probe).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, probe.called)
	assert.Equal(t, ErrRefreshTokenExpired.Error(), decodeErrorResponse(t, recorder).Message)
}

// 10
func TestVerifyRefreshToken_StoredMismatch(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())

	// подпись токена верна, но в БД сохранено другое значение —
	// токен вытеснен ротацией или отозван
	refreshToken, err := jwtService.GenerateRefreshToken("user-uuid")
	require.NoError(t, err)

	mockFinder := new(MockUserFinder)
	mockFinder.On("FindByIDAndRefreshToken", mock.Anything, "user-uuid", refreshToken).Return(nil, nil)

	probe := &probeHandler{}
	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	body, err := json.Marshal(&RefreshTokenRequest{RefreshToken: refreshToken})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(body))
	recorder := httptest.NewRecorder()
	authMiddleware.VerifyRefreshToken(probe).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, probe.called)
	assert.Equal(t, ErrRefreshTokenInvalid.Error(), decodeErrorResponse(t, recorder).Message)
}

// 11
func TestVerifyRefreshToken_Success(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())

	refreshToken, err := jwtService.GenerateRefreshToken("user-uuid")
	require.NoError(t, err)

	user := testUser()
	user.RefreshToken = &refreshToken

	mockFinder := new(MockUserFinder)
	mockFinder.On("FindByIDAndRefreshToken", mock.Anything, "user-uuid", refreshToken).Return(user, nil)

	probe := &probeHandler{}
	authMiddleware := NewAuthMiddleware(jwtService, mockFinder, nil)

	body, err := json.Marshal(&RefreshTokenRequest{RefreshToken: refreshToken})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(body))
	recorder := httptest.NewRecorder()
	authMiddleware.VerifyRefreshToken(probe).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, probe.called)
	require.True(t, probe.hasUser)
	assert.Equal(t, "user-uuid", probe.authUser.Id)
}
