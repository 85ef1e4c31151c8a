package security

import (
	"GameLibraryAPI/internal/apiresponse"
	"GameLibraryAPI/internal/model"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFinder — минимальный контракт хранилища учетных данных,
// нужный middleware для разрешения личности
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIDAndRefreshToken(ctx context.Context, id string, refreshToken string) (*model.User, error)
}

// ReuseNotifier уведомляет о предъявлении рефреш токена, который был
// вытеснен ротацией или отозван — возможная кража токена
type ReuseNotifier interface {
	NotifyTokenReuse(userUUID string, ipAddress string) error
}

type AuthMiddleware struct {
	jwtService     *JWTService
	userRepository UserFinder
	reuseNotifier  ReuseNotifier
}

func NewAuthMiddleware(jwtService *JWTService, userRepository UserFinder, reuseNotifier ReuseNotifier) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:     jwtService,
		userRepository: userRepository,
		reuseNotifier:  reuseNotifier,
	}
}

// Authenticate — жесткий гейт для защищенных маршрутов. Требует заголовок
// Authorization: Bearer <access token>, проверяет подпись и срок токена,
// убеждается что пользователь существует и прикрепляет личность к контексту.
// Состояние не изменяет, только читает
func (middleware *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		jwtTokenStr, err := extractBearerToken(request)
		if err != nil {
			apiresponse.WriteUnauthorized(writer, ErrNoToken.Error())
			return
		}

		claims, err := middleware.jwtService.ValidateAccessToken(jwtTokenStr)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				apiresponse.WriteUnauthorized(writer, ErrTokenExpired.Error())
				return
			}
			apiresponse.WriteUnauthorized(writer, ErrTokenInvalid.Error())
			return
		}

		user, err := middleware.userRepository.FindByID(request.Context(), claims.UserUUID)
		if err != nil {
			log.Printf("ошибка поиска пользователя: %v", err)
			apiresponse.WriteServerError(writer)
			return
		}
		if user == nil {
			apiresponse.WriteUnauthorized(writer, ErrUserNotFound.Error())
			return
		}

		next.ServeHTTP(writer, request.WithContext(contextWithUser(request.Context(), user)))
	})
}

// RefreshTokenRequest содержит refresh токен в json формате
// swagger:model
type RefreshTokenRequest struct {
	// Refresh токен
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refreshToken"`
}

// VerifyRefreshToken используется только на маршруте обновления токенов.
// Подпись проверяется refresh-секретом, затем предъявленный токен обязан
// байт-в-байт совпасть с сохраненным в БД значением — именно это делает
// ротацию принудительной: старый, еще не просроченный по подписи токен
// после выпуска нового отклоняется на этом шаге
func (middleware *AuthMiddleware) VerifyRefreshToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var refreshTokenRequest RefreshTokenRequest
		if err := json.NewDecoder(request.Body).Decode(&refreshTokenRequest); err != nil {
			apiresponse.WriteError(writer, http.StatusBadRequest, "неверный json", nil)
			return
		}
		if refreshTokenRequest.RefreshToken == "" {
			apiresponse.WriteError(writer, http.StatusBadRequest, "рефреш токен обязателен", nil)
			return
		}

		claims, err := middleware.jwtService.ValidateRefreshToken(refreshTokenRequest.RefreshToken)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				apiresponse.WriteUnauthorized(writer, ErrRefreshTokenExpired.Error())
				return
			}
			apiresponse.WriteUnauthorized(writer, ErrRefreshTokenInvalid.Error())
			return
		}

		user, err := middleware.userRepository.FindByIDAndRefreshToken(request.Context(), claims.UserUUID, refreshTokenRequest.RefreshToken)
		if err != nil {
			log.Printf("ошибка поиска рефреш токена: %v", err)
			apiresponse.WriteServerError(writer)
			return
		}
		if user == nil {
			middleware.notifyReuse(request, claims.UserUUID)
			apiresponse.WriteUnauthorized(writer, ErrRefreshTokenInvalid.Error())
			return
		}

		next.ServeHTTP(writer, request.WithContext(contextWithUser(request.Context(), user)))
	})
}

// OptionalAuth выполняет то же извлечение и проверку, что и Authenticate,
// но никогда не отклоняет запрос: при любой неудаче обработчик вызывается
// без прикрепленной личности
func (middleware *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		jwtTokenStr, err := extractBearerToken(request)
		if err != nil {
			next.ServeHTTP(writer, request)
			return
		}

		claims, err := middleware.jwtService.ValidateAccessToken(jwtTokenStr)
		if err != nil {
			next.ServeHTTP(writer, request)
			return
		}

		user, err := middleware.userRepository.FindByID(request.Context(), claims.UserUUID)
		if err != nil || user == nil {
			next.ServeHTTP(writer, request)
			return
		}

		next.ServeHTTP(writer, request.WithContext(contextWithUser(request.Context(), user)))
	})
}

// CurrentUser возвращает личность, прикрепленную middleware, если она есть
func CurrentUser(ctx context.Context) (*model.AuthUser, bool) {
	authUser, ok := ctx.Value(userContextKey).(*model.AuthUser)
	return authUser, ok
}

func (middleware *AuthMiddleware) notifyReuse(request *http.Request, userUUID string) {
	if middleware.reuseNotifier == nil {
		return
	}

	// подпись верна, но токен не совпал с сохраненным значением:
	// либо устаревшая сессия, либо токен был украден
	ipAddress := request.RemoteAddr
	go func() {
		if err := middleware.reuseNotifier.NotifyTokenReuse(userUUID, ipAddress); err != nil {
			log.Printf("ошибка отправки webhook: %v", err)
		}
	}()
}

func contextWithUser(ctx context.Context, user *model.User) context.Context {
	authUser := &model.AuthUser{
		Id:    user.Id,
		Email: user.Email,
		Name:  user.Name,
	}
	return context.WithValue(ctx, userContextKey, authUser)
}

func extractBearerToken(request *http.Request) (string, error) {
	authorizationHeader := request.Header.Get("Authorization")
	if strings.HasPrefix(authorizationHeader, "Bearer ") == false {
		return "", ErrNoToken
	}

	jwtTokenStr := strings.TrimPrefix(authorizationHeader, "Bearer ")
	if jwtTokenStr == "" {
		return "", ErrNoToken
	}

	return jwtTokenStr, nil
}
