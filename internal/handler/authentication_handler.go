package handler

import (
	"GameLibraryAPI/internal/apiresponse"
	"GameLibraryAPI/internal/model"
	"GameLibraryAPI/internal/security"
	"GameLibraryAPI/internal/service"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
)

const requestTimeout = 3 * time.Second

type AuthenticationHandler struct {
	*service.AuthenticationService
}

func NewAuthenticationHandler(authenticationService *service.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService}
}

// RegisterRequest содержит данные регистрации
// swagger:model
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     *string `json:"name" validate:"omitempty,min=1"`
}

// LoginRequest содержит учетные данные для входа
// swagger:model
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse содержит пользователя и пару токенов
// swagger:model
type AuthResponse struct {
	User         *model.AuthUser `json:"user"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
}

// Register регистрирует нового пользователя и сразу выдает пару токенов
// @Summary Регистрация пользователя
// @Description Создает пользователя, выпускает пару токенов и сохраняет refresh-токен в БД
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Данные регистрации"
// @Success 201 {object} apiresponse.SuccessResponse "пользователь и пара токенов"
// @Failure 400 {object} apiresponse.ErrorResponse "email уже занят или неверный json"
// @Failure 422 {object} apiresponse.ErrorResponse "ошибка валидации запроса"
// @Router /users/register [post]
func (handler *AuthenticationHandler) Register(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	var registerRequest RegisterRequest
	if err := json.NewDecoder(request.Body).Decode(&registerRequest); err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}
	if err := validate.Struct(registerRequest); err != nil {
		apiresponse.WriteValidationError(writer, validationMessages(err))
		return
	}

	user, tokensPair, err := handler.AuthenticationService.Register(ctx, registerRequest.Email, registerRequest.Password, registerRequest.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			apiresponse.WriteError(writer, http.StatusBadRequest, err.Error(), nil)
			return
		}
		log.Printf("ошибка регистрации: %v", err)
		apiresponse.WriteServerError(writer)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusCreated, "пользователь успешно зарегистрирован", &AuthResponse{
		User:         &model.AuthUser{Id: user.Id, Email: user.Email, Name: user.Name},
		AccessToken:  tokensPair.AccessToken,
		RefreshToken: tokensPair.RefreshToken,
	})
}

// Login проверяет учетные данные и выдает пару токенов
// @Summary Вход пользователя
// @Description Проверяет email и пароль, выпускает пару токенов и сохраняет refresh-токен в БД
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Учетные данные"
// @Success 200 {object} apiresponse.SuccessResponse "пользователь и пара токенов"
// @Failure 401 {object} apiresponse.ErrorResponse "неверный email или пароль"
// @Router /users/login [post]
func (handler *AuthenticationHandler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	var loginRequest LoginRequest
	if err := json.NewDecoder(request.Body).Decode(&loginRequest); err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}
	if err := validate.Struct(loginRequest); err != nil {
		apiresponse.WriteValidationError(writer, validationMessages(err))
		return
	}

	user, tokensPair, err := handler.AuthenticationService.Login(ctx, loginRequest.Email, loginRequest.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apiresponse.WriteUnauthorized(writer, err.Error())
			return
		}
		log.Printf("ошибка входа: %v", err)
		apiresponse.WriteServerError(writer)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "вход выполнен", &AuthResponse{
		User:         &model.AuthUser{Id: user.Id, Email: user.Email, Name: user.Name},
		AccessToken:  tokensPair.AccessToken,
		RefreshToken: tokensPair.RefreshToken,
	})
}

// Refresh обновляет пару токенов; маршрут закрыт middleware VerifyRefreshToken
// @Summary Обновление токенов
// @Description Выпускает новую пару токенов; новый refresh-токен затирает предыдущий (ротация)
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body security.RefreshTokenRequest true "Refresh токен"
// @Success 200 {object} apiresponse.SuccessResponse "новая пара токенов"
// @Failure 400 {object} apiresponse.ErrorResponse "рефреш токен отсутствует в теле"
// @Failure 401 {object} apiresponse.ErrorResponse "токен просрочен, невалиден или отозван"
// @Router /auth/refresh [post]
func (handler *AuthenticationHandler) Refresh(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	tokensPair, err := handler.AuthenticationService.Refresh(ctx, authUser.Id)
	if err != nil {
		log.Printf("не удалось обновить токены: %v", err)
		apiresponse.WriteServerError(writer)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "токены успешно обновлены", tokensPair)
}

// Logout инвалидирует refresh-токен текущего пользователя
// @Summary Выход из аккаунта
// @Description Сбрасывает сохраненный refresh-токен; дальнейшие обновления по любому старому токену отклоняются
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} apiresponse.SuccessResponse "успешный выход, data равно null"
// @Failure 401 {object} apiresponse.ErrorResponse "пользователь не авторизован"
// @Router /users/logout [post]
func (handler *AuthenticationHandler) Logout(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	if err := handler.AuthenticationService.Logout(ctx, authUser.Id); err != nil {
		log.Printf("ошибка выхода: %v", err)
		apiresponse.WriteServerError(writer)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "выполнен выход из аккаунта", nil)
}
