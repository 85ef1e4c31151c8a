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

type UserHandler struct {
	*service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService}
}

// UpdateProfileRequest — частичное обновление профиля, nil-поля не трогаются
// swagger:model
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// ProfileResponse — профиль без хэша пароля
// swagger:model
type ProfileResponse struct {
	Id        string    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func profileResponse(user *model.User) *ProfileResponse {
	return &ProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// GetProfile возвращает профиль текущего пользователя
// @Summary Профиль пользователя
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} apiresponse.SuccessResponse "профиль"
// @Failure 401 {object} apiresponse.ErrorResponse "пользователь не авторизован"
// @Failure 404 {object} apiresponse.ErrorResponse "пользователь не найден"
// @Router /users/profile [get]
func (handler *UserHandler) GetProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	user, err := handler.UserService.GetProfile(ctx, authUser.Id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apiresponse.WriteNotFound(writer, security.ErrUserNotFound.Error())
			return
		}
		log.Printf("ошибка получения профиля: %v", err)
		apiresponse.WriteServerError(writer)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "профиль получен", profileResponse(user))
}

// UpdateProfile обновляет имя, email и/или пароль текущего пользователя
// @Summary Обновление профиля
// @Tags Users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param request body UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} apiresponse.SuccessResponse "обновленный профиль"
// @Failure 401 {object} apiresponse.ErrorResponse "пользователь не авторизован"
// @Failure 422 {object} apiresponse.ErrorResponse "ошибка валидации запроса"
// @Router /users/profile [put]
func (handler *UserHandler) UpdateProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	var updateRequest UpdateProfileRequest
	if err := json.NewDecoder(request.Body).Decode(&updateRequest); err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}
	if err := validate.Struct(updateRequest); err != nil {
		apiresponse.WriteValidationError(writer, validationMessages(err))
		return
	}

	user, err := handler.UserService.UpdateProfile(ctx, authUser.Id, updateRequest.Name, updateRequest.Email, updateRequest.Password)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apiresponse.WriteNotFound(writer, security.ErrUserNotFound.Error())
			return
		}
		log.Printf("ошибка обновления профиля: %v", err)
		apiresponse.WriteServerError(writer)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "профиль успешно обновлен", profileResponse(user))
}
