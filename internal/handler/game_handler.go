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
	"strconv"

	"github.com/go-chi/chi/v5"
)

type GameHandler struct {
	*service.GameService
}

func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService}
}

// CreateGameRequest содержит данные новой игры
// swagger:model
type CreateGameRequest struct {
	Name           string          `json:"name" validate:"required,min=1"`
	AdditionalInfo json.RawMessage `json:"additionalInfo"`
	CategoryIds    []string        `json:"categoryIds" validate:"omitempty,dive,uuid"`
}

// UpdateGameRequest — частичное обновление игры
// swagger:model
type UpdateGameRequest struct {
	Name           *string         `json:"name" validate:"omitempty,min=1"`
	AdditionalInfo json.RawMessage `json:"additionalInfo"`
}

// GameCategoriesRequest содержит список id категорий для привязки
// swagger:model
type GameCategoriesRequest struct {
	CategoryIds []string `json:"categoryIds" validate:"required,min=1,dive,uuid"`
}

// CatalogGame — игра в общем каталоге; Mine выставляется для игр
// аутентифицированного пользователя
type CatalogGame struct {
	model.Game
	Mine bool `json:"mine"`
}

func gameIDFromURL(request *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(request, "id"), 10, 64)
}

// CreateGame создает игру текущего пользователя
// @Summary Создание игры
// @Tags Games
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param request body CreateGameRequest true "Данные игры"
// @Success 201 {object} apiresponse.SuccessResponse "созданная игра"
// @Failure 401 {object} apiresponse.ErrorResponse "пользователь не авторизован"
// @Failure 422 {object} apiresponse.ErrorResponse "ошибка валидации запроса"
// @Router /games [post]
func (handler *GameHandler) CreateGame(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	var createRequest CreateGameRequest
	if err := json.NewDecoder(request.Body).Decode(&createRequest); err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}
	if err := validate.Struct(createRequest); err != nil {
		apiresponse.WriteValidationError(writer, validationMessages(err))
		return
	}

	game, err := handler.GameService.CreateGame(ctx, authUser.Id, createRequest.Name, createRequest.AdditionalInfo, createRequest.CategoryIds)
	if err != nil {
		log.Printf("ошибка создания игры: %v", err)
		apiresponse.WriteServerError(writer)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusCreated, "игра успешно создана", game)
}

// ListGames возвращает игры текущего пользователя, новые первыми
// @Summary Список игр пользователя
// @Tags Games
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} apiresponse.SuccessResponse "список игр с категориями"
// @Failure 401 {object} apiresponse.ErrorResponse "пользователь не авторизован"
// @Router /games [get]
func (handler *GameHandler) ListGames(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	games, err := handler.GameService.ListUserGames(ctx, authUser.Id)
	if err != nil {
		log.Printf("ошибка выборки игр: %v", err)
		apiresponse.WriteServerError(writer)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "игры получены", games)
}

// Catalog возвращает все игры; маршрут с необязательной аутентификацией —
// при наличии личности собственные игры помечаются mine
// @Summary Общий каталог игр
// @Tags Games
// @Produce json
// @Param Authorization header string false "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} apiresponse.SuccessResponse "каталог игр"
// @Router /games/catalog [get]
func (handler *GameHandler) Catalog(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	games, err := handler.GameService.ListCatalog(ctx)
	if err != nil {
		log.Printf("ошибка выборки каталога: %v", err)
		apiresponse.WriteServerError(writer)
		return
	}

	authUser, authenticated := security.CurrentUser(ctx)

	catalog := make([]CatalogGame, len(games))
	for i, game := range games {
		catalog[i] = CatalogGame{
			Game: game,
			Mine: authenticated && game.UserId == authUser.Id,
		}
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "каталог получен", catalog)
}

// GetGame возвращает игру по id
// @Summary Игра по id
// @Tags Games
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path int true "id игры"
// @Success 200 {object} apiresponse.SuccessResponse "игра с категориями"
// @Failure 404 {object} apiresponse.ErrorResponse "игра не найдена"
// @Router /games/{id} [get]
func (handler *GameHandler) GetGame(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	gameID, err := gameIDFromURL(request)
	if err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "невалидный id игры", nil)
		return
	}

	game, err := handler.GameService.GetGame(ctx, gameID, authUser.Id)
	if err != nil {
		handler.writeGameError(writer, err)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "игра получена", game)
}

// UpdateGame обновляет игру по id
// @Summary Обновление игры
// @Tags Games
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path int true "id игры"
// @Param request body UpdateGameRequest true "Изменяемые поля"
// @Success 200 {object} apiresponse.SuccessResponse "обновленная игра"
// @Failure 404 {object} apiresponse.ErrorResponse "игра не найдена"
// @Router /games/{id} [put]
func (handler *GameHandler) UpdateGame(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	gameID, err := gameIDFromURL(request)
	if err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "невалидный id игры", nil)
		return
	}

	var updateRequest UpdateGameRequest
	if err := json.NewDecoder(request.Body).Decode(&updateRequest); err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}
	if err := validate.Struct(updateRequest); err != nil {
		apiresponse.WriteValidationError(writer, validationMessages(err))
		return
	}

	game, err := handler.GameService.UpdateGame(ctx, gameID, authUser.Id, updateRequest.Name, updateRequest.AdditionalInfo)
	if err != nil {
		handler.writeGameError(writer, err)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "игра успешно обновлена", game)
}

// DeleteGame удаляет игру по id
// @Summary Удаление игры
// @Tags Games
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path int true "id игры"
// @Success 200 {object} apiresponse.SuccessResponse "игра удалена"
// @Failure 404 {object} apiresponse.ErrorResponse "игра не найдена"
// @Router /games/{id} [delete]
func (handler *GameHandler) DeleteGame(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	gameID, err := gameIDFromURL(request)
	if err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "невалидный id игры", nil)
		return
	}

	if err := handler.GameService.DeleteGame(ctx, gameID, authUser.Id); err != nil {
		handler.writeGameError(writer, err)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "игра удалена", nil)
}

// AddCategories привязывает категории к игре
// @Summary Привязка категорий к игре
// @Tags Games
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path int true "id игры"
// @Param request body GameCategoriesRequest true "Список id категорий"
// @Success 200 {object} apiresponse.SuccessResponse "игра с обновленным списком категорий"
// @Failure 404 {object} apiresponse.ErrorResponse "игра не найдена"
// @Router /games/{id}/categories [post]
func (handler *GameHandler) AddCategories(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	gameID, err := gameIDFromURL(request)
	if err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "невалидный id игры", nil)
		return
	}

	var categoriesRequest GameCategoriesRequest
	if err := json.NewDecoder(request.Body).Decode(&categoriesRequest); err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}
	if err := validate.Struct(categoriesRequest); err != nil {
		apiresponse.WriteValidationError(writer, validationMessages(err))
		return
	}

	game, err := handler.GameService.AddCategories(ctx, gameID, authUser.Id, categoriesRequest.CategoryIds)
	if err != nil {
		handler.writeGameError(writer, err)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "категории привязаны к игре", game)
}

// RemoveCategory отвязывает категорию от игры
// @Summary Отвязка категории от игры
// @Tags Games
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path int true "id игры"
// @Param categoryId path string true "id категории"
// @Success 200 {object} apiresponse.SuccessResponse "игра с обновленным списком категорий"
// @Failure 404 {object} apiresponse.ErrorResponse "игра не найдена"
// @Router /games/{id}/categories/{categoryId} [delete]
func (handler *GameHandler) RemoveCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	authUser, ok := security.CurrentUser(ctx)
	if ok == false {
		apiresponse.WriteUnauthorized(writer, "не авторизован")
		return
	}

	gameID, err := gameIDFromURL(request)
	if err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "невалидный id игры", nil)
		return
	}

	game, err := handler.GameService.RemoveCategory(ctx, gameID, authUser.Id, chi.URLParam(request, "categoryId"))
	if err != nil {
		handler.writeGameError(writer, err)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "категория отвязана от игры", game)
}

func (handler *GameHandler) writeGameError(writer http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotFound) {
		apiresponse.WriteNotFound(writer, "игра не найдена")
		return
	}
	log.Printf("ошибка операции с игрой: %v", err)
	apiresponse.WriteServerError(writer)
}
