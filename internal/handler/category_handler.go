package handler

import (
	"GameLibraryAPI/internal/apiresponse"
	"GameLibraryAPI/internal/service"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	*service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService}
}

// CategoryRequest содержит имя категории
// swagger:model
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// ListCategories возвращает все категории с их играми
// @Summary Список категорий
// @Tags Categories
// @Produce json
// @Success 200 {object} apiresponse.SuccessResponse "список категорий"
// @Router /categories [get]
func (handler *CategoryHandler) ListCategories(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	categories, err := handler.CategoryService.ListCategories(ctx)
	if err != nil {
		log.Printf("ошибка выборки категорий: %v", err)
		apiresponse.WriteServerError(writer)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "категории получены", categories)
}

// GetCategory возвращает категорию по id с ее играми
// @Summary Категория по id
// @Tags Categories
// @Produce json
// @Param id path string true "id категории"
// @Success 200 {object} apiresponse.SuccessResponse "категория"
// @Failure 404 {object} apiresponse.ErrorResponse "категория не найдена"
// @Router /categories/{id} [get]
func (handler *CategoryHandler) GetCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	category, err := handler.CategoryService.GetCategory(ctx, chi.URLParam(request, "id"))
	if err != nil {
		handler.writeCategoryError(writer, err)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "категория получена", category)
}

// CreateCategory создает новую категорию
// @Summary Создание категории
// @Tags Categories
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param request body CategoryRequest true "Имя категории"
// @Success 201 {object} apiresponse.SuccessResponse "созданная категория"
// @Failure 400 {object} apiresponse.ErrorResponse "имя уже занято"
// @Failure 422 {object} apiresponse.ErrorResponse "ошибка валидации запроса"
// @Router /categories [post]
func (handler *CategoryHandler) CreateCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	var categoryRequest CategoryRequest
	if err := json.NewDecoder(request.Body).Decode(&categoryRequest); err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}
	if err := validate.Struct(categoryRequest); err != nil {
		apiresponse.WriteValidationError(writer, validationMessages(err))
		return
	}

	category, err := handler.CategoryService.CreateCategory(ctx, categoryRequest.Name)
	if err != nil {
		handler.writeCategoryError(writer, err)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusCreated, "категория успешно создана", category)
}

// UpdateCategory переименовывает категорию
// @Summary Обновление категории
// @Tags Categories
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "id категории"
// @Param request body CategoryRequest true "Новое имя"
// @Success 200 {object} apiresponse.SuccessResponse "обновленная категория"
// @Failure 404 {object} apiresponse.ErrorResponse "категория не найдена"
// @Router /categories/{id} [put]
func (handler *CategoryHandler) UpdateCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	var categoryRequest CategoryRequest
	if err := json.NewDecoder(request.Body).Decode(&categoryRequest); err != nil {
		apiresponse.WriteError(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}
	if err := validate.Struct(categoryRequest); err != nil {
		apiresponse.WriteValidationError(writer, validationMessages(err))
		return
	}

	category, err := handler.CategoryService.UpdateCategory(ctx, chi.URLParam(request, "id"), categoryRequest.Name)
	if err != nil {
		handler.writeCategoryError(writer, err)
		return
	}

	apiresponse.WriteSuccess(writer, http.StatusOK, "категория успешно обновлена", category)
}

// DeleteCategory удаляет категорию; связи с играми снимаются каскадно
// @Summary Удаление категории
// @Tags Categories
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "id категории"
// @Success 204 "категория удалена"
// @Failure 404 {object} apiresponse.ErrorResponse "категория не найдена"
// @Router /categories/{id} [delete]
func (handler *CategoryHandler) DeleteCategory(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), requestTimeout)
	defer cancel()

	if err := handler.CategoryService.DeleteCategory(ctx, chi.URLParam(request, "id")); err != nil {
		handler.writeCategoryError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

func (handler *CategoryHandler) writeCategoryError(writer http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		apiresponse.WriteNotFound(writer, "категория не найдена")
	case errors.Is(err, service.ErrCategoryAlreadyExists):
		apiresponse.WriteError(writer, http.StatusBadRequest, err.Error(), nil)
	default:
		log.Printf("ошибка операции с категорией: %v", err)
		apiresponse.WriteServerError(writer)
	}
}
