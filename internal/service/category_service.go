package service

import (
	"GameLibraryAPI/internal/model"
	"GameLibraryAPI/internal/ports"
	"GameLibraryAPI/internal/repository"
	"context"
	"fmt"

	"github.com/google/uuid"
)

type CategoryService struct {
	CategoryRepository ports.CategoryRepositoryInterface
}

func NewCategoryService(categoryRepository ports.CategoryRepositoryInterface) *CategoryService {
	return &CategoryService{CategoryRepository: categoryRepository}
}

func (service *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return service.CategoryRepository.List(ctx)
}

func (service *CategoryService) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	category, err := service.CategoryRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска категории: %w", err)
	}
	if category == nil {
		return nil, ErrNotFound
	}

	return category, nil
}

func (service *CategoryService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	category := &model.Category{
		Id:   uuid.New().String(),
		Name: name,
	}
	if err := service.CategoryRepository.Create(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, err
	}

	return category, nil
}

func (service *CategoryService) UpdateCategory(ctx context.Context, id string, name string) (*model.Category, error) {
	category, err := service.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := service.CategoryRepository.Update(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCategoryAlreadyExists
		}
		return nil, err
	}

	return category, nil
}

func (service *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	category, err := service.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	return service.CategoryRepository.Delete(ctx, category.Id)
}
