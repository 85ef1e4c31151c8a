package repository

import (
	"GameLibraryAPI/internal"
	"GameLibraryAPI/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation сообщает, что запрос нарушил уникальный индекс
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

type CategoryRepository struct {
	*internal.Database
}

func NewCategoryRepository(database *internal.Database) *CategoryRepository {
	return &CategoryRepository{database}
}

func (repository *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category

	query := `SELECT id, name, created_at, updated_at FROM categories ORDER BY name`
	if err := repository.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("ошибка выборки категорий: %w", err)
	}

	if err := repository.attachGames(ctx, categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// FindByID возвращает nil без ошибки, если категория не найдена
func (repository *CategoryRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category

	query := `SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`
	err := repository.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска категории: %w", err)
	}

	var games []model.Game
	gamesQuery := `SELECT g.id, g.name, g.additional_info, g.user_id, g.created_at, g.updated_at
				   FROM games g
				   JOIN game_categories gc ON gc.game_id = g.id
				   WHERE gc.category_id = $1
				   ORDER BY g.created_at DESC`
	if err := repository.SelectContext(ctx, &games, gamesQuery, id); err != nil {
		return nil, fmt.Errorf("ошибка выборки игр категории: %w", err)
	}
	category.Games = games

	return &category, nil
}

func (repository *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `INSERT INTO categories (id, name)
			  VALUES ($1, $2)
			  RETURNING created_at, updated_at`

	err := repository.QueryRowxContext(ctx, query, category.Id, category.Name).
		Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка вставки категории: %w", err)
	}

	return nil
}

func (repository *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `UPDATE categories SET name = $2, updated_at = now()
			  WHERE id = $1
			  RETURNING updated_at`

	err := repository.QueryRowxContext(ctx, query, category.Id, category.Name).
		Scan(&category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка обновления категории: %w", err)
	}

	return nil
}

func (repository *CategoryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = $1`

	if _, err := repository.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("ошибка удаления категории: %w", err)
	}

	return nil
}

// attachGames одним запросом подтягивает игры для набора категорий
func (repository *CategoryRepository) attachGames(ctx context.Context, categories []model.Category) error {
	if len(categories) == 0 {
		return nil
	}

	categoryIDs := make([]string, len(categories))
	for i, category := range categories {
		categoryIDs[i] = category.Id
	}

	type categoryGameRow struct {
		CategoryId string `db:"category_id"`
		model.Game
	}

	var rows []categoryGameRow
	query := `SELECT gc.category_id, g.id, g.name, g.additional_info, g.user_id, g.created_at, g.updated_at
			  FROM game_categories gc
			  JOIN games g ON g.id = gc.game_id
			  WHERE gc.category_id = ANY($1::uuid[])
			  ORDER BY g.created_at DESC`
	if err := repository.SelectContext(ctx, &rows, query, pq.Array(categoryIDs)); err != nil {
		return fmt.Errorf("ошибка выборки игр категорий: %w", err)
	}

	gamesByCategory := make(map[string][]model.Game, len(categories))
	for _, row := range rows {
		gamesByCategory[row.CategoryId] = append(gamesByCategory[row.CategoryId], row.Game)
	}
	for i := range categories {
		categories[i].Games = gamesByCategory[categories[i].Id]
	}

	return nil
}
