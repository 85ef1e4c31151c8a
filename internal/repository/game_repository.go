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

type GameRepository struct {
	*internal.Database
}

func NewGameRepository(database *internal.Database) *GameRepository {
	return &GameRepository{database}
}

func (repository *GameRepository) Create(ctx context.Context, game *model.Game) error {
	query := `INSERT INTO games (name, additional_info, user_id)
			  VALUES ($1, $2, $3)
			  RETURNING id, created_at, updated_at`

	err := repository.QueryRowxContext(ctx, query, game.Name, game.AdditionalInfo, game.UserId).
		Scan(&game.Id, &game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка вставки игры: %w", err)
	}

	return nil
}

func (repository *GameRepository) ListByUser(ctx context.Context, userUUID string) ([]model.Game, error) {
	var games []model.Game

	query := `SELECT id, name, additional_info, user_id, created_at, updated_at
			  FROM games WHERE user_id = $1
			  ORDER BY created_at DESC`
	if err := repository.SelectContext(ctx, &games, query, userUUID); err != nil {
		return nil, fmt.Errorf("ошибка выборки игр пользователя: %w", err)
	}

	if err := repository.attachCategories(ctx, games); err != nil {
		return nil, err
	}

	return games, nil
}

func (repository *GameRepository) ListAll(ctx context.Context) ([]model.Game, error) {
	var games []model.Game

	query := `SELECT id, name, additional_info, user_id, created_at, updated_at
			  FROM games
			  ORDER BY created_at DESC`
	if err := repository.SelectContext(ctx, &games, query); err != nil {
		return nil, fmt.Errorf("ошибка выборки игр: %w", err)
	}

	if err := repository.attachCategories(ctx, games); err != nil {
		return nil, err
	}

	return games, nil
}

// FindByIDAndUser возвращает nil без ошибки, если игра не найдена или
// принадлежит другому пользователю
func (repository *GameRepository) FindByIDAndUser(ctx context.Context, id int64, userUUID string) (*model.Game, error) {
	var game model.Game

	query := `SELECT id, name, additional_info, user_id, created_at, updated_at
			  FROM games WHERE id = $1 AND user_id = $2`
	err := repository.GetContext(ctx, &game, query, id, userUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска игры: %w", err)
	}

	categories, err := repository.ListCategories(ctx, game.Id)
	if err != nil {
		return nil, err
	}
	game.Categories = categories

	return &game, nil
}

func (repository *GameRepository) Update(ctx context.Context, game *model.Game) error {
	query := `UPDATE games SET name = $2, additional_info = $3, updated_at = now()
			  WHERE id = $1
			  RETURNING updated_at`

	err := repository.QueryRowxContext(ctx, query, game.Id, game.Name, game.AdditionalInfo).
		Scan(&game.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка обновления игры: %w", err)
	}

	return nil
}

func (repository *GameRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM games WHERE id = $1`

	if _, err := repository.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("ошибка удаления игры: %w", err)
	}

	return nil
}

// AddCategories привязывает категории к игре, повторная привязка не ошибка
func (repository *GameRepository) AddCategories(ctx context.Context, gameID int64, categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	query := `INSERT INTO game_categories (game_id, category_id)
			  SELECT $1, unnest($2::uuid[])
			  ON CONFLICT DO NOTHING`

	if _, err := repository.ExecContext(ctx, query, gameID, pq.Array(categoryIDs)); err != nil {
		return fmt.Errorf("ошибка привязки категорий к игре: %w", err)
	}

	return nil
}

func (repository *GameRepository) RemoveCategory(ctx context.Context, gameID int64, categoryID string) error {
	query := `DELETE FROM game_categories WHERE game_id = $1 AND category_id = $2`

	if _, err := repository.ExecContext(ctx, query, gameID, categoryID); err != nil {
		return fmt.Errorf("ошибка отвязки категории от игры: %w", err)
	}

	return nil
}

func (repository *GameRepository) ListCategories(ctx context.Context, gameID int64) ([]model.Category, error) {
	var categories []model.Category

	query := `SELECT c.id, c.name, c.created_at, c.updated_at
			  FROM categories c
			  JOIN game_categories gc ON gc.category_id = c.id
			  WHERE gc.game_id = $1
			  ORDER BY c.name`
	if err := repository.SelectContext(ctx, &categories, query, gameID); err != nil {
		return nil, fmt.Errorf("ошибка выборки категорий игры: %w", err)
	}

	return categories, nil
}

// attachCategories одним запросом подтягивает категории для набора игр
func (repository *GameRepository) attachCategories(ctx context.Context, games []model.Game) error {
	if len(games) == 0 {
		return nil
	}

	gameIDs := make([]int64, len(games))
	for i, game := range games {
		gameIDs[i] = game.Id
	}

	type gameCategoryRow struct {
		GameId int64 `db:"game_id"`
		model.Category
	}

	var rows []gameCategoryRow
	query := `SELECT gc.game_id, c.id, c.name, c.created_at, c.updated_at
			  FROM game_categories gc
			  JOIN categories c ON c.id = gc.category_id
			  WHERE gc.game_id = ANY($1)
			  ORDER BY c.name`
	if err := repository.SelectContext(ctx, &rows, query, pq.Array(gameIDs)); err != nil {
		return fmt.Errorf("ошибка выборки категорий игр: %w", err)
	}

	categoriesByGame := make(map[int64][]model.Category, len(games))
	for _, row := range rows {
		categoriesByGame[row.GameId] = append(categoriesByGame[row.GameId], row.Category)
	}
	for i := range games {
		games[i].Categories = categoriesByGame[games[i].Id]
	}

	return nil
}
