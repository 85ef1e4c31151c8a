package service

import (
	"GameLibraryAPI/internal/model"
	"GameLibraryAPI/internal/ports"
	"context"
	"encoding/json"
	"fmt"
)

// GameService работает только с играми запрашивающего пользователя:
// чужая игра неотличима от несуществующей
type GameService struct {
	GameRepository ports.GameRepositoryInterface
}

func NewGameService(gameRepository ports.GameRepositoryInterface) *GameService {
	return &GameService{GameRepository: gameRepository}
}

func (service *GameService) CreateGame(ctx context.Context, userUUID string, name string, additionalInfo json.RawMessage, categoryIDs []string) (*model.Game, error) {
	game := &model.Game{
		Name:           name,
		AdditionalInfo: additionalInfo,
		UserId:         userUUID,
	}
	if err := service.GameRepository.Create(ctx, game); err != nil {
		return nil, err
	}

	if len(categoryIDs) > 0 {
		if err := service.GameRepository.AddCategories(ctx, game.Id, categoryIDs); err != nil {
			return nil, err
		}
		categories, err := service.GameRepository.ListCategories(ctx, game.Id)
		if err != nil {
			return nil, err
		}
		game.Categories = categories
	}

	return game, nil
}

func (service *GameService) ListUserGames(ctx context.Context, userUUID string) ([]model.Game, error) {
	return service.GameRepository.ListByUser(ctx, userUUID)
}

// ListCatalog возвращает все игры всех пользователей
func (service *GameService) ListCatalog(ctx context.Context) ([]model.Game, error) {
	return service.GameRepository.ListAll(ctx)
}

func (service *GameService) GetGame(ctx context.Context, id int64, userUUID string) (*model.Game, error) {
	game, err := service.GameRepository.FindByIDAndUser(ctx, id, userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска игры: %w", err)
	}
	if game == nil {
		return nil, ErrNotFound
	}

	return game, nil
}

func (service *GameService) UpdateGame(ctx context.Context, id int64, userUUID string, name *string, additionalInfo json.RawMessage) (*model.Game, error) {
	game, err := service.GetGame(ctx, id, userUUID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		game.Name = *name
	}
	if additionalInfo != nil {
		game.AdditionalInfo = additionalInfo
	}

	if err := service.GameRepository.Update(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (service *GameService) DeleteGame(ctx context.Context, id int64, userUUID string) error {
	game, err := service.GetGame(ctx, id, userUUID)
	if err != nil {
		return err
	}

	return service.GameRepository.Delete(ctx, game.Id)
}

func (service *GameService) AddCategories(ctx context.Context, id int64, userUUID string, categoryIDs []string) (*model.Game, error) {
	game, err := service.GetGame(ctx, id, userUUID)
	if err != nil {
		return nil, err
	}

	if err := service.GameRepository.AddCategories(ctx, game.Id, categoryIDs); err != nil {
		return nil, err
	}

	categories, err := service.GameRepository.ListCategories(ctx, game.Id)
	if err != nil {
		return nil, err
	}
	game.Categories = categories

	return game, nil
}

func (service *GameService) RemoveCategory(ctx context.Context, id int64, userUUID string, categoryID string) (*model.Game, error) {
	game, err := service.GetGame(ctx, id, userUUID)
	if err != nil {
		return nil, err
	}

	if err := service.GameRepository.RemoveCategory(ctx, game.Id, categoryID); err != nil {
		return nil, err
	}

	categories, err := service.GameRepository.ListCategories(ctx, game.Id)
	if err != nil {
		return nil, err
	}
	game.Categories = categories

	return game, nil
}
