package ports

import (
	"GameLibraryAPI/internal/model"
	"GameLibraryAPI/internal/security"
	"context"
)

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDAndRefreshToken(ctx context.Context, id string, refreshToken string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateRefreshToken(ctx context.Context, id string, refreshToken *string) error
	UpdateProfile(ctx context.Context, user *model.User) error
}

type GameRepositoryInterface interface {
	Create(ctx context.Context, game *model.Game) error
	ListByUser(ctx context.Context, userUUID string) ([]model.Game, error)
	ListAll(ctx context.Context) ([]model.Game, error)
	FindByIDAndUser(ctx context.Context, id int64, userUUID string) (*model.Game, error)
	Update(ctx context.Context, game *model.Game) error
	Delete(ctx context.Context, id int64) error
	AddCategories(ctx context.Context, gameID int64, categoryIDs []string) error
	RemoveCategory(ctx context.Context, gameID int64, categoryID string) error
	ListCategories(ctx context.Context, gameID int64) ([]model.Category, error)
}

type CategoryRepositoryInterface interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error
}

type JWTServiceInterface interface {
	GenerateTokenPair(userUUID string) (*model.TokensPair, error)
	ValidateAccessToken(tokenString string) (*security.Claims, error)
	ValidateRefreshToken(tokenString string) (*security.Claims, error)
}
