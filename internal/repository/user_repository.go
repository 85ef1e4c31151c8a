package repository

import (
	"GameLibraryAPI/internal"
	"GameLibraryAPI/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type UserRepository struct {
	*internal.Database
}

func NewUserRepository(database *internal.Database) *UserRepository {
	return &UserRepository{database}
}

// FindByID возвращает nil без ошибки, если пользователь не найден
func (repository *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User

	query := `SELECT id, email, password_hash, name, refresh_token, created_at, updated_at
			  FROM users WHERE id = $1`
	err := repository.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска пользователя по id: %w", err)
	}

	return &user, nil
}

func (repository *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	query := `SELECT id, email, password_hash, name, refresh_token, created_at, updated_at
			  FROM users WHERE email = $1`
	err := repository.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска пользователя по email: %w", err)
	}

	return &user, nil
}

// FindByIDAndRefreshToken находит пользователя только если предъявленный
// рефреш токен байт-в-байт совпадает с сохраненным значением. nil без
// ошибки означает несовпадение или отсутствие пользователя
func (repository *UserRepository) FindByIDAndRefreshToken(ctx context.Context, id string, refreshToken string) (*model.User, error) {
	var user model.User

	query := `SELECT id, email, password_hash, name, refresh_token, created_at, updated_at
			  FROM users WHERE id = $1 AND refresh_token = $2`
	err := repository.GetContext(ctx, &user, query, id, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка поиска пользователя по рефреш токену: %w", err)
	}

	return &user, nil
}

func (repository *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, email, password_hash, name)
			  VALUES ($1, $2, $3, $4)
			  RETURNING created_at, updated_at`

	err := repository.QueryRowxContext(ctx, query, user.Id, user.Email, user.PasswordHash, user.Name).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка вставки пользователя: %w", err)
	}

	return nil
}

// UpdateRefreshToken записывает или сбрасывает (nil) единственный
// сохраненный рефреш токен пользователя
func (repository *UserRepository) UpdateRefreshToken(ctx context.Context, id string, refreshToken *string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`

	result, err := repository.ExecContext(ctx, query, id, refreshToken)
	if err != nil {
		return fmt.Errorf("не удалось обновить рефреш токен: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось проверить, обновлен ли токен: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("не удалось найти пользователя для обновления токена")
	}

	return nil
}

func (repository *UserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET email = $2, password_hash = $3, name = $4, updated_at = now()
			  WHERE id = $1
			  RETURNING updated_at`

	err := repository.QueryRowxContext(ctx, query, user.Id, user.Email, user.PasswordHash, user.Name).
		Scan(&user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка обновления профиля: %w", err)
	}

	return nil
}
