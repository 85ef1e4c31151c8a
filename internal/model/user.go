package model

import "time"

// User хранится в таблице users; refresh_token — единственный
// действующий рефреш токен пользователя (NULL после выхода)
type User struct {
	Id           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         *string   `db:"name" json:"name"`
	RefreshToken *string   `db:"refresh_token" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// AuthUser — личность, прикрепляемая middleware к контексту запроса.
// Хэш пароля сюда никогда не попадает
type AuthUser struct {
	Id    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}
