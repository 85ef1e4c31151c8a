package model

import (
	"encoding/json"
	"time"
)

// Game принадлежит ровно одному пользователю, связь с категориями
// многие-ко-многим через таблицу game_categories
type Game struct {
	Id             int64           `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	AdditionalInfo json.RawMessage `db:"additional_info" json:"additionalInfo,omitempty"`
	UserId         string          `db:"user_id" json:"userId"`
	Categories     []Category      `db:"-" json:"categories,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updatedAt"`
}
