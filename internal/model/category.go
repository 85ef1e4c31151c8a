package model

import "time"

type Category struct {
	Id        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Games     []Game    `db:"-" json:"games,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
