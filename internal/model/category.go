package model

import "time"

type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"nome"`
	Description *string    `json:"descricao"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
