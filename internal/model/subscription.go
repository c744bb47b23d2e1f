package model

import "time"

type Subscription struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Plan      string     `json:"plano"`
	Status    string     `json:"status"`
	StartsAt  time.Time  `json:"data_inicio"`
	EndsAt    *time.Time `json:"data_fim"`
	CreatedAt time.Time  `json:"created_at"`
}

// Active reports whether the subscription is currently usable.
func (s Subscription) Active() bool {
	return s.Status == "ativa"
}
