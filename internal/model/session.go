package model

import "time"

// Session binds a browser cookie token to the remote API credential and a
// snapshot of the profile fetched at login.
type Session struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	APIToken  string    `json:"api_token"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
