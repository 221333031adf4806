package models

import "time"

// Item represents a single to-do entry owned by exactly one user.
type Item struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"is_done"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemPatch is a partial update to an item. Nil fields are left untouched.
type ItemPatch struct {
	Title  *string `json:"title"`
	IsDone *bool   `json:"is_done"`
}
