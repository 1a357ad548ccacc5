package models

import (
	"errors"
	"time"
)

type Post struct {
	ID        string    `json:"_id"`
	SenderID  string    `json:"senderId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Post) Validate() error {
	if p.SenderID == "" || p.Title == "" || p.Content == "" {
		return errors.New("senderId, title and content are required")
	}
	return nil
}
