package models

import (
	"errors"
	"time"
)

type Comment struct {
	ID        string    `json:"_id"`
	PostID    string    `json:"postId"`
	SenderID  string    `json:"senderId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) Validate() error {
	if c.PostID == "" || c.SenderID == "" || c.Message == "" {
		return errors.New("postId, senderId and message are required")
	}
	return nil
}
