package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	UserId string `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

type SessionResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    string    `json:"user_id"`
	Name      string    `json:"name"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RenameSessionRequest struct {
	Name string `json:"name" validate:"required"`
}

type FavoriteSessionRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}

type AddMessageRequest struct {
	Sender  string `json:"sender" validate:"required"`
	Content string `json:"content" validate:"required"`
	Context string `json:"context,omitempty"`
}

type MessageResponse struct {
	Id            uuid.UUID `json:"id"`
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Sender        string    `json:"sender"`
	Content       string    `json:"content"`
	Context       string    `json:"context,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
