package models

import (
	"time"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a chat message
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SessionID string    `json:"-" gorm:"size:64;not null;index"`
	Role      string    `json:"role" gorm:"size:16;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Sentiment *string   `json:"sentiment,omitempty" gorm:"size:16"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name
func (Message) TableName() string {
	return "messages"
}

type ChatRequest struct {
	SessionID          *string `json:"session_id"`
	CharacterID        uint    `json:"character_id" binding:"required"`
	Message            string  `json:"message" binding:"required"`
	MaxContextMessages *int    `json:"max_context_messages"`
}

type ChatResponse struct {
	SessionID      string   `json:"session_id"`
	Reply          string   `json:"reply"`
	Sentiment      string   `json:"sentiment"`
	ExtractedFacts []string `json:"extracted_facts"`
}
