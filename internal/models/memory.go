package models

import "time"

// Memory is a fact about the user extracted from one of their messages.
// Memories are never updated, only created or deleted with their session.
type Memory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SessionID string    `json:"session_id" gorm:"size:64;not null;index"`
	Fact      string    `json:"fact" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name
func (Memory) TableName() string {
	return "memories"
}
