package models

import "time"

// Session scopes messages and memories to one conversation with one character.
// Its ID is an opaque token, either supplied by the client or a generated UUID.
type Session struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	CharacterID uint      `json:"character_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	Messages    []Message `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Memories    []Memory  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (Session) TableName() string {
	return "sessions"
}
