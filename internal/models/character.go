package models

import (
	"time"
)

// Character is a persona roleplayed by the completion model.
// There is no update path; characters are created once and deleted explicitly.
type Character struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Personality  *string   `json:"personality" gorm:"type:text"`
	Backstory    *string   `json:"backstory" gorm:"type:text"`
	TalkingStyle *string   `json:"talking_style" gorm:"type:text"`
	CreatedAt    time.Time `json:"-"`
	Sessions     []Session `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (Character) TableName() string {
	return "characters"
}

type CreateCharacterRequest struct {
	Name         string  `json:"name" binding:"required"`
	Personality  *string `json:"personality"`
	Backstory    *string `json:"backstory"`
	TalkingStyle *string `json:"talking_style"`
}
