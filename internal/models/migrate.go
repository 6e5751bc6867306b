package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the tables for every persisted model.
// Parents are listed before children so foreign keys resolve.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Character{}, &Session{}, &Message{}, &Memory{})
}
