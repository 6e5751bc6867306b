// Package repository holds the gorm-backed persistence layer for characters,
// sessions, messages and memories.
package repository

import (
	"context"

	"gorm.io/gorm"

	"character-chat/backend/internal/models"
)

// Repositories bundles every repository bound to the same connection or transaction
type Repositories struct {
	Characters CharacterRepository
	Sessions   SessionRepository
	Messages   MessageRepository
	Memories   MemoryRepository
}

// Store opens units of work over the database
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Repositories returns repositories bound to the store's connection
func (s *Store) Repositories() *Repositories {
	return newRepositories(s.db)
}

// Transaction runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(repos *Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}

// DB exposes the underlying connection for health checks
func (s *Store) DB() *gorm.DB {
	return s.db
}

func newRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Characters: NewGormCharacterRepository(db),
		Sessions:   NewGormSessionRepository(db),
		Messages:   NewGormMessageRepository(db),
		Memories:   NewGormMemoryRepository(db),
	}
}

// deleteSessionChildren removes every message and memory of the matched sessions
func deleteSessionChildren(tx *gorm.DB, sessionIDs any) error {
	if err := tx.Where("session_id IN (?)", sessionIDs).Delete(&models.Message{}).Error; err != nil {
		return err
	}
	return tx.Where("session_id IN (?)", sessionIDs).Delete(&models.Memory{}).Error
}
