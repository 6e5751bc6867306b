package repository

import (
	"context"

	"gorm.io/gorm"

	"character-chat/backend/internal/models"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	// GetByCharacter returns at most limit sessions, newest first
	GetByCharacter(ctx context.Context, characterID uint, limit int) ([]models.Session, error)
	// Delete removes the session with its messages and memories
	Delete(ctx context.Context, id string) error
	// Clear removes the session's messages and memories but keeps the session
	Clear(ctx context.Context, id string) error
}

type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *GormSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepository) GetByCharacter(ctx context.Context, characterID uint, limit int) ([]models.Session, error) {
	var sessions []models.Session
	query := r.db.WithContext(ctx).
		Where("character_id = ?", characterID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&sessions).Error
	if sessions == nil {
		sessions = []models.Session{}
	}
	return sessions, err
}

func (r *GormSessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", id).First(&models.Session{}).Error; err != nil {
			return err
		}
		if err := deleteSessionChildren(tx, []string{id}); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Session{}).Error
	})
}

func (r *GormSessionRepository) Clear(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", id).First(&models.Session{}).Error; err != nil {
			return err
		}
		return deleteSessionChildren(tx, []string{id})
	})
}
