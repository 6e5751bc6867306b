package repository

import (
	"context"

	"gorm.io/gorm"

	"character-chat/backend/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// GetBySession returns the full history in chronological order
	GetBySession(ctx context.Context, sessionID string) ([]models.Message, error)
	// GetRecent returns the last n messages in chronological order
	GetRecent(ctx context.Context, sessionID string, n int) ([]models.Message, error)
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *GormMessageRepository) GetBySession(ctx context.Context, sessionID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, err
}

func (r *GormMessageRepository) GetRecent(ctx context.Context, sessionID string, n int) ([]models.Message, error) {
	messages := []models.Message{}
	if n <= 0 {
		return messages, nil
	}

	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		Limit(n).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
