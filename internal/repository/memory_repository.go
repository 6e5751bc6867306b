package repository

import (
	"context"

	"gorm.io/gorm"

	"character-chat/backend/internal/models"
)

type MemoryRepository interface {
	Create(ctx context.Context, memory *models.Memory) error
	GetBySession(ctx context.Context, sessionID string) ([]models.Memory, error)
}

type GormMemoryRepository struct {
	db *gorm.DB
}

func NewGormMemoryRepository(db *gorm.DB) *GormMemoryRepository {
	return &GormMemoryRepository{db: db}
}

func (r *GormMemoryRepository) Create(ctx context.Context, memory *models.Memory) error {
	return r.db.WithContext(ctx).Create(memory).Error
}

func (r *GormMemoryRepository) GetBySession(ctx context.Context, sessionID string) ([]models.Memory, error) {
	var memories []models.Memory
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&memories).Error
	if memories == nil {
		memories = []models.Memory{}
	}
	return memories, err
}
