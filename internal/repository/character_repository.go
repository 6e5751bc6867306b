package repository

import (
	"context"

	"gorm.io/gorm"

	"character-chat/backend/internal/models"
)

type CharacterRepository interface {
	Create(ctx context.Context, character *models.Character) error
	GetByID(ctx context.Context, id uint) (*models.Character, error)
	GetByName(ctx context.Context, name string) (*models.Character, error)
	GetAll(ctx context.Context) ([]models.Character, error)
	// Delete removes the character together with its sessions, messages and memories.
	// It returns gorm.ErrRecordNotFound when no such character exists.
	Delete(ctx context.Context, id uint) error
}

type GormCharacterRepository struct {
	db *gorm.DB
}

func NewGormCharacterRepository(db *gorm.DB) *GormCharacterRepository {
	return &GormCharacterRepository{db: db}
}

func (r *GormCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	return r.db.WithContext(ctx).Create(character).Error
}

func (r *GormCharacterRepository) GetByID(ctx context.Context, id uint) (*models.Character, error) {
	var character models.Character
	err := r.db.WithContext(ctx).First(&character, id).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *GormCharacterRepository) GetByName(ctx context.Context, name string) (*models.Character, error) {
	var character models.Character
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&character).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *GormCharacterRepository) GetAll(ctx context.Context) ([]models.Character, error) {
	var characters []models.Character
	err := r.db.WithContext(ctx).Order("id ASC").Find(&characters).Error
	if characters == nil {
		characters = []models.Character{}
	}
	return characters, err
}

func (r *GormCharacterRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Character{}, id).Error; err != nil {
			return err
		}

		sessionIDs := tx.Model(&models.Session{}).Select("id").Where("character_id = ?", id)
		if err := deleteSessionChildren(tx, sessionIDs); err != nil {
			return err
		}
		if err := tx.Where("character_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Character{}, id).Error
	})
}
