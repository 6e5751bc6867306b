package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"character-chat/backend/internal/models"
	"character-chat/backend/internal/repository"
	apperrors "character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/logger"
)

type CharacterService struct {
	store  *repository.Store
	logger *logger.Logger
}

func NewCharacterService(store *repository.Store, log *logger.Logger) *CharacterService {
	return &CharacterService{
		store:  store,
		logger: log,
	}
}

func (s *CharacterService) CreateCharacter(ctx context.Context, req *models.CreateCharacterRequest) (*models.Character, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError(apperrors.CodeInvalidRequest, "Character name is required")
	}

	repos := s.store.Repositories()

	_, err := repos.Characters.GetByName(ctx, name)
	if err == nil {
		return nil, characterExists(name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up character name: %w", err)
	}

	character := &models.Character{
		Name:         name,
		Personality:  req.Personality,
		Backstory:    req.Backstory,
		TalkingStyle: req.TalkingStyle,
	}
	if err := repos.Characters.Create(ctx, character); err != nil {
		// Lost a race with a concurrent create
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, characterExists(name)
		}
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	s.logger.Info("Character created", "character_id", character.ID, "name", character.Name)
	return character, nil
}

func (s *CharacterService) GetCharacter(ctx context.Context, id uint) (*models.Character, error) {
	character, err := s.store.Repositories().Characters.GetByID(ctx, id)
	if err != nil {
		return nil, characterLookupError(err)
	}
	return character, nil
}

func (s *CharacterService) ListCharacters(ctx context.Context) ([]models.Character, error) {
	characters, err := s.store.Repositories().Characters.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

// DeleteCharacter removes the character and everything recorded under its sessions
func (s *CharacterService) DeleteCharacter(ctx context.Context, id uint) error {
	if err := s.store.Repositories().Characters.Delete(ctx, id); err != nil {
		return characterLookupError(err)
	}

	s.logger.Info("Character deleted", "character_id", id)
	return nil
}

func characterExists(name string) error {
	return apperrors.NewConflictError(apperrors.CodeCharacterExists, "Character name already exists").
		WithDetails(map[string]string{"name": name})
}

func characterLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(apperrors.CodeCharacterNotFound, "Character not found")
	}
	return fmt.Errorf("failed to load character: %w", err)
}

func sessionLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(apperrors.CodeSessionNotFound, "Session not found")
	}
	return fmt.Errorf("failed to load session: %w", err)
}
