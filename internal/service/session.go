package service

import (
	"context"
	"fmt"

	"character-chat/backend/internal/models"
	"character-chat/backend/internal/repository"
	"character-chat/backend/pkg/logger"
)

// DefaultSessionListLimit caps how many sessions are listed per character
const DefaultSessionListLimit = 20

type SessionService struct {
	store     *repository.Store
	logger    *logger.Logger
	listLimit int
}

func NewSessionService(store *repository.Store, log *logger.Logger, listLimit int) *SessionService {
	if listLimit <= 0 {
		listLimit = DefaultSessionListLimit
	}
	return &SessionService{
		store:     store,
		logger:    log,
		listLimit: listLimit,
	}
}

// ListSessions returns the most recent sessions of a character, newest first.
// An unknown character simply has no sessions.
func (s *SessionService) ListSessions(ctx context.Context, characterID uint) ([]models.Session, error) {
	sessions, err := s.store.Repositories().Sessions.GetByCharacter(ctx, characterID, s.listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.store.Repositories().Sessions.Delete(ctx, sessionID); err != nil {
		return sessionLookupError(err)
	}

	s.logger.Info("Session deleted", "session_id", sessionID)
	return nil
}

// ClearSession drops the session's messages and memories but keeps the session itself
func (s *SessionService) ClearSession(ctx context.Context, sessionID string) error {
	if err := s.store.Repositories().Sessions.Clear(ctx, sessionID); err != nil {
		return sessionLookupError(err)
	}

	s.logger.Info("Session cleared", "session_id", sessionID)
	return nil
}

// History returns every message of the session in chronological order
func (s *SessionService) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	messages, err := s.store.Repositories().Messages.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return messages, nil
}
