package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"character-chat/backend/ai"
	"character-chat/backend/internal/analysis"
	"character-chat/backend/internal/models"
	"character-chat/backend/internal/prompt"
	"character-chat/backend/internal/repository"
	apperrors "character-chat/backend/pkg/errors"
	"character-chat/backend/pkg/logger"
)

const (
	// DefaultContextMessages is the history window used when the request gives none
	DefaultContextMessages = 10

	maxSessionIDLength = 64
	instrumentation    = "character-chat/backend/internal/service"
)

// ChatService runs chat turns: it records what the user said, assembles the
// prompt from persona, memories and recent history, and stores the reply.
type ChatService struct {
	store          *repository.Store
	completer      ai.Completer
	logger         *logger.Logger
	defaultContext int

	tracer   trace.Tracer
	turns    metric.Int64Counter
	facts    metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
}

func NewChatService(store *repository.Store, completer ai.Completer, log *logger.Logger, defaultContext int) (*ChatService, error) {
	if defaultContext <= 0 {
		defaultContext = DefaultContextMessages
	}

	meter := otel.Meter(instrumentation)

	turns, err := meter.Int64Counter("chat.turns",
		metric.WithDescription("Completed chat turns"))
	if err != nil {
		return nil, err
	}
	facts, err := meter.Int64Counter("chat.facts.extracted",
		metric.WithDescription("Facts extracted from user messages"))
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("chat.completion.failures",
		metric.WithDescription("Failed completion calls"))
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram("chat.completion.duration",
		metric.WithDescription("Completion call latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &ChatService{
		store:          store,
		completer:      completer,
		logger:         log,
		defaultContext: defaultContext,
		tracer:         otel.Tracer(instrumentation),
		turns:          turns,
		facts:          facts,
		failures:       failures,
		latency:        latency,
	}, nil
}

// preparedTurn is what the prepare unit of work hands to the completion step
type preparedTurn struct {
	sessionID string
	sentiment string
	facts     []string
	messages  []ai.Message
}

// Chat executes one turn. Everything up to and including the user message is
// committed before the completion call, so an upstream failure leaves the
// session, the extracted memories and the user message in place.
func (s *ChatService) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	ctx, span := s.tracer.Start(ctx, "chat.turn",
		trace.WithAttributes(attribute.Int("character.id", int(req.CharacterID))))
	defer span.End()

	window := s.defaultContext
	if req.MaxContextMessages != nil && *req.MaxContextMessages > 0 {
		window = *req.MaxContextMessages
	}

	turn, err := s.prepare(ctx, req, window)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "prepare failed")
		return nil, err
	}
	span.SetAttributes(attribute.String("session.id", turn.sessionID))
	log := s.logger.With("session_id", turn.sessionID, "character_id", req.CharacterID)

	reply, err := s.complete(ctx, turn.messages)
	if err != nil {
		s.failures.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		log.LogError(err, "Completion call failed")
		return nil, apperrors.NewUpstreamError(err)
	}

	assistant := &models.Message{
		SessionID: turn.sessionID,
		Role:      models.RoleAssistant,
		Content:   reply,
	}
	if err := s.store.Repositories().Messages.Create(ctx, assistant); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}

	s.turns.Add(ctx, 1)
	s.facts.Add(ctx, int64(len(turn.facts)))
	log.Debug("Chat turn completed",
		"sentiment", turn.sentiment,
		"facts", len(turn.facts),
		"context_messages", len(turn.messages),
	)

	return &models.ChatResponse{
		SessionID:      turn.sessionID,
		Reply:          reply,
		Sentiment:      turn.sentiment,
		ExtractedFacts: turn.facts,
	}, nil
}

func (s *ChatService) prepare(ctx context.Context, req *models.ChatRequest, window int) (*preparedTurn, error) {
	turn := &preparedTurn{}

	err := s.store.Transaction(ctx, func(repos *repository.Repositories) error {
		character, err := repos.Characters.GetByID(ctx, req.CharacterID)
		if err != nil {
			return characterLookupError(err)
		}

		session, err := resolveSession(ctx, repos, req.SessionID, character.ID)
		if err != nil {
			return err
		}
		turn.sessionID = session.ID

		turn.facts = analysis.ExtractFacts(req.Message)
		for _, fact := range turn.facts {
			if err := repos.Memories.Create(ctx, &models.Memory{SessionID: session.ID, Fact: fact}); err != nil {
				return fmt.Errorf("failed to save memory: %w", err)
			}
		}

		memories, err := repos.Memories.GetBySession(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("failed to load memories: %w", err)
		}
		known := make([]string, len(memories))
		for i, m := range memories {
			known[i] = m.Fact
		}

		turn.sentiment = analysis.AnalyzeSentiment(req.Message)

		recent, err := repos.Messages.GetRecent(ctx, session.ID, window)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		history := make([]ai.Message, len(recent))
		for i, m := range recent {
			history[i] = ai.Message{Role: m.Role, Content: m.Content}
		}

		systemPrompt := prompt.BuildSystemPrompt(character, known)
		turn.messages = prompt.AssembleMessages(systemPrompt, history, req.Message)

		sentiment := turn.sentiment
		user := &models.Message{
			SessionID: session.ID,
			Role:      models.RoleUser,
			Content:   req.Message,
			Sentiment: &sentiment,
		}
		if err := repos.Messages.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return turn, nil
}

func (s *ChatService) complete(ctx context.Context, messages []ai.Message) (string, error) {
	ctx, span := s.tracer.Start(ctx, "chat.completion",
		trace.WithAttributes(attribute.Int("messages", len(messages))))
	defer span.End()

	start := time.Now()
	reply, err := s.completer.Complete(ctx, messages)
	s.latency.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return reply, err
}

// resolveSession finds the requested session or creates it. A session that
// belongs to another character is never reused.
func resolveSession(ctx context.Context, repos *repository.Repositories, requested *string, characterID uint) (*models.Session, error) {
	if requested == nil || *requested == "" {
		session := &models.Session{ID: uuid.NewString(), CharacterID: characterID}
		if err := repos.Sessions.Create(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		return session, nil
	}

	id := *requested
	if len(id) > maxSessionIDLength {
		return nil, apperrors.NewBadRequestError(apperrors.CodeInvalidRequest,
			fmt.Sprintf("session_id must be at most %d characters", maxSessionIDLength))
	}

	session, err := repos.Sessions.GetByID(ctx, id)
	switch {
	case err == nil:
		if session.CharacterID != characterID {
			return nil, apperrors.NewConflictError(apperrors.CodeSessionCharacterMismatch,
				"Session belongs to a different character").
				WithDetails(map[string]any{"session_id": id, "character_id": session.CharacterID})
		}
		return session, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		session = &models.Session{ID: id, CharacterID: characterID}
		if err := repos.Sessions.Create(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		return session, nil
	default:
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
}
