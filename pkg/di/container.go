package di

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"character-chat/backend/ai"
	"character-chat/backend/internal/repository"
	"character-chat/backend/internal/service"
	"character-chat/backend/pkg/config"
	"character-chat/backend/pkg/health"
	"character-chat/backend/pkg/logger"
)

// Container holds all the dependencies for the application
type Container struct {
	DB               *gorm.DB
	Logger           *logger.Logger
	Config           *config.Config
	Store            *repository.Store
	Completer        ai.Completer
	CharacterService *service.CharacterService
	SessionService   *service.SessionService
	ChatService      *service.ChatService
	Health           *health.Checker
}

// Config holds the configuration for the container
type Config struct {
	App          *config.Config
	LoggerConfig logger.Config
	// Logger, when set, is used instead of building one from LoggerConfig
	Logger *logger.Logger
	// Completer, when set, replaces the OpenAI client
	Completer ai.Completer
	// HealthPeriod is the interval of background health checks
	HealthPeriod time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		App:          config.Get(),
		LoggerConfig: logger.DefaultConfig(),
		HealthPeriod: 30 * time.Second,
	}
}

// New creates a new dependency injection container
func New(db *gorm.DB, cfg *Config) (*Container, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.App == nil {
		cfg.App = config.Get()
	}
	if cfg.HealthPeriod <= 0 {
		cfg.HealthPeriod = 30 * time.Second
	}

	log := cfg.Logger
	if log == nil {
		log = logger.New(cfg.LoggerConfig)
	}

	completer := cfg.Completer
	if completer == nil {
		client, err := ai.NewOpenAIClient(ai.OpenAIConfig{
			APIKey:      cfg.App.Completion.APIKey,
			BaseURL:     cfg.App.Completion.BaseURL,
			Model:       cfg.App.Completion.Model,
			Temperature: cfg.App.Completion.Temperature,
			MaxTokens:   cfg.App.Completion.MaxTokens,
			Timeout:     cfg.App.Completion.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create completion client: %w", err)
		}
		log.Info("Completion client configured", "model", client.Model())
		completer = client
	}

	store := repository.NewStore(db)

	chatService, err := service.NewChatService(store, completer, log, cfg.App.Chat.DefaultContextMessages)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %w", err)
	}

	checker := health.NewChecker(log, cfg.HealthPeriod)
	checker.RegisterDatabaseCheck(func(ctx context.Context) error {
		return config.TestConnection(ctx, db)
	})

	return &Container{
		DB:               db,
		Logger:           log,
		Config:           cfg.App,
		Store:            store,
		Completer:        completer,
		CharacterService: service.NewCharacterService(store, log),
		SessionService:   service.NewSessionService(store, log, cfg.App.Chat.SessionListLimit),
		ChatService:      chatService,
		Health:           checker,
	}, nil
}
