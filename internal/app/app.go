// Package app assembles the assistant from configuration. Both the HTTP
// server and the terminal client start from here.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/internal/config"
	"github.com/sukarame/si-karame/backend/internal/model/knowledge"
	"github.com/sukarame/si-karame/backend/internal/service/ai"
	"github.com/sukarame/si-karame/backend/internal/service/chat"
	"github.com/sukarame/si-karame/backend/internal/service/conversation"
	"github.com/sukarame/si-karame/backend/pkg/logger"
)

// App holds the long-lived pieces shared by every conversation.
type App struct {
	Config  *config.Config
	Village knowledge.Village
	Backend ai.Backend
	Session ai.SessionConfig
	Logger  *zap.Logger
}

// New loads the village knowledge and builds the generative backend.
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	l = logger.OrNop(l)

	village, err := knowledge.Load(cfg.Knowledge.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge: %w", err)
	}

	backend, err := ai.NewBackend(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ai backend: %w", err)
	}

	return build(cfg, village, backend, l), nil
}

// NewWithBackend is New with an already constructed backend.
func NewWithBackend(cfg *config.Config, village knowledge.Village, backend ai.Backend, l *zap.Logger) *App {
	return build(cfg, village, backend, logger.OrNop(l))
}

func build(cfg *config.Config, village knowledge.Village, backend ai.Backend, l *zap.Logger) *App {
	a := &App{
		Config:  cfg,
		Village: village,
		Backend: backend,
		Session: ai.SessionConfig{
			SystemInstruction: ai.NewPromptBuilder(village).BuildSystemPrompt(),
			Temperature:       cfg.AI.Temperature,
		},
		Logger: l,
	}

	if backend.Configured() {
		l.Info("ai backend ready", zap.String("backend", backend.Name()))
	} else {
		l.Warn("ai credential not configured, replies will explain the missing key", zap.String("backend", backend.Name()))
	}
	return a
}

// NewManager creates a session manager for one visitor. With eager init
// enabled the backend session is opened immediately; failures are logged
// and retried lazily on the first turn.
func (a *App) NewManager(ctx context.Context) *chat.Manager {
	mgr := chat.NewManager(a.Backend, a.Session,
		chat.WithLogger(a.Logger),
		chat.WithTimeout(a.Config.AI.Timeout),
	)

	if a.Config.Chat.EagerInit && a.Backend.Configured() {
		if err := mgr.InitializeSession(ctx); err != nil {
			a.Logger.Warn("eager session init failed", zap.Error(err))
		}
	}
	return mgr
}

// NewConversation creates a conversation opened with the welcome message.
func (a *App) NewConversation(ctx context.Context) (*conversation.Conversation, error) {
	return conversation.New(a.NewManager(ctx), a.Village.Assistant.Welcome,
		conversation.WithLogger(a.Logger),
	), nil
}

// NewRegistry returns a registry whose conversations come from this App.
func (a *App) NewRegistry() *conversation.Registry {
	return conversation.NewRegistry(a.NewConversation, a.Config.Chat.SessionTTL, a.Logger)
}
