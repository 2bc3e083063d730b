package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"

	"github.com/sukarame/si-karame/backend/internal/config"
)

// NewBackend builds the backend selected by cfg.Provider, wrapped with the
// configured concurrency limit. A missing credential is not an error: the
// returned backend reports Configured() == false.
func NewBackend(ctx context.Context, cfg config.AIConfig) (Backend, error) {
	var (
		backend Backend
		err     error
	)

	switch cfg.Provider {
	case config.ProviderArk:
		var chatModel model.BaseChatModel
		if cfg.CredentialConfigured() {
			chatModel, err = cfg.NewArkChatModel(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to create chat model: %w", err)
			}
		}
		backend, err = NewArkBackend(ctx, chatModel, cfg.HistoryLimit)
	default:
		backend, err = NewGeminiBackend(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
	}
	if err != nil {
		return nil, err
	}

	return Limit(backend, cfg.MaxConcurrent), nil
}
