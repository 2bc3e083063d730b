package ai

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// ArkBackend runs sessions through an eino chain (prompt template -> chat
// model). The Ark API is stateless, so each session replays its own
// history on every turn.
type ArkBackend struct {
	chain        compose.Runnable[map[string]any, *schema.Message]
	historyLimit int
}

// NewArkBackend compiles the chat chain around chatModel. historyLimit is
// the number of past turns replayed. A nil chatModel yields an
// unconfigured backend.
func NewArkBackend(ctx context.Context, chatModel model.BaseChatModel, historyLimit int) (*ArkBackend, error) {
	if chatModel == nil {
		return &ArkBackend{historyLimit: historyLimit}, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &ArkBackend{chain: runnable, historyLimit: historyLimit}, nil
}

// Name implements Backend.
func (b *ArkBackend) Name() string {
	return "ark"
}

// Configured implements Backend.
func (b *ArkBackend) Configured() bool {
	return b.chain != nil
}

// StartSession implements Backend. Temperature is fixed when the Ark chat
// model is built, so cfg.Temperature is not applied per session.
func (b *ArkBackend) StartSession(_ context.Context, cfg SessionConfig) (Session, error) {
	if b.chain == nil {
		return nil, ErrUnavailable
	}
	return &arkSession{backend: b, system: cfg.SystemInstruction}, nil
}

type arkSession struct {
	backend *ArkBackend
	system  string

	mu      sync.Mutex
	history []*schema.Message
}

func (s *arkSession) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	input := map[string]any{
		"system":  s.system,
		"history": s.window(),
		"query":   text,
	}

	response, err := s.backend.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil || response.Content == "" {
		return "", nil
	}

	s.history = append(s.history, schema.UserMessage(text), schema.AssistantMessage(response.Content, nil))
	return response.Content, nil
}

// window returns the most recent turns within the limit. History holds
// user/assistant pairs, so the window always starts on a user message.
func (s *arkSession) window() []*schema.Message {
	limit := s.backend.historyLimit * 2
	if limit <= 0 || len(s.history) == 0 {
		return nil
	}

	startIdx := 0
	if len(s.history) > limit {
		startIdx = len(s.history) - limit
	}
	return append([]*schema.Message(nil), s.history[startIdx:]...)
}
