package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiBackend opens chat sessions on the Gemini API.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a backend for model. An empty apiKey yields an
// unconfigured backend that never dials out. baseURL overrides the API
// endpoint, e.g. for a proxy; empty keeps the default.
func NewGeminiBackend(ctx context.Context, apiKey, model, baseURL string) (*GeminiBackend, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if apiKey == "" {
		return &GeminiBackend{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiBackend{client: client, model: model}, nil
}

// Name implements Backend.
func (b *GeminiBackend) Name() string {
	return "gemini:" + b.model
}

// Configured implements Backend.
func (b *GeminiBackend) Configured() bool {
	return b.client != nil
}

// StartSession implements Backend. Creating a chat is local; the first
// network round trip happens on Send.
func (b *GeminiBackend) StartSession(ctx context.Context, cfg SessionConfig) (Session, error) {
	if b.client == nil {
		return nil, ErrUnavailable
	}

	temperature := float32(cfg.Temperature)
	chat, err := b.client.Chats.Create(ctx, b.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser),
		Temperature:       &temperature,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini chat: %w", err)
	}

	return &geminiSession{chat: chat}, nil
}

type geminiSession struct {
	chat *genai.Chat
}

func (s *geminiSession) Send(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("gemini send: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}
