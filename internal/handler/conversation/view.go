package conversation

import (
	"go.uber.org/zap"

	"github.com/sukarame/si-karame/backend/internal/model/chat"
	"github.com/sukarame/si-karame/backend/internal/service/conversation"
)

// HTMLRenderer turns a Markdown reply into sanitised HTML.
type HTMLRenderer interface {
	HTML(text string) (string, error)
}

type messageView struct {
	chat.Message
	HTML string `json:"html,omitempty"`
}

type snapshotView struct {
	ID              string        `json:"id"`
	Messages        []messageView `json:"messages"`
	Loading         bool          `json:"loading"`
	ShowIntro       bool          `json:"showIntro"`
	ShowSuggestions bool          `json:"showSuggestions"`
	Suggestions     []string      `json:"suggestions"`
}

type loadingView struct {
	Loading bool `json:"loading"`
}

type presenter struct {
	renderer    HTMLRenderer
	suggestions []string
	logger      *zap.Logger
}

// message renders bot text as HTML. User text is never rendered.
func (p presenter) message(m chat.Message) messageView {
	view := messageView{Message: m}
	if p.renderer == nil || !m.FromBot() {
		return view
	}
	html, err := p.renderer.HTML(m.Text)
	if err != nil {
		p.logger.Warn("render reply failed", zap.String("message", m.ID), zap.Error(err))
		return view
	}
	view.HTML = html
	return view
}

func (p presenter) snapshot(s conversation.Snapshot) snapshotView {
	messages := make([]messageView, 0, len(s.Messages))
	for _, m := range s.Messages {
		messages = append(messages, p.message(m))
	}
	suggestions := p.suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return snapshotView{
		ID:              s.ID,
		Messages:        messages,
		Loading:         s.Loading,
		ShowIntro:       s.ShowIntro,
		ShowSuggestions: s.ShowSuggestions,
		Suggestions:     suggestions,
	}
}

// event converts a conversation event into its wire name and payload.
func (p presenter) event(evt conversation.Event) (string, any) {
	if evt.Type == conversation.EventMessage && evt.Message != nil {
		return string(evt.Type), p.message(*evt.Message)
	}
	return string(conversation.EventLoading), loadingView{Loading: evt.Loading}
}
