package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukarame/si-karame/backend/internal/model/chat"
	"github.com/sukarame/si-karame/backend/internal/model/knowledge"
	"github.com/sukarame/si-karame/backend/internal/service/conversation"
)

type heldReplier struct {
	release chan struct{}
}

func (r heldReplier) Send(context.Context, string) string {
	<-r.release
	return "Harga snorkeling **Rp 50.000**."
}

func newTestModel(t *testing.T) (ChatModel, *conversation.Conversation, chan struct{}) {
	t.Helper()
	release := make(chan struct{})
	village := knowledge.Seed()
	conv := conversation.New(heldReplier{release: release}, village.Assistant.Welcome)
	m := NewChatModel(conv, village)
	t.Cleanup(m.Close)
	return m, conv, release
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m ChatModel, msg tea.Msg) ChatModel {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(ChatModel)
	require.True(t, ok)
	return got
}

func TestSuggestionNumberSubmitsOnEnter(t *testing.T) {
	m, conv, release := newTestModel(t)
	village := knowledge.Seed()

	m = update(t, m, keyRunes("2"))
	assert.Len(t, conv.Messages(), 1, "a digit alone only fills the input")
	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.SenderUser, msgs[1].Sender)
	assert.Equal(t, village.Suggestions[1], msgs[1].Text)
	assert.True(t, conv.IsLoading())

	close(release)
	conv.Wait()
	assert.Len(t, conv.Messages(), 3)
}

func TestQuestionStartingWithDigitIsSentAsTyped(t *testing.T) {
	m, conv, release := newTestModel(t)

	for _, r := range "2 orang" {
		m = update(t, m, keyRunes(string(r)))
	}
	assert.Equal(t, "2 orang", m.input.Value())
	assert.Equal(t, "2 orang", conv.Draft())
	assert.Len(t, conv.Messages(), 1)

	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "2 orang", msgs[1].Text)

	close(release)
	conv.Wait()
}

func TestDigitBeyondSuggestionsIsSentAsTyped(t *testing.T) {
	m, conv, release := newTestModel(t)

	m.input.SetValue("9")
	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "9", msgs[1].Text)

	close(release)
	conv.Wait()
}

func TestEnterSubmitsAndLocksInput(t *testing.T) {
	m, conv, release := newTestModel(t)

	m.input.SetValue("Ada homestay?")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.input.Value())
	require.Len(t, conv.Messages(), 2)
	assert.Equal(t, "Ada homestay?", conv.Messages()[1].Text)

	m = update(t, m, keyRunes("x"))
	assert.Empty(t, m.input.Value(), "typing is ignored while loading")

	m.input.SetValue("1")
	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, conv.Messages(), 2, "nothing is admitted while loading")

	close(release)
	conv.Wait()
}

func TestEnterOnBlankInputDoesNothing(t *testing.T) {
	m, conv, release := newTestModel(t)
	defer close(release)

	m.input.SetValue("   ")
	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Len(t, conv.Messages(), 1)
	assert.False(t, conv.IsLoading())
}

func TestViewShowsIntroAndSuggestions(t *testing.T) {
	m, conv, release := newTestModel(t)
	village := knowledge.Seed()

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})
	view := m.View()
	assert.Contains(t, view, village.Intro.Title)
	assert.Contains(t, view, "[1]")
	assert.Contains(t, view, "Pertanyaan populer")

	m.input.SetValue("1")
	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	close(release)
	conv.Wait()

	m.refresh()
	view = m.View()
	assert.NotContains(t, view, "Pertanyaan populer")
	assert.NotContains(t, view, "sedang mengetik")
}

func TestEscQuits(t *testing.T) {
	m, _, release := newTestModel(t)
	defer close(release)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderInfo(t *testing.T) {
	out := RenderInfo(knowledge.Seed(), 80, DefaultStyles())

	assert.Contains(t, out, "Desa Wisata Sukarame")
	assert.Contains(t, out, "Rp 500.000/malam")
	assert.Contains(t, out, "Homestay")
}
