// Package ui implements the terminal chat client.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sukarame/si-karame/backend/internal/model/chat"
	"github.com/sukarame/si-karame/backend/internal/model/knowledge"
	"github.com/sukarame/si-karame/backend/internal/service/conversation"
)

const (
	maxSuggestions = 4
	headerHeight   = 2
	footerHeight   = 9
	defaultWidth   = 80
	defaultHeight  = 24
)

type (
	eventMsg        conversation.Event
	eventsClosedMsg struct{}
)

// ChatModel is the bubbletea model of one visitor conversation.
type ChatModel struct {
	conv        *conversation.Conversation
	village     knowledge.Village
	events      <-chan conversation.Event
	unsubscribe func()

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	styles   Styles

	width  int
	height int
}

// NewChatModel binds the client to conv. The model subscribes to conv
// immediately; quitting ends the subscription.
func NewChatModel(conv *conversation.Conversation, village knowledge.Village) ChatModel {
	styles := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Tanya tentang Desa Wisata Sukarame, atau ketik 1-4 untuk pertanyaan populer"
	ti.Prompt = "│ "
	ti.CharLimit = 1000
	ti.Width = defaultWidth - 4
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(defaultWidth, defaultHeight-headerHeight-footerHeight)
	// Letters must reach the input, so only paging keys scroll.
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	events, unsubscribe := conv.Subscribe()

	m := ChatModel{
		conv:        conv,
		village:     village,
		events:      events,
		unsubscribe: unsubscribe,
		input:       ti,
		viewport:    vp,
		spinner:     sp,
		renderer:    newMarkdownRenderer(defaultWidth),
		styles:      styles,
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.refresh()
	return m
}

func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-8),
	)
	if err != nil {
		return nil
	}
	return r
}

func waitForEvent(events <-chan conversation.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(evt)
	}
}

// Init implements tea.Model.
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

// Update implements tea.Model.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.unsubscribe()
			return m, tea.Quit
		case tea.KeyEnter:
			text := m.input.Value()
			if suggestion, ok := m.suggestionFor(text); ok {
				text = suggestion
			}
			return m.submit(text)
		}
		if !m.conv.IsLoading() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.conv.SetDraft(m.input.Value())
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 3)
		m.input.Width = msg.Width - 4
		m.renderer = newMarkdownRenderer(msg.Width)
		m.refresh()

	case eventMsg:
		m.refresh()
		cmds = append(cmds, waitForEvent(m.events))
		if msg.Type == conversation.EventLoading {
			if msg.Loading {
				m.input.Blur()
				cmds = append(cmds, m.spinner.Tick)
			} else {
				cmds = append(cmds, m.input.Focus())
			}
		}

	case eventsClosedMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		if m.conv.IsLoading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

// submit hands text to the conversation. Refused input is left untouched.
func (m ChatModel) submit(text string) (tea.Model, tea.Cmd) {
	if !m.conv.Submit(text) {
		return m, nil
	}
	m.input.Reset()
	m.input.Blur()
	m.refresh()
	return m, m.spinner.Tick
}

// suggestionFor maps a lone digit submitted while suggestions are on
// screen to the matching suggested question. Digits inside a longer
// question are plain text.
func (m ChatModel) suggestionFor(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if len(input) != 1 || !m.conv.ShowSuggestions() {
		return "", false
	}
	idx := int(input[0]) - '1'
	if idx < 0 || idx >= len(m.suggestions()) {
		return "", false
	}
	return m.suggestions()[idx], true
}

func (m ChatModel) suggestions() []string {
	if len(m.village.Suggestions) > maxSuggestions {
		return m.village.Suggestions[:maxSuggestions]
	}
	return m.village.Suggestions
}

func (m *ChatModel) refresh() {
	m.viewport.SetContent(m.renderTranscript(m.conv.Snapshot()))
	m.viewport.GotoBottom()
}

func (m ChatModel) renderTranscript(snap conversation.Snapshot) string {
	var b strings.Builder

	if snap.ShowIntro && m.village.Intro.Title != "" {
		card := m.styles.IntroCard.Width(m.width - 4).Render(
			m.styles.BotLabel.Render(m.village.Intro.Title) + "\n" + m.village.Intro.Body,
		)
		b.WriteString(card)
		b.WriteString("\n\n")
	}

	for _, msg := range snap.Messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m ChatModel) renderMessage(msg chat.Message) string {
	if msg.Sender == chat.SenderUser {
		bubble := m.styles.UserBubble.MaxWidth(m.width * 3 / 4).Render(msg.Text)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble)
	}
	return m.styles.BotLabel.Render(m.village.Assistant.Name) + "\n" + m.markdown(msg.Text)
}

func (m ChatModel) markdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// View implements tea.Model.
func (m ChatModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(fmt.Sprintf("%s · %s", m.village.Assistant.Name, m.village.Name)))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.conv.ShowSuggestions() {
		b.WriteString(m.styles.Muted.Render("Pertanyaan populer:"))
		b.WriteString("\n")
		for i, s := range m.suggestions() {
			b.WriteString(m.styles.Key.Render(fmt.Sprintf("[%d] ", i+1)))
			b.WriteString(m.styles.Suggestion.Render(s))
			b.WriteString("\n")
		}
	}

	if m.conv.IsLoading() {
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Status.Render(fmt.Sprintf(" %s sedang mengetik...", m.village.Assistant.Name)))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Enter kirim · PgUp/PgDn gulir · Esc keluar"))
	return b.String()
}

// Close ends the model's subscription.
func (m ChatModel) Close() {
	m.unsubscribe()
}
