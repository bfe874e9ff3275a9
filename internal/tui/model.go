package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"tailortalk/internal/assistant"
	"tailortalk/internal/util"
)

// KeyMap defines the keybindings for the chat TUI
type KeyMap struct {
	Send       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

var DefaultKeyMap = KeyMap{
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// Model is the Bubble Tea model for the chat transcript.
type Model struct {
	ctx       context.Context
	assistant *assistant.Assistant
	session   *assistant.Session

	input      textinput.Model
	transcript viewport.Model

	width         int
	height        int
	contentHeight int
	keys          KeyMap
	thinking      bool
	err           error
	viewportReady bool
}

// replyMsg signals that the assistant finished one turn. The transcript
// itself lives in the session; the message only carries the fault, if any.
type replyMsg struct {
	err error
}

// NewModel creates a chat model bound to one session. ctx bounds every
// assistant turn; canceling it stops in-flight calendar calls when the
// chat is quit.
func NewModel(ctx context.Context, a *assistant.Assistant, s *assistant.Session) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	input := textinput.New()
	input.Placeholder = "Ask me to book an appointment with date/time..."
	input.Prompt = PromptStyle.Render("> ")
	input.CharLimit = 280
	input.Focus()

	return Model{
		ctx:       ctx,
		assistant: a,
		session:   s,
		input:     input,
		keys:      DefaultKeyMap,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// sendCmd runs one assistant turn. Turns are strictly serialized: the
// input stays disabled until the reply (or fault) comes back.
func (m Model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.assistant.Handle(m.ctx, m.session, text)
		return replyMsg{err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.calculateLayout()

		if !m.viewportReady {
			m.transcript = viewport.New(m.contentWidth(), m.contentHeight)
			m.viewportReady = true
		} else {
			m.transcript.Width = m.contentWidth()
			m.transcript.Height = m.contentHeight
		}
		m.input.Width = m.contentWidth() - 4
		m.updateTranscript()
		m.transcript.GotoBottom()
		return m, nil

	case replyMsg:
		m.thinking = false
		m.err = msg.err
		m.input.Focus()
		m.updateTranscript()
		m.transcript.GotoBottom()
		return m, textinput.Blink

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.ScrollUp):
			m.transcript.ViewUp()
			return m, nil

		case key.Matches(msg, m.keys.ScrollDown):
			m.transcript.ViewDown()
			return m, nil

		case key.Matches(msg, m.keys.Send):
			if m.thinking {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.input.Blur()
			m.thinking = true
			m.err = nil
			m.updateTranscript()
			m.transcript.GotoBottom()
			return m, m.sendCmd(text)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) calculateLayout() {
	height := m.height
	if height < 10 {
		height = 10
	}
	// Header: 2 lines, input: 2 lines, help: 2 lines, padding: 2 lines
	m.contentHeight = height - 8
	if m.contentHeight < 4 {
		m.contentHeight = 4
	}
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderHeader(),
		m.transcript.View(),
	}

	if m.thinking {
		sections = append(sections, ThinkingStyle.Render("Thinking..."))
	} else if m.err != nil {
		sections = append(sections, ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		sections = append(sections, "")
	}

	sections = append(sections, m.input.View(), m.renderHelp())

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render("TailorTalk — Book Appointments")
	date := StatusStyle.Render(time.Now().Format("Monday, January 2, 2006"))

	// Pad the title out so the date hugs the right edge. Width is
	// measured on the rendered strings, escapes excluded.
	gap := m.contentWidth() - ansi.StringWidth(title) - ansi.StringWidth(date)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + date
}

func (m Model) renderHelp() string {
	parts := []string{
		HelpKeyStyle.Render("enter") + HelpStyle.Render(" send"),
		HelpKeyStyle.Render("ctrl+u/d") + HelpStyle.Render(" scroll"),
		HelpKeyStyle.Render("esc") + HelpStyle.Render(" quit"),
	}
	return HelpStyle.Render(strings.Join(parts, "  "))
}

// updateTranscript re-renders the conversation into the viewport.
func (m *Model) updateTranscript() {
	if !m.viewportReady {
		return
	}

	width := m.contentWidth()
	var blocks []string
	for _, turn := range m.session.History() {
		blocks = append(blocks, renderTurn(turn, width))
	}
	if len(blocks) == 0 {
		blocks = append(blocks, StatusStyle.Render("Let me schedule your meetings!"))
	}
	m.transcript.SetContent(strings.Join(blocks, "\n\n"))
}

// renderTurn formats one conversation entry as a labeled, wrapped block.
// Bare URLs in assistant replies become OSC-8 hyperlinks.
func renderTurn(turn assistant.Turn, width int) string {
	label := BotLabelStyle.Render("TailorTalk")
	textStyle := BotTextStyle
	if turn.Role == assistant.RoleUser {
		label = UserLabelStyle.Render("You")
		textStyle = UserTextStyle
	}

	text := turn.Text
	if turn.Role == assistant.RoleAssistant {
		text = linkify(text)
	}

	body := textStyle.Width(width).Render(text)
	return label + "\n" + body
}

// linkify replaces bare URLs with clickable links so long calendar URLs
// don't flood the transcript.
func linkify(text string) string {
	words := strings.Fields(text)
	changed := false
	for i, w := range words {
		if strings.HasPrefix(w, "https://") || strings.HasPrefix(w, "http://") {
			words[i] = util.MakeHyperlink(w, util.TruncateText(w, 40))
			changed = true
		}
	}
	if !changed {
		return text
	}
	return strings.Join(words, " ")
}
