package tui

import (
	"context"

	"github.com/a-h/gqlchat/conversation"
	"github.com/a-h/gqlchat/models"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	title    = "AI Chat Assistant"
	subtitle = "Your conversational AI helper"
)

type replyMsg struct {
	resp models.ChatResponse
	err  error
}

// Model is the chat screen: header, transcript and input.
type Model struct {
	ctx          context.Context
	conversation *conversation.Conversation
	history      History
	input        Input
}

func New(ctx context.Context, c *conversation.Conversation) Model {
	m := Model{
		ctx:          ctx,
		conversation: c,
		history:      NewHistory(),
		input:        NewInput(),
	}
	m.history.SetMessages(c.History(), c.Pending())
	return m
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.SetWidth(msg.Width)
		m.history.SetSize(msg.Width, max(msg.Height-m.input.Height()-lipgloss.Height(m.header())-1, 1))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.history, cmd = m.history.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	case SubmitMsg:
		input, ok := m.conversation.Begin(msg.Content)
		if !ok {
			return m, nil
		}
		m.input.SetDisabled(true)
		cmd := m.history.SetMessages(m.conversation.History(), true)
		return m, tea.Batch(cmd, m.send(input))
	case replyMsg:
		m.conversation.Finish(msg.resp, msg.err)
		cmd := m.input.SetDisabled(false)
		m.history.SetMessages(m.conversation.History(), false)
		return m, cmd
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	case cursor.BlinkMsg:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) send(input models.ChatInput) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.conversation.Send(m.ctx, input)
		return replyMsg{resp: resp, err: err}
	}
}

func (m Model) header() string {
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), subtitleStyle.Render(subtitle))
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		m.history.View(),
		m.input.View(),
	)
}
