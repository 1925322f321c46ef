package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SubmitMsg is emitted by Input when the user sends a message.
type SubmitMsg struct {
	Content string
}

type inputKeyMap struct {
	Submit  key.Binding
	Send    key.Binding
	Newline key.Binding
}

var defaultInputKeyMap = inputKeyMap{
	Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Send:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
	Newline: key.NewBinding(key.WithKeys("alt+enter"), key.WithHelp("alt+enter", "new line")),
}

// Input is a multi-line text entry with a send control.
type Input struct {
	textarea textarea.Model
	keys     inputKeyMap
	disabled bool
}

func NewInput() Input {
	ta := textarea.New()
	ta.Placeholder = "Send a message..."
	ta.Focus()

	ta.Prompt = "┃ "
	ta.CharLimit = 0

	ta.SetHeight(3)

	// Remove cursor line styling.
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ta.ShowLineNumbers = false

	// Plain enter submits, so it must never reach the textarea as a newline.
	ta.KeyMap.InsertNewline = defaultInputKeyMap.Newline

	return Input{
		textarea: ta,
		keys:     defaultInputKeyMap,
	}
}

func (in Input) Value() string {
	return in.textarea.Value()
}

func (in *Input) SetValue(s string) {
	in.textarea.SetValue(s)
}

func (in Input) Disabled() bool {
	return in.disabled
}

// SetDisabled blocks both typing and sending.
func (in *Input) SetDisabled(disabled bool) tea.Cmd {
	in.disabled = disabled
	if disabled {
		in.textarea.Blur()
		return nil
	}
	return in.textarea.Focus()
}

func (in *Input) SetWidth(w int) {
	in.textarea.SetWidth(w)
}

func (in Input) Height() int {
	// Textarea, send control and help line.
	return in.textarea.Height() + 2
}

func (in Input) Update(msg tea.Msg) (Input, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if in.disabled {
			return in, nil
		}
		if key.Matches(msg, in.keys.Submit, in.keys.Send) {
			return in.submit()
		}
	}
	var cmd tea.Cmd
	in.textarea, cmd = in.textarea.Update(msg)
	return in, cmd
}

func (in Input) submit() (Input, tea.Cmd) {
	content := strings.TrimSpace(in.textarea.Value())
	if content == "" || in.disabled {
		return in, nil
	}
	in.textarea.Reset()
	return in, func() tea.Msg {
		return SubmitMsg{Content: content}
	}
}

func (in Input) View() string {
	send := sendStyle.Render("Send")
	if in.disabled || strings.TrimSpace(in.textarea.Value()) == "" {
		send = sendDisabledStyle.Render("Send")
	}
	help := helpStyle.Render(strings.Join([]string{
		in.keys.Submit.Help().Key + " " + in.keys.Submit.Help().Desc,
		in.keys.Send.Help().Key + " " + in.keys.Send.Help().Desc,
		in.keys.Newline.Help().Key + " " + in.keys.Newline.Help().Desc,
		"ctrl+c quit",
	}, " • "))
	return lipgloss.JoinVertical(lipgloss.Left, in.textarea.View(), send, help)
}
