package tui

import (
	"strings"
	"time"

	"github.com/a-h/gqlchat/models"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var roleToIcon = map[models.Role]string{
	models.RoleUser:      "👤",
	models.RoleAssistant: "🤖",
}

// History shows the transcript, followed by a placeholder while a reply is
// loading.
type History struct {
	viewport viewport.Model
	spinner  spinner.Model
	messages []models.Message
	loading  bool
}

func NewHistory() History {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(Cyan)
	return History{
		viewport: viewport.New(80, 20),
		spinner:  s,
	}
}

func (h *History) SetSize(width, height int) {
	h.viewport.Width = width
	h.viewport.Height = height
	h.refresh()
}

func (h History) Loading() bool {
	return h.loading
}

// SetMessages replaces the transcript and scrolls to the newest entry. It
// returns a command to start the spinner when loading begins.
func (h *History) SetMessages(msgs []models.Message, loading bool) tea.Cmd {
	started := loading && !h.loading
	h.messages = msgs
	h.loading = loading
	h.refresh()
	if started {
		return h.spinner.Tick
	}
	return nil
}

func (h History) Update(msg tea.Msg) (History, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !h.loading {
			// Let the tick loop stop.
			return h, nil
		}
		var cmd tea.Cmd
		h.spinner, cmd = h.spinner.Update(msg)
		h.refresh()
		return h, cmd
	default:
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return h, cmd
	}
}

func (h *History) refresh() {
	h.viewport.SetContent(renderHistory(h.messages, h.loading, h.viewport.Width, h.spinner.View()))
	h.viewport.GotoBottom()
}

func (h History) View() string {
	return h.viewport.View()
}

func renderHistory(msgs []models.Message, loading bool, width int, spinnerView string) string {
	var sb strings.Builder
	for _, m := range msgs {
		sb.WriteString(renderMessage(m, width))
		sb.WriteString("\n\n")
	}
	if loading {
		sb.WriteString(renderPlaceholder(width, spinnerView))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderMessage(m models.Message, width int) string {
	icon, ok := roleToIcon[m.Role]
	if !ok {
		icon = "🤷"
	}
	content := wordwrap.String(m.Content, bubbleWidth(width))
	label := timeStyle.Render(formatTime(m.Timestamp))
	if m.Role == models.RoleUser {
		bubble := lipgloss.JoinVertical(lipgloss.Right, selfStyle.Render(content), label)
		row := lipgloss.JoinHorizontal(lipgloss.Top, bubble, " "+icon)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, row)
	}
	bubble := lipgloss.JoinVertical(lipgloss.Left, otherStyle.Render(content), label)
	return lipgloss.JoinHorizontal(lipgloss.Top, icon+" ", bubble)
}

func renderPlaceholder(width int, spinnerView string) string {
	icon := roleToIcon[models.RoleAssistant]
	return lipgloss.JoinHorizontal(lipgloss.Top, icon+" ", otherStyle.Render(spinnerView))
}

func bubbleWidth(width int) int {
	return max(width*3/4-6, 20)
}

func formatTime(t time.Time) string {
	return t.Local().Format("15:04")
}
