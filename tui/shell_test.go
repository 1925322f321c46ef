package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/a-h/gqlchat/conversation"
	"github.com/a-h/gqlchat/models"
	tea "github.com/charmbracelet/bubbletea"
)

type mockSender struct {
	calls int
	resp  models.ChatResponse
	err   error
}

func (m *mockSender) SendChatMessage(ctx context.Context, input models.ChatInput) (models.ChatResponse, error) {
	m.calls++
	return m.resp, m.err
}

func newTestModel(sender *mockSender) Model {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := New(context.Background(), conversation.New(log, sender))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestShellTurn(t *testing.T) {
	sender := &mockSender{
		resp: models.ChatResponse{
			Message: models.ChatMessage{Role: models.RoleAssistant, Content: "hello!"},
			Model:   "gpt-3.5-turbo",
		},
	}
	m := newTestModel(sender)

	m, _ = update(t, m, SubmitMsg{Content: "hi"})
	t.Run("submitting disables the input and shows the placeholder", func(t *testing.T) {
		if !m.conversation.Pending() {
			t.Error("expected the turn to be pending")
		}
		if !m.input.Disabled() {
			t.Error("expected the input to be disabled")
		}
		if !m.history.Loading() {
			t.Error("expected the history to show the loading placeholder")
		}
		if !strings.Contains(m.View(), "hi") {
			t.Error("expected the user's message to be shown")
		}
	})

	t.Run("a second submit while pending is dropped", func(t *testing.T) {
		m, _ = update(t, m, SubmitMsg{Content: "again"})
		if len(m.conversation.History()) != 2 {
			t.Errorf("expected 2 messages, got %d", len(m.conversation.History()))
		}
	})

	reply := m.send(models.ChatInput{})()
	if sender.calls != 1 {
		t.Errorf("expected 1 request, got %d", sender.calls)
	}
	m, _ = update(t, m, reply)

	t.Run("the reply is appended and the input re-enabled", func(t *testing.T) {
		history := m.conversation.History()
		if len(history) != 3 {
			t.Fatalf("expected 3 messages, got %d", len(history))
		}
		if history[2].Content != "hello!" {
			t.Errorf("unexpected reply %q", history[2].Content)
		}
		if m.conversation.Pending() {
			t.Error("expected the turn to be complete")
		}
		if m.input.Disabled() {
			t.Error("expected the input to be enabled")
		}
		if m.history.Loading() {
			t.Error("expected the placeholder to be removed")
		}
		if !strings.Contains(m.View(), "hello!") {
			t.Error("expected the reply to be shown")
		}
	})
}

func TestShellTurnFailure(t *testing.T) {
	sender := &mockSender{err: errors.New("HTTP error! status: 500")}
	m := newTestModel(sender)

	m, _ = update(t, m, SubmitMsg{Content: "hi"})
	m, _ = update(t, m, m.send(models.ChatInput{})())

	history := m.conversation.History()
	if len(history) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(history))
	}
	last := history[2]
	if last.Role != models.RoleAssistant || !strings.Contains(last.Content, "500") {
		t.Errorf("unexpected error message %+v", last)
	}
	if m.input.Disabled() {
		t.Error("expected the input to be enabled after a failure")
	}
}

func TestShellEnterSubmitsThroughInput(t *testing.T) {
	m := newTestModel(&mockSender{})
	m.input.SetValue("hello")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sm, ok := submitted(t, cmd)
	if !ok {
		t.Fatal("expected a submit")
	}
	if sm.Content != "hello" {
		t.Errorf("expected %q, got %q", "hello", sm.Content)
	}
	if m.input.Value() != "" {
		t.Errorf("expected the draft to be cleared, got %q", m.input.Value())
	}
}

func TestShellQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		t.Run(k.String(), func(t *testing.T) {
			m := newTestModel(&mockSender{})
			_, cmd := update(t, m, k)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected quit")
			}
		})
	}
}

func TestShellView(t *testing.T) {
	m := newTestModel(&mockSender{})
	v := m.View()
	for _, expected := range []string{title, conversation.DefaultWelcome, "Send"} {
		if !strings.Contains(v, expected) {
			t.Errorf("expected view to contain %q", expected)
		}
	}
}
