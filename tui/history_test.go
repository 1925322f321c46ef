package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/a-h/gqlchat/models"
	"github.com/charmbracelet/bubbles/spinner"
)

var testMessages = []models.Message{
	{ID: "1", Content: "Hello! How can I help?", Role: models.RoleAssistant, Timestamp: time.Date(2024, 1, 1, 9, 5, 0, 0, time.Local)},
	{ID: "2", Content: "What time is it?", Role: models.RoleUser, Timestamp: time.Date(2024, 1, 1, 14, 30, 0, 0, time.Local)},
}

func TestRenderHistory(t *testing.T) {
	actual := renderHistory(testMessages, false, 80, "...")

	for _, expected := range []string{"Hello! How can I help?", "What time is it?", "09:05", "14:30", "👤", "🤖"} {
		if !strings.Contains(actual, expected) {
			t.Errorf("expected output to contain %q, got:\n%s", expected, actual)
		}
	}
	if strings.Index(actual, "Hello!") > strings.Index(actual, "What time") {
		t.Error("expected messages to be rendered in order")
	}
	if strings.Contains(actual, "...") {
		t.Error("expected no loading placeholder")
	}
}

func TestRenderHistoryLoading(t *testing.T) {
	actual := renderHistory(testMessages, true, 80, "<spinner>")

	if !strings.Contains(actual, "<spinner>") {
		t.Fatalf("expected the loading placeholder, got:\n%s", actual)
	}
	if strings.Index(actual, "<spinner>") < strings.Index(actual, "What time is it?") {
		t.Error("expected the placeholder after the messages")
	}
	if count := strings.Count(actual, "🤖"); count != 2 {
		t.Errorf("expected the placeholder to use the assistant avatar, got %d avatars", count)
	}
}

func TestRenderMessageAlignment(t *testing.T) {
	user := renderMessage(testMessages[1], 80)
	firstLine := strings.Split(user, "\n")[0]
	if !strings.HasPrefix(firstLine, " ") {
		t.Errorf("expected user messages to be right aligned, got %q", firstLine)
	}

	assistant := renderMessage(testMessages[0], 80)
	if !strings.HasPrefix(assistant, "🤖") {
		t.Errorf("expected assistant messages to start with the avatar, got %q", assistant)
	}
}

func TestRenderMessageWraps(t *testing.T) {
	m := models.Message{
		Role:      models.RoleAssistant,
		Content:   strings.Repeat("word ", 40),
		Timestamp: time.Now(),
	}
	actual := renderMessage(m, 40)
	if lines := strings.Count(actual, "\n"); lines < 3 {
		t.Errorf("expected long content to wrap, got %d lines:\n%s", lines, actual)
	}
}

func TestHistorySetMessages(t *testing.T) {
	h := NewHistory()
	h.SetSize(80, 5)

	if cmd := h.SetMessages(testMessages, true); cmd == nil {
		t.Error("expected the spinner to start when loading begins")
	}
	if !h.Loading() {
		t.Error("expected history to be loading")
	}
	if cmd := h.SetMessages(testMessages, true); cmd != nil {
		t.Error("expected no second spinner while already loading")
	}
	if !h.viewport.AtBottom() {
		t.Error("expected the view to scroll to the newest entry")
	}

	h.SetMessages(testMessages, false)
	if strings.Contains(h.viewport.View(), h.spinner.View()) {
		t.Error("expected the placeholder to disappear when loading stops")
	}
}

func TestHistoryStopsTickingWhenIdle(t *testing.T) {
	h := NewHistory()
	h.SetMessages(testMessages, false)
	_, cmd := h.Update(spinner.TickMsg{})
	if cmd != nil {
		t.Error("expected spinner ticks to stop when not loading")
	}
}
