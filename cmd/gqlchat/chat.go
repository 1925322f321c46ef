package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/a-h/gqlchat/client"
	"github.com/a-h/gqlchat/conversation"
	"github.com/a-h/gqlchat/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// SettingsFlags are shared by the commands that send chat messages.
type SettingsFlags struct {
	Endpoint    string  `help:"The URL of the GraphQL chat API." env:"CHAT_API_ENDPOINT" default:"http://localhost:8787/graphql"`
	Model       string  `help:"The model to chat with." env:"CHAT_MODEL" default:"gpt-3.5-turbo"`
	Temperature float64 `help:"The sampling temperature, between 0 and 2." env:"CHAT_TEMPERATURE" default:"0.7"`
	MaxTokens   int     `help:"The maximum number of tokens in a reply." env:"CHAT_MAX_TOKENS" default:"1000"`
}

func (f SettingsFlags) Settings() (s conversation.Settings, err error) {
	s = conversation.Settings{
		Model:       f.Model,
		Temperature: f.Temperature,
		MaxTokens:   f.MaxTokens,
	}
	if err = s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

type ChatCommand struct {
	SettingsFlags `embed:""`
	LogLevel string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
	LogFile  string `help:"Write logs to this file. Defaults to gqlchat/chat.log in the user cache directory." env:"LOG_FILE" default:""`
}

func (c ChatCommand) Run(ctx context.Context) (err error) {
	settings, err := c.Settings()
	if err != nil {
		return err
	}

	// The program owns the terminal, so logs can't go to stderr.
	var w io.Writer = io.Discard
	if name, ok := logFileName(c.LogFile); ok {
		f, err := openLogFile(name)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	log := getLogger(c.LogLevel, w)

	cc := client.New(log, c.Endpoint)
	conv := conversation.New(log, cc, conversation.WithSettings(settings))

	p := tea.NewProgram(tui.New(ctx, conv), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run chat: %w", err)
	}
	return nil
}

func logFileName(flag string) (name string, ok bool) {
	if flag != "" {
		return flag, true
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "gqlchat", "chat.log"), true
}

func openLogFile(name string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
