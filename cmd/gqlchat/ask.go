package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/a-h/gqlchat/client"
	"github.com/a-h/gqlchat/conversation"
)

type AskCommand struct {
	SettingsFlags `embed:""`
	Text     string `help:"The message to send." required:""`
	LogLevel string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c AskCommand) Run(ctx context.Context) (err error) {
	settings, err := c.Settings()
	if err != nil {
		return err
	}
	log := getLogger(c.LogLevel, os.Stderr)
	conv := conversation.New(log, client.New(log, c.Endpoint), conversation.WithSettings(settings))
	return ask(ctx, os.Stdout, conv, c.Text)
}

func ask(ctx context.Context, w io.Writer, conv *conversation.Conversation, text string) (err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("text must not be empty")
	}
	input, ok := conv.Begin(text)
	if !ok {
		return errors.New("a message is already being sent")
	}
	resp, sendErr := conv.Send(ctx, input)
	msg := conv.Finish(resp, sendErr)
	if _, err = fmt.Fprintln(w, msg.Content); err != nil {
		return fmt.Errorf("failed to write reply: %w", err)
	}
	if sendErr != nil {
		return fmt.Errorf("failed to send message: %w", sendErr)
	}
	return nil
}
