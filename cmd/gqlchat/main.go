package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type CLI struct {
	Chat    ChatCommand    `cmd:"chat" default:"1" help:"Chat with the assistant."`
	Ask     AskCommand     `cmd:"ask" help:"Send a single message and print the reply."`
	Models  ModelsCommand  `cmd:"models" help:"List the models offered by the chat API."`
	Serve   ServeCommand   `cmd:"serve" help:"Start a development chat API."`
	Version VersionCommand `cmd:"version" help:"Print the version of gqlchat."`
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	var cli CLI
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	kctx := kong.Parse(&cli,
		kong.Name("gqlchat"),
		kong.Description("A terminal chat client for GraphQL chat APIs."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error", os.Stderr)
		log.Error("error", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

func getLogger(level string, w io.Writer) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ll,
	}))
}
