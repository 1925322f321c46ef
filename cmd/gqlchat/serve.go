package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	graphqlpost "github.com/a-h/gqlchat/handlers/graphql/post"
	healthget "github.com/a-h/gqlchat/handlers/health/get"
	"github.com/rs/cors"
	"github.com/tmc/langchaingo/llms/ollama"
)

type ServeCommand struct {
	OllamaURL   string   `help:"The URL of the Ollama server." env:"OLLAMA_URL" default:"http://127.0.0.1:11434/"`
	Models      []string `help:"The models to serve. The first is used when a request asks for an unknown model." env:"CHAT_MODELS" default:"llama3.2"`
	Echo        bool     `help:"Reply with a test message instead of calling an LLM." env:"ECHO" default:"false"`
	ListenAddr  string   `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:8787"`
	TLSCertFile string   `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile  string   `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel    string   `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel, os.Stderr)
	if len(c.Models) == 0 {
		return errors.New("at least one model must be configured")
	}

	var gen graphqlpost.Generator
	if c.Echo {
		log.Info("echo mode enabled, replies will be test messages")
	} else {
		log.Info("creating LLM client", slog.String("url", c.OllamaURL), slog.Any("models", c.Models))
		llmc, err := ollama.New(
			ollama.WithModel(c.Models[0]),
			ollama.WithHTTPClient(&http.Client{}),
			ollama.WithServerURL(c.OllamaURL))
		if err != nil {
			return fmt.Errorf("failed to create LLM: %w", err)
		}
		gen = llmc
	}

	mux := http.NewServeMux()
	mux.Handle("POST /graphql", graphqlpost.New(log, gen, c.Models, time.Now()))
	mux.Handle("GET /health", healthget.New(c.Models))

	log.Info("Listening", slog.String("addr", c.ListenAddr))
	s := &http.Server{
		Addr:              c.ListenAddr,
		Handler:           cors.AllowAll().Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		err = s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	} else {
		err = s.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
