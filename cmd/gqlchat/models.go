package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/a-h/gqlchat/client"
	"github.com/a-h/gqlchat/models"
	"gopkg.in/yaml.v3"
)

type ModelsCommand struct {
	Endpoint string `help:"The URL of the GraphQL chat API." env:"CHAT_API_ENDPOINT" default:"http://localhost:8787/graphql"`
	Format   string `help:"The output format." enum:"json,yaml" default:"json"`
	Pretty   bool   `help:"Pretty print the JSON output." default:"true" negatable:""`
	LogLevel string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c ModelsCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel, os.Stderr)
	ms, err := client.New(log, c.Endpoint).GetModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to get models: %w", err)
	}
	return writeModels(os.Stdout, ms, c.Format, c.Pretty)
}

func writeModels(w io.Writer, ms []models.Model, format string, pretty bool) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ms); err != nil {
			return fmt.Errorf("failed to encode models: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(ms)
	}
	return fmt.Errorf("unknown format %q", format)
}
