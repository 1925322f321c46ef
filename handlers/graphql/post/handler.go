package post

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"time"

	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/tmc/langchaingo/llms"
)

//go:embed schema.graphql
var schema string

// Generator is the part of a langchaingo model used to answer chats.
type Generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// New creates the GraphQL handler. If gen is nil, every chat is answered with
// TestMessage so that clients can be tested without an LLM.
func New(log *slog.Logger, gen Generator, models []string, created time.Time) http.Handler {
	r := &Resolver{
		log:     log,
		gen:     gen,
		models:  models,
		created: created,
	}
	s := graphql.MustParseSchema(schema, r, graphql.UseFieldResolvers())
	return &relay.Handler{Schema: s}
}

const TestMessage = `Hello!

I'm a test message.

If you can see me, then your integration is working!`

type Resolver struct {
	log     *slog.Logger
	gen     Generator
	models  []string
	created time.Time
}

type ChatMessageInput struct {
	Role    string
	Content string
}

type ChatInput struct {
	Messages    []ChatMessageInput
	Model       *string
	Temperature *float64
	MaxTokens   *int32
}

type ChatMessage struct {
	Role    string
	Content string
}

type Usage struct {
	PromptTokens     int32
	CompletionTokens int32
	TotalTokens      int32
}

type ChatResponse struct {
	Message *ChatMessage
	Model   string
	Usage   *Usage
}

type Model struct {
	ID      string
	Object  string
	Created int32
	OwnedBy string
}

var roleToMessageType = map[string]llms.ChatMessageType{
	"system":    llms.ChatMessageTypeSystem,
	"user":      llms.ChatMessageTypeHuman,
	"assistant": llms.ChatMessageTypeAI,
}

func (r *Resolver) Models(ctx context.Context) ([]*Model, error) {
	ms := make([]*Model, len(r.models))
	for i, id := range r.models {
		ms[i] = &Model{
			ID:      id,
			Object:  "model",
			Created: clampInt32(r.created.Unix()),
			OwnedBy: "ollama",
		}
	}
	return ms, nil
}

func (r *Resolver) Chat(ctx context.Context, args struct{ Input ChatInput }) (*ChatResponse, error) {
	in := args.Input
	if len(in.Messages) == 0 {
		return nil, errors.New("messages must not be empty")
	}
	if in.Temperature != nil && (*in.Temperature < 0 || *in.Temperature > 2) {
		return nil, fmt.Errorf("temperature must be between 0 and 2, got %v", *in.Temperature)
	}
	if in.MaxTokens != nil && *in.MaxTokens <= 0 {
		return nil, fmt.Errorf("maxTokens must be positive, got %d", *in.MaxTokens)
	}
	msgs := make([]llms.MessageContent, len(in.Messages))
	for i, m := range in.Messages {
		mt, ok := roleToMessageType[m.Role]
		if !ok {
			return nil, fmt.Errorf("unknown role %q", m.Role)
		}
		msgs[i] = llms.TextParts(mt, m.Content)
	}
	model := r.model(in.Model)

	// Without an LLM, reply with a test message.
	if r.gen == nil {
		return &ChatResponse{
			Message: &ChatMessage{Role: "assistant", Content: TestMessage},
			Model:   model,
		}, nil
	}

	opts := []llms.CallOption{llms.WithModel(model)}
	if in.Temperature != nil {
		opts = append(opts, llms.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, llms.WithMaxTokens(int(*in.MaxTokens)))
	}

	r.log.Info("generating content", slog.String("model", model), slog.Int("messages", len(msgs)))
	resp, err := r.gen.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		r.log.Error("failed to generate content", slog.Any("error", err))
		return nil, errors.New("failed to generate content")
	}
	if len(resp.Choices) == 0 {
		r.log.Error("no choices returned", slog.String("model", model))
		return nil, errors.New("failed to generate content")
	}
	choice := resp.Choices[0]
	return &ChatResponse{
		Message: &ChatMessage{Role: "assistant", Content: choice.Content},
		Model:   model,
		Usage:   usageFromGenerationInfo(choice.GenerationInfo),
	}, nil
}

// model returns the requested model if it's served, otherwise the default.
func (r *Resolver) model(requested *string) string {
	if requested != nil && slices.Contains(r.models, *requested) {
		return *requested
	}
	if len(r.models) == 0 {
		return ""
	}
	return r.models[0]
}

func usageFromGenerationInfo(info map[string]any) *Usage {
	prompt, hasPrompt := toInt32(info["PromptTokens"])
	completion, hasCompletion := toInt32(info["CompletionTokens"])
	if !hasPrompt && !hasCompletion {
		return nil
	}
	total, ok := toInt32(info["TotalTokens"])
	if !ok {
		total = prompt + completion
	}
	return &Usage{
		PromptTokens:     prompt,
		CompletionTokens: completion,
		TotalTokens:      total,
	}
}

func toInt32(v any) (int32, bool) {
	switch v := v.(type) {
	case int:
		return clampInt32(int64(v)), true
	case int32:
		return v, true
	case int64:
		return clampInt32(v), true
	case float64:
		if v >= math.MaxInt32 {
			return math.MaxInt32, true
		}
		if v <= math.MinInt32 {
			return math.MinInt32, true
		}
		return int32(v), true
	}
	return 0, false
}

// clampInt32 fits v into a GraphQL Int, which is 32-bit.
func clampInt32(v int64) int32 {
	return int32(max(min(v, math.MaxInt32), math.MinInt32))
}
