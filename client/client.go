package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/gqlchat/models"
	"github.com/a-h/jsonapi"
)

const DefaultEndpoint = "http://localhost:8787/graphql"

const chatMutation = `
mutation Chat($input: ChatInput!) {
  chat(input: $input) {
    message {
      role
      content
    }
    model
    usage {
      promptTokens
      completionTokens
      totalTokens
    }
  }
}
`

const modelsQuery = `
query GetModels {
  models {
    id
    object
    created
    ownedBy
  }
}
`

func New(log *slog.Logger, endpoint string) Client {
	return Client{
		log:      log,
		endpoint: endpoint,
	}
}

// Client talks to the chat backend's GraphQL endpoint. Each call is a single
// POST with no retries.
type Client struct {
	log      *slog.Logger
	endpoint string
}

type chatData struct {
	Chat *struct {
		Message *struct {
			Role    *models.Role `json:"role"`
			Content *string      `json:"content"`
		} `json:"message"`
		Model string        `json:"model"`
		Usage *models.Usage `json:"usage"`
	} `json:"chat"`
}

func (c Client) SendChatMessage(ctx context.Context, input models.ChatInput) (resp models.ChatResponse, err error) {
	data, err := post[chatData](ctx, c, "chat", graphQLRequest{
		Query: chatMutation,
		Variables: map[string]any{
			"input": input,
		},
	})
	if err != nil {
		return resp, err
	}
	var missing string
	switch {
	case data.Chat == nil || data.Chat.Message == nil:
		missing = "data.chat.message"
	case data.Chat.Message.Role == nil || *data.Chat.Message.Role == "":
		missing = "data.chat.message.role"
	case data.Chat.Message.Content == nil:
		missing = "data.chat.message.content"
	}
	if missing != "" {
		err = newDecodeError("chat", "missing "+missing)
		c.logError("chat", err)
		return resp, err
	}
	resp = models.ChatResponse{
		Message: models.ChatMessage{
			Role:    *data.Chat.Message.Role,
			Content: *data.Chat.Message.Content,
		},
		Model: data.Chat.Model,
		Usage: data.Chat.Usage,
	}
	return resp, nil
}

type modelsData struct {
	Models *[]models.Model `json:"models"`
}

func (c Client) GetModels(ctx context.Context) (ms []models.Model, err error) {
	data, err := post[modelsData](ctx, c, "models", graphQLRequest{
		Query: modelsQuery,
	})
	if err != nil {
		return nil, err
	}
	if data.Models == nil {
		err = newDecodeError("models", "missing data.models")
		c.logError("models", err)
		return nil, err
	}
	for i, m := range *data.Models {
		if m.ID == "" {
			err = newDecodeError("models", fmt.Sprintf("missing data.models[%d].id", i))
			c.logError("models", err)
			return nil, err
		}
	}
	return *data.Models, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data *T `json:"data"`
	// Errors is nil when the member is absent or null.
	Errors []graphQLError `json:"errors"`
}

func post[T any](ctx context.Context, c Client, op string, req graphQLRequest) (data T, err error) {
	defer func() {
		if err != nil {
			c.logError(op, err)
		}
	}()

	url, err := jsonapi.URL(c.endpoint).String()
	if err != nil {
		return data, newTransportError(op, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err))
	}
	buf, err := json.Marshal(req)
	if err != nil {
		return data, newTransportError(op, fmt.Errorf("failed to marshal request: %w", err))
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return data, newTransportError(op, err)
	}
	res, err := jsonapi.Raw(httpReq, jsonapi.WithRequestHeader("Content-Type", "application/json"))
	if err != nil {
		return data, newTransportError(op, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return data, newTransportError(op, fmt.Errorf("failed to read response body: %w", err))
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return data, &Error{
			Kind:       KindHTTP,
			Op:         op,
			Message:    fmt.Sprintf("HTTP error! status: %d", res.StatusCode),
			StatusCode: res.StatusCode,
			Err: jsonapi.InvalidStatusError{
				Status: res.StatusCode,
				Body:   string(body),
			},
		}
	}

	var gr graphQLResponse[T]
	if err = json.Unmarshal(body, &gr); err != nil {
		return data, &Error{
			Kind:    KindDecode,
			Op:      op,
			Message: fmt.Sprintf("failed to decode response: %v", err),
			Err:     err,
		}
	}
	if gr.Errors != nil {
		msg := "GraphQL error"
		if len(gr.Errors) > 0 && gr.Errors[0].Message != "" {
			msg = gr.Errors[0].Message
		}
		return data, &Error{
			Kind:    KindGraphQL,
			Op:      op,
			Message: msg,
		}
	}
	if gr.Data == nil {
		return data, newDecodeError(op, "missing data")
	}
	return *gr.Data, nil
}

func (c Client) logError(op string, err error) {
	attrs := []any{slog.String("op", op), slog.String("endpoint", c.endpoint), slog.Any("error", err)}
	var ce *Error
	if errors.As(err, &ce) {
		attrs = append(attrs, slog.String("kind", ce.Kind.String()))
		if ce.StatusCode != 0 {
			attrs = append(attrs, slog.Int("status", ce.StatusCode))
		}
	}
	c.log.Error("graphql request failed", attrs...)
}
