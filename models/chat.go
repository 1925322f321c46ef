package models

import "time"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn shown in the transcript.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

func (m Message) ChatMessage() ChatMessage {
	return ChatMessage{
		Role:    m.Role,
		Content: m.Content,
	}
}

// Project converts the transcript to the wire format, preserving order.
func Project(msgs []Message) []ChatMessage {
	cms := make([]ChatMessage, len(msgs))
	for i, m := range msgs {
		cms[i] = m.ChatMessage()
	}
	return cms
}

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatInput struct {
	Messages []ChatMessage `json:"messages"`
	// Model to use, the server default is used if empty.
	Model string `json:"model,omitempty"`
	// Temperature in the range 0-2.
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"maxTokens,omitempty"`
}

type ChatResponse struct {
	Message ChatMessage `json:"message"`
	Model   string      `json:"model"`
	Usage   *Usage      `json:"usage,omitempty"`
}

type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}
