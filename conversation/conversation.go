package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/a-h/gqlchat/models"
	"github.com/google/uuid"
)

const DefaultWelcome = "Hello! I'm an AI assistant. How can I help you today?"

type Sender interface {
	SendChatMessage(ctx context.Context, input models.ChatInput) (models.ChatResponse, error)
}

// Settings are sent with every request.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

var DefaultSettings = Settings{
	Model:       "gpt-3.5-turbo",
	Temperature: 0.7,
	MaxTokens:   1000,
}

func (s Settings) Validate() error {
	var errs []error
	if s.Model == "" {
		errs = append(errs, errors.New("model must not be empty"))
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature must be between 0 and 2, got %v", s.Temperature))
	}
	if s.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("max tokens must be positive, got %d", s.MaxTokens))
	}
	return errors.Join(errs...)
}

type Option func(*Conversation)

func WithSettings(s Settings) Option {
	return func(c *Conversation) {
		c.settings = s
	}
}

func WithIDGenerator(f func() string) Option {
	return func(c *Conversation) {
		c.newID = f
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Conversation) {
		c.now = now
	}
}

func WithWelcome(content string) Option {
	return func(c *Conversation) {
		c.welcome = content
	}
}

func New(log *slog.Logger, sender Sender, opts ...Option) *Conversation {
	c := &Conversation{
		log:      log,
		sender:   sender,
		settings: DefaultSettings,
		newID:    uuid.NewString,
		now:      time.Now,
		welcome:  DefaultWelcome,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.history = []models.Message{c.newMessage(models.RoleAssistant, c.welcome)}
	return c
}

// Conversation owns the transcript and allows one turn in flight at a time.
// It is not safe for concurrent use; callers drive it from a single event loop.
type Conversation struct {
	log      *slog.Logger
	sender   Sender
	settings Settings
	newID    func() string
	now      func() time.Time
	welcome  string

	history []models.Message
	pending bool
}

func (c *Conversation) History() []models.Message {
	return append([]models.Message(nil), c.history...)
}

func (c *Conversation) Pending() bool {
	return c.pending
}

// Begin appends the user's message and marks the turn as pending. It returns
// the request to send, or false if a turn is already pending.
func (c *Conversation) Begin(content string) (input models.ChatInput, ok bool) {
	if c.pending {
		c.log.Debug("dropping message while a turn is pending")
		return input, false
	}
	c.history = append(c.history, c.newMessage(models.RoleUser, content))
	c.pending = true

	temperature := c.settings.Temperature
	return models.ChatInput{
		Messages:    models.Project(c.history),
		Model:       c.settings.Model,
		Temperature: &temperature,
		MaxTokens:   c.settings.MaxTokens,
	}, true
}

// Finish completes the pending turn with the backend's reply, or with an
// in-transcript error message if err is non-nil.
func (c *Conversation) Finish(resp models.ChatResponse, err error) (msg models.Message) {
	if !c.pending {
		return msg
	}
	defer func() {
		c.pending = false
	}()
	if err != nil {
		c.log.Error("failed to get AI response", slog.Any("error", err))
		msg = c.newMessage(models.RoleAssistant, ErrorContent(err))
		c.history = append(c.history, msg)
		return msg
	}
	c.log.Debug("received AI response", slog.String("model", resp.Model))
	msg = c.newMessage(models.RoleAssistant, resp.Message.Content)
	c.history = append(c.history, msg)
	return msg
}

// Submit runs a whole turn. It returns false if a turn is already pending.
func (c *Conversation) Submit(ctx context.Context, content string) (msg models.Message, ok bool) {
	input, ok := c.Begin(content)
	if !ok {
		return msg, false
	}
	var resp models.ChatResponse
	err := errors.New("request did not complete")
	defer func() {
		msg = c.Finish(resp, err)
	}()
	resp, err = c.Send(ctx, input)
	return msg, true
}

// Send performs the request for a turn started with Begin. It doesn't touch
// the transcript, so it can run off the event loop.
func (c *Conversation) Send(ctx context.Context, input models.ChatInput) (models.ChatResponse, error) {
	return c.sender.SendChatMessage(ctx, input)
}

// ErrorContent is the assistant message shown in place of a reply when a
// request fails.
func ErrorContent(err error) string {
	reason := "unknown error"
	if err != nil && err.Error() != "" {
		reason = err.Error()
	}
	return fmt.Sprintf("Sorry, something went wrong: %s. Please check the API configuration or try again later.", reason)
}

func (c *Conversation) newMessage(role models.Role, content string) models.Message {
	return models.Message{
		ID:        c.newID(),
		Content:   content,
		Role:      role,
		Timestamp: c.now(),
	}
}
