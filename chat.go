package videogen

import (
	"context"
	"log/slog"
	"sync"
)

// Speaker identifies who produced a chat turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// ChatTurn is a single entry in a chat transcript.
type ChatTurn struct {
	Speaker Speaker
	Text    string
}

// Default persona script. The greeting is injected locally at session
// start; the fallback line replaces a failed completion so the
// conversation never surfaces a hard error.
const (
	defaultPersona = "You are an upbeat creative director assisting with " +
		"short AI-generated video clips. Help the user sharpen prompts, " +
		"suggest camera moves, lighting and pacing, and keep answers " +
		"short and encouraging. Stay in character."

	defaultGreeting = "Hey! I'm your creative director. Tell me what kind " +
		"of clip you're dreaming up and we'll make it happen."

	defaultFallback = "Sorry, I lost my train of thought there. Could you " +
		"say that again?"
)

// ChatSession maintains an append-only transcript and exchanges
// single-turn completions with a persona-constrained text model. It is
// independent of video generation.
//
// The very first transcript entry is a scripted assistant greeting, not
// produced by the remote model. Every Send forwards the full transcript;
// no truncation or summarization is applied.
type ChatSession struct {
	completer ChatCompleter
	logger    *slog.Logger

	persona  string
	greeting string
	fallback string

	mu      sync.Mutex
	history []ChatTurn
}

// NewChatSession creates a chat session seeded with the scripted greeting.
func NewChatSession(completer ChatCompleter, opts ...ChatOption) *ChatSession {
	c := &ChatSession{
		completer: completer,
		logger:    slog.Default(),
		persona:   defaultPersona,
		greeting:  defaultGreeting,
		fallback:  defaultFallback,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.history = []ChatTurn{{Speaker: SpeakerAssistant, Text: c.greeting}}
	return c
}

// Send appends a user turn, requests one completion over the full
// transcript, appends the assistant turn and returns its text. On any
// failure the scripted fallback line is appended and returned instead;
// errors are never surfaced to the caller.
//
// Callers are expected to serialize Sends (e.g. by disabling re-submission
// while one is outstanding); the session itself only guarantees transcript
// consistency.
func (c *ChatSession) Send(ctx context.Context, text string) string {
	c.mu.Lock()
	c.history = append(c.history, ChatTurn{Speaker: SpeakerUser, Text: text})

	turns := make([]ChatTurn, len(c.history))
	copy(turns, c.history)
	c.mu.Unlock()

	reply, err := c.completer.Complete(ctx, turns, c.persona)
	if err != nil || reply == "" {
		if err != nil {
			c.logger.Warn("chat completion failed, using fallback line",
				"error", err.Error(),
			)
		}
		reply = c.fallback
	}

	c.mu.Lock()
	c.history = append(c.history, ChatTurn{Speaker: SpeakerAssistant, Text: reply})
	c.mu.Unlock()

	return reply
}

// History returns a copy of the transcript.
func (c *ChatSession) History() []ChatTurn {
	c.mu.Lock()
	defer c.mu.Unlock()

	historyCopy := make([]ChatTurn, len(c.history))
	copy(historyCopy, c.history)
	return historyCopy
}

// Clear resets the transcript and re-seeds the scripted greeting.
func (c *ChatSession) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = []ChatTurn{{Speaker: SpeakerAssistant, Text: c.greeting}}
}

// ChatOption configures the ChatSession.
type ChatOption func(*ChatSession)

// WithChatLogger sets a structured logger for the chat session.
func WithChatLogger(logger *slog.Logger) ChatOption {
	return func(c *ChatSession) {
		c.logger = logger
	}
}

// WithPersona overrides the fixed system instruction sent on every turn.
func WithPersona(persona string) ChatOption {
	return func(c *ChatSession) {
		c.persona = persona
	}
}

// WithGreeting overrides the scripted greeting seeded at session start.
func WithGreeting(greeting string) ChatOption {
	return func(c *ChatSession) {
		c.greeting = greeting
	}
}

// WithFallbackLine overrides the scripted line used when a completion
// fails.
func WithFallbackLine(line string) ChatOption {
	return func(c *ChatSession) {
		c.fallback = line
	}
}
