package ai

import (
	"context"
	"strings"
)

// StreamEventType defines the type of streaming event
type StreamEventType string

const (
	EventTypeText  StreamEventType = "text"
	EventTypeError StreamEventType = "error"
	EventTypeDone  StreamEventType = "done"
)

// StreamEvent represents a streaming response event
type StreamEvent struct {
	Type  StreamEventType `json:"type"`
	Text  string          `json:"text,omitempty"`
	Error error           `json:"error,omitempty"`
}

// Message is one conversation turn sent to a provider
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to an AI provider
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	System      string    `json:"system,omitempty"`
	Model       string    `json:"model,omitempty"` // Model override for this request
}

// Provider interface for AI providers
type Provider interface {
	// ID returns the provider identifier (e.g., "anthropic", "openai")
	ID() string

	// Stream sends a request and returns a channel of streaming events
	Stream(ctx context.Context, req *ChatRequest) (<-chan StreamEvent, error)
}

// sendEvent delivers one event, or gives up when ctx is cancelled.
// Consumers may abandon a stream mid-way (client disconnect); without
// the ctx arm a full channel buffer would block the producing goroutine
// forever.
func sendEvent(ctx context.Context, events chan<- StreamEvent, event StreamEvent) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

// Collect drains a provider stream into a single string. Used for the
// non-streaming call sites (classification, condensation, summaries,
// strategy generation).
func Collect(ctx context.Context, p Provider, req *ChatRequest) (string, error) {
	events, err := p.Stream(ctx, req)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case event, ok := <-events:
			if !ok {
				return sb.String(), nil
			}
			switch event.Type {
			case EventTypeText:
				sb.WriteString(event.Text)
			case EventTypeError:
				return "", event.Error
			case EventTypeDone:
				return sb.String(), nil
			}
		}
	}
}

// ParseModelID splits a "provider/model" candidate into its parts.
// A bare provider name yields an empty model (provider default).
func ParseModelID(id string) (provider, model string) {
	parts := strings.SplitN(id, "/", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
