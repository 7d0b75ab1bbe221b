package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"finchat/internal/logging"
)

const defaultMaxTokens = 1024

// AnthropicProvider implements the Anthropic Messages API using the official SDK
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider creates a new Anthropic provider with a default model
func NewAnthropicProvider(apiKey, model string) *AnthropicProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{
		client: client,
		model:  model,
	}
}

// ID returns the provider identifier
func (p *AnthropicProvider) ID() string {
	return "anthropic"
}

// Stream sends a request and returns streaming events
func (p *AnthropicProvider) Stream(ctx context.Context, req *ChatRequest) (<-chan StreamEvent, error) {
	messages := p.buildMessages(req.Messages)
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages to send")
	}

	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(defaultMaxTokens),
		Messages:  messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = int64(req.MaxTokens)
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.System},
		}
	}

	logging.Debugf("[anthropic] sending request: model=%s messages=%d", model, len(messages))

	stream := p.client.Messages.NewStreaming(ctx, params)

	events := make(chan StreamEvent, 100)
	go p.handleStream(ctx, stream, events)

	return events, nil
}

// buildMessages converts chat messages to Anthropic format
func (p *AnthropicProvider) buildMessages(msgs []Message) []anthropic.MessageParam {
	var result []anthropic.MessageParam
	for _, msg := range msgs {
		// Skip empty messages to avoid "text content blocks must be non-empty"
		if msg.Content == "" {
			continue
		}
		switch msg.Role {
		case "user":
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case "assistant":
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		case "system":
			// System text is passed via params.System
			continue
		}
	}
	return result
}

// handleStream processes the streaming response
func (p *AnthropicProvider) handleStream(ctx context.Context, stream *ssestream.Stream[anthropic.MessageStreamEventUnion], events chan<- StreamEvent) {
	defer close(events)

	for stream.Next() {
		event := stream.Current()

		switch event.Type {
		case "content_block_delta":
			delta := event.AsContentBlockDelta()
			if d, ok := delta.Delta.AsAny().(anthropic.TextDelta); ok {
				if !sendEvent(ctx, events, StreamEvent{Type: EventTypeText, Text: d.Text}) {
					return
				}
			}

		case "message_stop":
			sendEvent(ctx, events, StreamEvent{Type: EventTypeDone})
			return

		case "error":
			sendEvent(ctx, events, StreamEvent{
				Type:  EventTypeError,
				Error: fmt.Errorf("stream error: %s", event.RawJSON()),
			})
			return
		}
	}

	if err := stream.Err(); err != nil {
		logging.Errorf("[anthropic] stream error: %v", err)
		sendEvent(ctx, events, StreamEvent{Type: EventTypeError, Error: err})
		return
	}

	sendEvent(ctx, events, StreamEvent{Type: EventTypeDone})
}
