package ai

import (
	"context"
	"errors"
	"io"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"finchat/internal/logging"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// headerTransport injects static headers into every request. OpenRouter
// uses HTTP-Referer and X-Title for app attribution.
type headerTransport struct {
	rt      http.RoundTripper
	headers http.Header
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cl := req.Clone(req.Context())
	for k, vs := range t.headers {
		for _, v := range vs {
			cl.Header.Add(k, v)
		}
	}
	return t.rt.RoundTrip(cl)
}

// OpenRouterProvider speaks the OpenRouter chat-completions API through
// an OpenAI-compatible client pointed at the OpenRouter base URL.
type OpenRouterProvider struct {
	client *openai.Client
	model  string
}

// NewOpenRouterProvider creates a new OpenRouter provider. referrer and
// title are optional attribution headers.
func NewOpenRouterProvider(apiKey, model, referrer, title string) *OpenRouterProvider {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = openRouterBaseURL

	if referrer != "" || title != "" {
		h := http.Header{}
		if referrer != "" {
			h.Set("HTTP-Referer", referrer)
		}
		if title != "" {
			h.Set("X-Title", title)
		}
		config.HTTPClient = &http.Client{
			Transport: headerTransport{rt: http.DefaultTransport, headers: h},
		}
	}

	return &OpenRouterProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// ID returns the provider identifier
func (p *OpenRouterProvider) ID() string {
	return "openrouter"
}

// Stream sends a request and returns streaming events
func (p *OpenRouterProvider) Stream(ctx context.Context, req *ChatRequest) (<-chan StreamEvent, error) {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, msg := range req.Messages {
		if msg.Content == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	logging.Debugf("[openrouter] sending request: model=%s messages=%d", model, len(messages))

	stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	events := make(chan StreamEvent, 100)
	go p.handleStream(ctx, stream, events)

	return events, nil
}

// handleStream processes the streaming response
func (p *OpenRouterProvider) handleStream(ctx context.Context, stream *openai.ChatCompletionStream, events chan<- StreamEvent) {
	defer close(events)
	defer stream.Close()

	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			sendEvent(ctx, events, StreamEvent{Type: EventTypeDone})
			return
		}
		if err != nil {
			logging.Errorf("[openrouter] stream error: %v", err)
			sendEvent(ctx, events, StreamEvent{Type: EventTypeError, Error: err})
			return
		}

		if len(response.Choices) > 0 && response.Choices[0].Delta.Content != "" {
			if !sendEvent(ctx, events, StreamEvent{Type: EventTypeText, Text: response.Choices[0].Delta.Content}) {
				return
			}
		}
	}
}
