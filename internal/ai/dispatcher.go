package ai

import (
	"context"
	"fmt"

	"finchat/internal/logging"
)

// Fallback candidates tried after the explicitly requested model.
var defaultCandidates = []string{
	"anthropic/claude-3.7-sonnet",
	"openai/gpt-4.1",
}

// Dispatcher produces a token stream for a request, trying providers
// and models in a fixed preference order until one succeeds.
type Dispatcher struct {
	providers  map[string]Provider
	defaultID  string
	candidates []string
	retry      RetryConfig
	maxTokens  int
}

// NewDispatcher creates a dispatcher over the configured providers.
// defaultID names the provider used when a request carries no model.
func NewDispatcher(providers []Provider, defaultID string, retry RetryConfig, maxTokens int) *Dispatcher {
	byID := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byID[p.ID()] = p
	}
	return &Dispatcher{
		providers:  byID,
		defaultID:  defaultID,
		candidates: defaultCandidates,
		retry:      retry,
		maxTokens:  maxTokens,
	}
}

// Provider returns a configured provider by id.
func (d *Dispatcher) Provider(id string) (Provider, bool) {
	p, ok := d.providers[id]
	return p, ok
}

// candidateList builds the preference-ordered candidates for a request:
// the explicit model first, then the fixed fallbacks, skipping
// providers that are not configured and duplicate entries.
func (d *Dispatcher) candidateList(model string) []string {
	ordered := make([]string, 0, len(d.candidates)+1)
	if model != "" {
		ordered = append(ordered, model)
	} else if d.defaultID != "" {
		ordered = append(ordered, d.defaultID)
	}
	ordered = append(ordered, d.candidates...)

	seen := make(map[string]bool, len(ordered))
	var out []string
	for _, c := range ordered {
		providerID, _ := ParseModelID(c)
		if _, ok := d.providers[providerID]; !ok {
			continue
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Stream relays token chunks from the first candidate that succeeds.
// A candidate that fails before yielding any text is skipped with a
// warning; once text has been relayed, a failure is surfaced to the
// caller as an error event since chunks cannot be unsent. After all
// candidates are exhausted the first error is returned.
func (d *Dispatcher) Stream(ctx context.Context, req *ChatRequest) (<-chan StreamEvent, error) {
	candidates := d.candidateList(req.Model)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no configured provider for model %q", req.Model)
	}

	out := make(chan StreamEvent, 100)
	go d.run(ctx, req, candidates, out)
	return out, nil
}

func (d *Dispatcher) run(ctx context.Context, req *ChatRequest, candidates []string, out chan<- StreamEvent) {
	defer close(out)

	var firstErr error
	for _, candidate := range candidates {
		providerID, model := ParseModelID(candidate)
		provider := d.providers[providerID]

		creq := *req
		creq.Model = model
		if creq.MaxTokens == 0 {
			creq.MaxTokens = d.maxTokens
		}

		events, err := provider.Stream(ctx, &creq)
		if err != nil {
			logging.Warnf("candidate %s failed to open stream: %v", candidate, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		emitted := false
		failed := false
		for event := range events {
			switch event.Type {
			case EventTypeText:
				logging.Debugf("[%s] chunk: %s", candidate, event.Text)
				if !sendEvent(ctx, out, event) {
					return
				}
				emitted = true
			case EventTypeError:
				if !emitted {
					logging.Warnf("candidate %s failed mid-stream before output: %v", candidate, event.Error)
					if firstErr == nil {
						firstErr = event.Error
					}
					failed = true
				} else {
					// Chunks already relayed; the client sees a
					// terminal error event instead of a retry.
					sendEvent(ctx, out, event)
					return
				}
			case EventTypeDone:
				sendEvent(ctx, out, event)
				return
			}
			if failed {
				break
			}
		}
		if !failed && emitted {
			// Stream closed without an explicit done event.
			sendEvent(ctx, out, StreamEvent{Type: EventTypeDone})
			return
		}
	}

	if firstErr == nil {
		firstErr = fmt.Errorf("all candidates exhausted")
	}
	sendEvent(ctx, out, StreamEvent{Type: EventTypeError, Error: firstErr})
}

// Complete returns a full response using the same candidate order as
// Stream, with per-candidate retry on transient errors.
func (d *Dispatcher) Complete(ctx context.Context, req *ChatRequest) (string, error) {
	candidates := d.candidateList(req.Model)
	if len(candidates) == 0 {
		return "", fmt.Errorf("no configured provider for model %q", req.Model)
	}

	var firstErr error
	for _, candidate := range candidates {
		providerID, model := ParseModelID(candidate)
		provider := d.providers[providerID]

		creq := *req
		creq.Model = model
		if creq.MaxTokens == 0 {
			creq.MaxTokens = d.maxTokens
		}

		text, err := CompleteWithRetry(ctx, d.retry, provider, &creq)
		if err == nil {
			return text, nil
		}
		logging.Warnf("candidate %s failed: %v", candidate, err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}
