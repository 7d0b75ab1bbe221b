package ai

import "strings"

// ProviderError represents an error from a provider
type ProviderError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

func (e *ProviderError) Error() string {
	return e.Message
}

// IsTransient reports whether an error is worth retrying: rate limits
// and overload conditions. Auth failures and malformed requests are
// permanent and propagate immediately.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if pe, ok := err.(*ProviderError); ok {
		if pe.Code == "rate_limit_exceeded" || pe.Type == "rate_limit_error" ||
			pe.Type == "overloaded_error" {
			return true
		}
		if pe.Code == "authentication_error" || pe.Type == "authentication_error" {
			return false
		}
	}

	msg := strings.ToLower(err.Error())
	for _, p := range []string{"429", "rate limit", "rate_limit", "too many requests", "overloaded", "throttl"} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// ClassifyErrorReason determines the category of a provider error.
// Returns: "billing", "rate_limit", "auth", "timeout", or "other".
func ClassifyErrorReason(err error) string {
	if err == nil {
		return "other"
	}

	if pe, ok := err.(*ProviderError); ok {
		switch pe.Code {
		case "rate_limit_exceeded":
			return "rate_limit"
		case "authentication_error", "invalid_api_key", "unauthorized":
			return "auth"
		case "insufficient_quota", "billing_error", "payment_required":
			return "billing"
		}
		switch pe.Type {
		case "rate_limit_error":
			return "rate_limit"
		case "authentication_error":
			return "auth"
		}
	}

	msg := strings.ToLower(err.Error())

	patterns := []struct {
		reason string
		subs   []string
	}{
		{"billing", []string{"billing", "quota", "payment", "credit", "insufficient", "spending limit"}},
		{"rate_limit", []string{"rate limit", "rate_limit", "too many requests", "429", "throttl", "overloaded"}},
		{"auth", []string{"authentication", "unauthorized", "api key", "401", "forbidden", "403", "invalid credentials"}},
		{"timeout", []string{"timeout", "timed out", "deadline exceeded", "context canceled"}},
	}
	for _, p := range patterns {
		for _, sub := range p.subs {
			if strings.Contains(msg, sub) {
				return p.reason
			}
		}
	}

	return "other"
}
