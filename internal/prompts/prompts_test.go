package prompts

import (
	"strings"
	"testing"
)

func TestLoadCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Pipeline.Intent == "" || c.Pipeline.Summarizer == "" {
		t.Error("pipeline prompts missing")
	}
	if !strings.Contains(c.Financial.Output, "[strategy_1]") {
		t.Error("output prompt must instruct the section headers used by extraction")
	}
}

func TestProfileFallback(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Profile("mobility") != c.Profiles.Mobility {
		t.Error("mobility profile not returned")
	}
	if c.Profile("unknown") != c.Profiles.Chat {
		t.Error("unknown profile should fall back to chat")
	}
}
