// Package prompts holds the advisory prompt text as embedded data so
// wording changes never touch control flow.
package prompts

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var rawCatalog []byte

// Pipeline holds the prompts used by the chat turn pipeline.
type Pipeline struct {
	Intent      string `yaml:"intent"`
	Condense    string `yaml:"condense"`
	TurnSummary string `yaml:"turn_summary"`
	Summarizer  string `yaml:"summarizer"`
}

// Profiles holds the system prompts per chat surface.
type Profiles struct {
	Chat     string `yaml:"chat"`
	Mobility string `yaml:"mobility"`
}

// Financial holds the prompts for the strategy and lifeplan chains.
type Financial struct {
	Hearing    string `yaml:"hearing"`
	Simulation string `yaml:"simulation"`
	Output     string `yaml:"output"`
	Lifeplan   string `yaml:"lifeplan"`
}

// Catalog is the full prompt catalog.
type Catalog struct {
	Pipeline  Pipeline  `yaml:"pipeline"`
	Profiles  Profiles  `yaml:"profiles"`
	Financial Financial `yaml:"financial"`
}

// Load parses the embedded catalog and validates that every prompt is
// present.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(rawCatalog, &c); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}

	required := map[string]string{
		"pipeline.intent":       c.Pipeline.Intent,
		"pipeline.condense":     c.Pipeline.Condense,
		"pipeline.turn_summary": c.Pipeline.TurnSummary,
		"pipeline.summarizer":   c.Pipeline.Summarizer,
		"profiles.chat":         c.Profiles.Chat,
		"profiles.mobility":     c.Profiles.Mobility,
		"financial.hearing":     c.Financial.Hearing,
		"financial.simulation":  c.Financial.Simulation,
		"financial.output":      c.Financial.Output,
		"financial.lifeplan":    c.Financial.Lifeplan,
	}
	for name, text := range required {
		if text == "" {
			return nil, fmt.Errorf("prompt catalog missing %s", name)
		}
	}
	return &c, nil
}

// Profile returns the system prompt for a chat surface, defaulting to
// the standard chat profile for unknown names.
func (c *Catalog) Profile(name string) string {
	switch name {
	case "mobility":
		return c.Profiles.Mobility
	default:
		return c.Profiles.Chat
	}
}
