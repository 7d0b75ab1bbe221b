package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, populated from the environment.
// A .env file in the working directory is loaded first when present.
type Config struct {
	Port int `env:"PORT" envDefault:"8000"`

	// Secret used to sign access and refresh tokens (HS256).
	SecretKey string `env:"SECRET_KEY,required"`

	// SQLite database path for users, prompts and refresh tokens.
	DatabaseURL string `env:"DATABASE_URL" envDefault:"data/finchat.db"`

	// Directory holding the per-user conversation files.
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// Provider API keys. A provider without a key is skipped at start-up.
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`

	// Attribution headers forwarded to OpenRouter.
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE" envDefault:"finchat"`

	DefaultProvider string `env:"DEFAULT_AI_PROVIDER" envDefault:"anthropic"`
	MaxTokens       int    `env:"MAX_TOKENS" envDefault:"1024"`
	MaxRetries      int    `env:"MAX_RETRIES" envDefault:"5"`
	MaxRallies      int    `env:"MAX_RALLIES" envDefault:"6"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return c, nil
}
