package svc

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"finchat/internal/ai"
	"finchat/internal/chatroom"
	"finchat/internal/config"
	"finchat/internal/db"
	"finchat/internal/logging"
	"finchat/internal/prompts"
	"finchat/internal/summary"
)

// ServiceContext bundles the shared dependencies handed to every logic
// struct. Everything is constructed once at start-up and passed down;
// nothing is a package-level singleton.
type ServiceContext struct {
	Config  config.Config
	DB      *db.Store
	Rooms   *chatroom.Manager
	AI      *ai.Dispatcher
	Summary *summary.Worker
	Prompts *prompts.Catalog

	cron       *cron.Cron
	cancelJobs context.CancelFunc
}

// NewServiceContext wires up storage, providers, the dispatcher, the
// summary worker, and the maintenance jobs.
func NewServiceContext(c config.Config) (*ServiceContext, error) {
	store, err := db.NewSQLite(c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	rooms, err := chatroom.NewManager(c.DataDir, c.MaxRallies)
	if err != nil {
		return nil, fmt.Errorf("init chatrooms: %w", err)
	}

	catalog, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	var providers []ai.Provider
	if c.AnthropicAPIKey != "" {
		providers = append(providers, ai.NewAnthropicProvider(c.AnthropicAPIKey, "claude-3-7-sonnet-latest"))
	}
	if c.OpenAIAPIKey != "" {
		providers = append(providers, ai.NewOpenAIProvider(c.OpenAIAPIKey, "gpt-4.1"))
	}
	if c.OpenRouterAPIKey != "" {
		providers = append(providers, ai.NewOpenRouterProvider(
			c.OpenRouterAPIKey, "anthropic/claude-3.7-sonnet", c.OpenRouterReferrer, c.OpenRouterTitle))
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no AI provider configured - set at least one of ANTHROPIC_API_KEY, OPENAI_API_KEY, OPENROUTER_API_KEY")
	}

	retryCfg := ai.DefaultRetryConfig()
	if c.MaxRetries > 0 {
		retryCfg.MaxRetries = c.MaxRetries
	}
	dispatcher := ai.NewDispatcher(providers, c.DefaultProvider, retryCfg, c.MaxTokens)

	worker := summary.NewWorker(rooms, dispatcher, catalog, 32)

	jobCtx, cancel := context.WithCancel(context.Background())
	worker.Start(jobCtx)

	svcCtx := &ServiceContext{
		Config:     c,
		DB:         store,
		Rooms:      rooms,
		AI:         dispatcher,
		Summary:    worker,
		Prompts:    catalog,
		cron:       cron.New(),
		cancelJobs: cancel,
	}
	svcCtx.scheduleMaintenance(jobCtx)
	svcCtx.cron.Start()

	return svcCtx, nil
}

// scheduleMaintenance registers the periodic housekeeping jobs: hourly
// chatroom cache sweeps and daily refresh-token pruning.
func (s *ServiceContext) scheduleMaintenance(ctx context.Context) {
	s.cron.AddFunc("@hourly", func() {
		if n := s.Rooms.SweepCache(); n > 0 {
			logging.Debugf("swept %d stale chatroom cache entries", n)
		}
	})
	s.cron.AddFunc("@daily", func() {
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if n, err := s.DB.PruneExpiredTokens(dbCtx); err != nil {
			logging.Errorf("refresh token pruning failed: %v", err)
		} else if n > 0 {
			logging.Infof("pruned %d expired refresh tokens", n)
		}
	})
}

// Close stops background work and releases the database connection.
func (s *ServiceContext) Close() {
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.cancelJobs != nil {
		s.cancelJobs()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
