package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"finchat/internal/config"
	"finchat/internal/handler"
	"finchat/internal/handler/auth"
	"finchat/internal/handler/chat"
	"finchat/internal/handler/financial"
	"finchat/internal/handler/prompt"
	"finchat/internal/logging"
	"finchat/internal/middleware"
	"finchat/internal/svc"
)

// Run starts the HTTP server and blocks until ctx is cancelled.
func Run(ctx context.Context, c config.Config, svcCtx *svc.ServiceContext) error {
	if err := checkPortAvailable(c.Port); err != nil {
		return fmt.Errorf("port %d is already in use", c.Port)
	}

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(corsMiddleware())

	r.Get("/health", handler.HealthCheckHandler(svcCtx))

	authLimiter := middleware.NewRateLimiter(middleware.AuthRateLimitConfig())
	apiLimiter := middleware.NewRateLimiter(middleware.APIRateLimitConfig())
	r.Use(apiLimiter.Middleware())

	// Credential endpoints get the stricter limiter.
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware())
		r.Post("/register", auth.RegisterHandler(svcCtx))
		r.Post("/token", auth.TokenHandler(svcCtx))
		r.Post("/refresh-token", auth.RefreshTokenHandler(svcCtx))
	})

	// Everything else requires a valid access token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware(c.SecretKey))

		r.Get("/validate-token", auth.ValidateTokenHandler(svcCtx))
		r.Post("/logout", auth.LogoutHandler(svcCtx))

		r.Post("/chat", chat.ChatHandler(svcCtx, "chat"))
		r.Post("/message_chat", chat.ChatHandler(svcCtx, "chat"))
		r.Post("/mobility_chat", chat.ChatHandler(svcCtx, "mobility"))
		r.Post("/clear", chat.ClearHandler(svcCtx))
		r.Get("/conversation_history", chat.HistoryHandler(svcCtx))

		r.Get("/prompt", prompt.ListPromptsHandler(svcCtx))
		r.Get("/prompt/{id}", prompt.GetPromptHandler(svcCtx))
		r.Patch("/prompt/{id}", prompt.UpdatePromptHandler(svcCtx))
		r.Delete("/prompt/{id}", prompt.DeletePromptHandler(svcCtx))
		r.Post("/prompts/create", prompt.CreatePromptHandler(svcCtx))
		r.Post("/api/select-prompt", prompt.SelectPromptHandler(svcCtx))

		r.Post("/financial/submit", financial.SubmitHandler(svcCtx))
		r.Get("/financial/get-strategy", financial.GetStrategyHandler(svcCtx))
		r.Get("/financial/crm-data/{cif_id}", financial.CRMDataHandler(svcCtx))
		r.Post("/financial/lifeplan", financial.LifeplanHandler(svcCtx))
	})

	// WriteTimeout is intentionally omitted: chat responses are
	// long-lived SSE streams.
	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", c.Port),
		Handler:     r,
		IdleTimeout: 120 * time.Second,
	}

	logging.Infof("server listening on http://localhost:%d", c.Port)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Errorf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()

	logging.Infof("shutting down server gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// corsMiddleware allows browser front-ends on any origin to call the
// API with bearer auth.
func corsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// checkPortAvailable checks if a port is available for binding
func checkPortAvailable(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	ln.Close()
	return nil
}
