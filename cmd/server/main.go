package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"exmplr-agent/internal/api/handler"
	"exmplr-agent/internal/api/router"
	"exmplr-agent/internal/core"
	"exmplr-agent/internal/extract"
	"exmplr-agent/internal/llm"
	"exmplr-agent/internal/observability"
	"exmplr-agent/internal/session"
	"exmplr-agent/internal/trials"
	"exmplr-agent/pkg/config"
)

func main() {
	// Load configuration; missing API credentials prevent startup.
	cfg, err := config.Load()
	if err != nil {
		// Logger is not configured yet, write straight to stderr.
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	observability.InitLogger("exmplr-agent", cfg.Server.Env)

	// Wire the session manager: oracle, extractor, search client, store.
	oracle := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	extractor := extract.NewExtractor(oracle)
	searchClient := trials.NewClient(cfg.Exmplr.BaseURL, cfg.Exmplr.APIKey, cfg.Exmplr.Timeout)
	store := session.NewStore()
	manager := core.NewManager(store, extractor, searchClient, cfg.Chat.HistoryWindow)

	sessionHandler := handler.NewSessionHandler(manager)

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	router.RegisterRoutes(engine, sessionHandler)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Addr()).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}
	log.Info().Msg("server stopped")
}
