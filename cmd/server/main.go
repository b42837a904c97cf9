package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"echoai/internal/bootstrap"
	httptransport "echoai/internal/transport/http"
)

func main() {
	_ = godotenv.Load()

	app, err := bootstrap.New()
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}
	setupLogger(app.Config.App.Env)

	if !app.Config.Configured() {
		log.Warn().Msg("no LLM API keys configured, queries will return degraded answers")
	}

	router := httptransport.NewRouter(app)
	server := &http.Server{
		Addr:              app.Config.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	waitForShutdown(server)
}

func setupLogger(env string) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
