package bootstrap

import (
	"fmt"
	"time"

	"echoai/internal/ai"
	"echoai/internal/config"
	"echoai/internal/store"
)

type App struct {
	Config  *config.Config
	Store   *store.DocumentStore
	Gateway *ai.Gateway

	StartedAt time.Time
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	docStore := store.New(cfg.Store.MaxSessions)
	gateway := ai.NewGateway(
		ai.ChatConfig{
			BaseURL:     cfg.LLM.Groq.BaseURL,
			APIKey:      cfg.LLM.Groq.APIKey,
			Model:       cfg.LLM.Groq.Model,
			MaxTokens:   cfg.LLM.MaxOutputTokens,
			Temperature: cfg.LLM.Temperature,
		},
		ai.GeminiConfig{
			BaseURL:         cfg.LLM.Gemini.BaseURL,
			APIKey:          cfg.LLM.Gemini.APIKey,
			Model:           cfg.LLM.Gemini.Model,
			MaxOutputTokens: cfg.LLM.MaxOutputTokens,
			Temperature:     cfg.LLM.Temperature,
		},
	)

	return &App{
		Config:    cfg,
		Store:     docStore,
		Gateway:   gateway,
		StartedAt: time.Now(),
	}, nil
}
