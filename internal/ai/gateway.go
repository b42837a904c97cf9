package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
)

// unavailableAnswer is returned when no provider produced a result.
const unavailableAnswer = "I'm having trouble connecting to AI services. Please check your API keys."

// Gateway turns a prompt into answer text, trying the primary provider first
// and falling back to the secondary. It never surfaces a provider failure to
// the caller; the worst case is a canned unavailable answer.
type Gateway struct {
	groq      *OpenAICompatibleClient
	gemini    *GeminiClient
	groqCfg   ChatConfig
	geminiCfg GeminiConfig
}

func NewGateway(groqCfg ChatConfig, geminiCfg GeminiConfig) *Gateway {
	return &Gateway{
		groq:      NewOpenAICompatibleClient(),
		gemini:    NewGeminiClient(),
		groqCfg:   groqCfg,
		geminiCfg: geminiCfg,
	}
}

func (g *Gateway) Generate(ctx context.Context, prompt string) string {
	if g.groqCfg.APIKey != "" {
		answer, err := g.groq.Complete(ctx, g.groqCfg, []ChatMessage{
			{Role: "user", Content: prompt},
		})
		if err == nil {
			return strings.TrimSpace(answer)
		}
		logProviderFailure("groq", err)
	}

	if g.geminiCfg.APIKey != "" {
		answer, err := g.gemini.GenerateContent(ctx, g.geminiCfg, prompt)
		if err == nil {
			return strings.TrimSpace(answer)
		}
		logProviderFailure("gemini", err)
	}

	return unavailableAnswer
}

func logProviderFailure(provider string, err error) {
	category := CategoryNetwork
	var perr *ProviderError
	if errors.As(err, &perr) {
		category = perr.Category
	}
	log.Warn().
		Str("provider", provider).
		Str("category", string(category)).
		Err(err).
		Msg("provider call failed")
}
