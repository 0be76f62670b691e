package provider

import (
	"strings"

	"go.uber.org/zap"
)

// Config names the desired backend and its credentials. The zero value
// resolves to the mock.
type Config struct {
	Provider string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	OllamaBaseURL string
	OllamaModel   string
}

// New resolves the configured backend. An unknown provider name or missing
// credentials degrade to the mock rather than failing startup; the choice
// is made once here and the result is passed down explicitly, never held
// in package state.
func New(cfg Config, log *zap.Logger) LLM {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Warn("OPENAI_API_KEY not set, falling back to mock provider")
			return NewMock()
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaModel)
	case "mock", "":
		return NewMock()
	default:
		log.Warn("unknown llm provider, falling back to mock", zap.String("provider", cfg.Provider))
		return NewMock()
	}
}
