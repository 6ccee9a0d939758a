package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/ObiAU/freshdigest/internal/config"
)

// ErrEmptyResponse is returned when a model answers without any text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// Backend sends one instruction plus content to a language model and returns
// its answer. Implementations decide how the two parts are packed.
type Backend interface {
	Complete(ctx context.Context, instruction, content string) (string, error)
	Name() string
}

// NewBackend picks the implementation chosen for the session.
func NewBackend(cfg *config.Config, session config.Session) (Backend, error) {
	switch session.Backend {
	case config.BackendOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, session.Model, cfg.OpenAIBaseURL), nil
	case config.BackendOllama:
		return NewOllamaClient(session.Model, WithOllamaURL(cfg.OllamaAPIURL)), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", session.Backend)
	}
}
