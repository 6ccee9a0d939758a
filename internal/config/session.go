package config

import "fmt"

// Backend names the analysis engine chosen for a run.
type Backend string

const (
	BackendOpenAI Backend = "openai"
	BackendOllama Backend = "ollama"
)

// Session holds the choices made at the start of a run. It is built once by
// the prompts and never changed afterwards.
type Session struct {
	Language string
	Backend  Backend
	Model    string
}

func (s Session) Validate() error {
	if s.Language == "" {
		return fmt.Errorf("language is required")
	}
	if s.Backend != BackendOpenAI && s.Backend != BackendOllama {
		return fmt.Errorf("unknown backend %q", s.Backend)
	}
	if s.Model == "" {
		return fmt.Errorf("model is required")
	}
	return nil
}
