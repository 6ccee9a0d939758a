package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultOllamaURL = "http://127.0.0.1:11434/api/generate"

// OllamaClient talks to the /api/generate endpoint of a local Ollama server.
type OllamaClient struct {
	url    string
	model  string
	client *http.Client
}

type OllamaOption func(*OllamaClient)

func WithOllamaURL(url string) OllamaOption {
	return func(c *OllamaClient) {
		if url != "" {
			c.url = url
		}
	}
}

func WithOllamaHTTPClient(client *http.Client) OllamaOption {
	return func(c *OllamaClient) { c.client = client }
}

// NewOllamaClient has no request timeout: local generation of a long article
// can take minutes.
func NewOllamaClient(model string, opts ...OllamaOption) *OllamaClient {
	c := &OllamaClient{
		url:    defaultOllamaURL,
		model:  model,
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Complete sends instruction and content as one prompt; the generate endpoint
// has no separate system role.
func (c *OllamaClient) Complete(ctx context.Context, instruction, content string) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  c.model,
		Prompt: instruction + "\n\n" + content,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to connect to ollama: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read ollama response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr ollamaGenerateResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("ollama error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("ollama error (%d): %s", resp.StatusCode, string(respBody))
	}

	var generated ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &generated); err != nil {
		return "", fmt.Errorf("failed to decode ollama response: %w", err)
	}

	if strings.TrimSpace(generated.Response) == "" {
		return "", ErrEmptyResponse
	}

	return generated.Response, nil
}

func (c *OllamaClient) Name() string {
	return "ollama"
}
