package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okabeworks/visatrans/internal/postprocess"
)

const defaultOllamaModel = "qwen2.5:3b"

// OllamaEngine translates sentences with a self-hosted Ollama server.
type OllamaEngine struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaEngine builds an Ollama-backed engine.
func NewOllamaEngine(cfg Config) *OllamaEngine {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &OllamaEngine{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (e *OllamaEngine) Name() string {
	return "ollama"
}

// Translate sends one protected sentence under the literal contract.
func (e *OllamaEngine) Translate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	body := map[string]interface{}{
		"model":  e.model,
		"system": systemPrompt(req.SourceLang, req.TargetLang),
		"prompt": req.Text,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0,
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/api/generate", e.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var ollamaResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &Result{
		Text:    postprocess.Clean(ollamaResp.Response),
		Model:   e.model,
		Latency: time.Since(start),
	}, nil
}

// IsAvailable probes the Ollama tags endpoint.
func (e *OllamaEngine) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/tags", e.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama not available: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}
