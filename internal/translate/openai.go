package translate

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/okabeworks/visatrans/internal/postprocess"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAIEngine translates sentences with the OpenAI Chat Completions API
// (or any OpenAI-compatible endpoint via BaseURL).
type OpenAIEngine struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIEngine builds an OpenAI-backed engine. The API key is required.
func NewOpenAIEngine(cfg Config) (*OpenAIEngine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIEngine{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: timeout,
	}, nil
}

func (e *OpenAIEngine) Name() string {
	return "openai"
}

// Translate sends one protected sentence under the literal contract.
func (e *OpenAIEngine) Translate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req.SourceLang, req.TargetLang)},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return &Result{
		Text:    postprocess.Clean(resp.Choices[0].Message.Content),
		Model:   e.model,
		Latency: time.Since(start),
	}, nil
}

// IsAvailable checks the configured key against a lightweight API call.
func (e *OpenAIEngine) IsAvailable(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai not available: %w", err)
	}
	return nil
}
