package translate

import (
	"context"
	"fmt"
	"time"

	translatev2 "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleEngine translates sentences with the Google Cloud Translation API.
// It is a non-LLM alternative for deployments without an LLM endpoint; the
// ASCII placeholder tokens are non-linguistic, so the API passes them
// through unchanged.
type GoogleEngine struct {
	credentials string
}

// NewGoogleEngine builds a Google-backed engine. credentials is an optional
// service-account file path; when empty the ambient
// GOOGLE_APPLICATION_CREDENTIALS environment is used.
func NewGoogleEngine(cfg Config) *GoogleEngine {
	return &GoogleEngine{credentials: cfg.Credentials}
}

func (e *GoogleEngine) Name() string {
	return "google"
}

// Translate sends one protected sentence.
func (e *GoogleEngine) Translate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	target, err := language.Parse(req.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language: %w", err)
	}
	source, err := language.Parse(req.SourceLang)
	if err != nil {
		return nil, fmt.Errorf("invalid source language: %w", err)
	}

	var opts []option.ClientOption
	if e.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(e.credentials))
	}

	client, err := translatev2.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{req.Text}, target, &translatev2.Options{
		Source: source,
		Format: translatev2.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return nil, fmt.Errorf("no translation returned")
	}

	return &Result{
		Text:    translations[0].Text,
		Model:   "nmt",
		Latency: time.Since(start),
	}, nil
}

// IsAvailable reports whether a client can be constructed with the
// configured credentials.
func (e *GoogleEngine) IsAvailable(ctx context.Context) error {
	var opts []option.ClientOption
	if e.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(e.credentials))
	}
	client, err := translatev2.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("google translate not available: %w", err)
	}
	return client.Close()
}
