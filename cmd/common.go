package cmd

import (
	"fmt"
	"os"

	"github.com/okabeworks/visatrans/internal/config"
	"github.com/okabeworks/visatrans/internal/pipeline"
	"github.com/okabeworks/visatrans/internal/translate"
	"github.com/okabeworks/visatrans/internal/vocab"
)

// buildEngine constructs the configured translation engine, wrapped in the
// per-sentence TTL memory.
func buildEngine(cfg *config.Config) (translate.Engine, error) {
	ec := cfg.Engine.Config
	if ec.APIKey == "" {
		ec.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	var engine translate.Engine
	switch cfg.Engine.Provider {
	case "openai":
		e, err := translate.NewOpenAIEngine(ec)
		if err != nil {
			return nil, err
		}
		engine = e
	case "ollama":
		engine = translate.NewOllamaEngine(ec)
	case "google":
		engine = translate.NewGoogleEngine(ec)
	default:
		return nil, fmt.Errorf("unknown engine provider: %s (supported: openai, ollama, google)", cfg.Engine.Provider)
	}

	if cfg.Pipeline.CacheTTL > 0 {
		engine = translate.NewMemory(engine, cfg.Pipeline.CacheTTL)
	}
	return engine, nil
}

// buildVocabulary constructs the cached vocabulary from the configured
// source. The returned closer releases the SQLite handle when that source
// is in use; for the YAML source it is a no-op.
func buildVocabulary(cfg *config.Config) (*vocab.Cached, func() error, error) {
	if cfg.Vocabulary.DBPath != "" {
		store, err := vocab.OpenStore(cfg.Vocabulary.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open vocabulary database: %w", err)
		}
		return vocab.NewCached(store), store.Close, nil
	}

	src := &vocab.FileSource{Path: cfg.Vocabulary.Path}
	return vocab.NewCached(src), func() error { return nil }, nil
}

// buildPipeline assembles the full pipeline from configuration.
func buildPipeline(cfg *config.Config, engine translate.Engine, cached *vocab.Cached) *pipeline.Pipeline {
	return pipeline.New(engine, cached, nil, pipeline.Config{
		MaxParallel: cfg.Pipeline.MaxParallel,
		RateLimit:   cfg.Pipeline.RateLimit,
		SourceLang:  cfg.Pipeline.SourceLang,
		TargetLang:  cfg.Pipeline.TargetLang,
	})
}
