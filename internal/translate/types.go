// Package translate provides the sentence translation capability consumed
// by the pipeline. Engines translate exactly one protected sentence per
// call under a literal, non-paraphrasing contract and must pass guard
// placeholders through byte-identical. Failures are returned as explicit
// errors; the fallback policy lives in the pipeline, not here.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okabeworks/visatrans/internal/guard"
)

// Config carries engine construction settings.
type Config struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Credentials string        `mapstructure:"credentials"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Request is one sentence to translate. Text may contain placeholder
// tokens minted by the guard.
type Request struct {
	Text       string
	SourceLang string
	TargetLang string
}

// Result is a successful single-sentence translation.
type Result struct {
	Text    string
	Model   string
	Latency time.Duration
}

// Engine is the boundary capability: one sentence in, one sentence out.
type Engine interface {
	Name() string
	Translate(ctx context.Context, req Request) (*Result, error)
	IsAvailable(ctx context.Context) error
}

// systemPrompt builds the strict sentence-locked instruction shared by the
// LLM engines.
func systemPrompt(sourceLang, targetLang string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are a literal translation engine (%s -> %s) for official application documents.\n", sourceLang, targetLang))
	sb.WriteString("Translate exactly one sentence per request.\n")
	sb.WriteString("RULES:\n")
	sb.WriteString("1. Translate literally. No paraphrase, omission, or embellishment. Keep all numbers, dates, and punctuation.\n")
	sb.WriteString("2. The input is a single isolated sentence. Never assume or invent surrounding context.\n")
	sb.WriteString("3. If the input is a question, translate it; do not answer it.\n")
	sb.WriteString("4. Output only the translation. No explanations, no quotes, no markdown.\n")
	sb.WriteString("5. ")
	sb.WriteString(guard.InstructionHint())
	return sb.String()
}
