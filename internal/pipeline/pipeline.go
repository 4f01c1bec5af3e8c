// Package pipeline sequences the proper-noun-safe, sentence-locked
// translation: protect → segment → translate (fan-out) → restore →
// classify → assemble. Each run is independent; the only shared state is
// the read-only cached vocabulary.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/okabeworks/visatrans/internal/guard"
	"github.com/okabeworks/visatrans/internal/risk"
	"github.com/okabeworks/visatrans/internal/segment"
	"github.com/okabeworks/visatrans/internal/translate"
	"github.com/okabeworks/visatrans/internal/vocab"
)

const (
	defaultSourceLang  = "ja"
	defaultTargetLang  = "en"
	defaultMaxParallel = 4
)

// Sentence pairs one original sentence with its restored translation.
type Sentence struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// Result is the assembled outcome of one run. It is immutable after
// construction and lives only for the duration of one exchange.
type Result struct {
	OutputText      string     `json:"outputText"`
	RiskLevel       risk.Level `json:"riskLevel"`
	Warnings        []string   `json:"warnings"`
	AppliedGlossary []string   `json:"appliedGlossary"`
	Sentences       []Sentence `json:"sentences"`
}

// Config tunes a Pipeline.
type Config struct {
	// MaxParallel bounds concurrent sentence translation calls.
	MaxParallel int
	// RateLimit caps outbound calls per second; ≤ 0 disables limiting.
	RateLimit float64
	// SourceLang/TargetLang default to ja/en.
	SourceLang string
	TargetLang string
}

// Pipeline runs the translation state machine. Safe for concurrent use.
type Pipeline struct {
	engine  translate.Engine
	vocab   *vocab.Cached
	policy  risk.Policy
	limiter *rate.Limiter
	cfg     Config
}

// New builds a Pipeline. policy may be nil to use the default name-length
// heuristic.
func New(engine translate.Engine, cached *vocab.Cached, policy risk.Policy, cfg Config) *Pipeline {
	if policy == nil {
		policy = risk.NameLengthPolicy{}
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = defaultMaxParallel
	}
	if cfg.SourceLang == "" {
		cfg.SourceLang = defaultSourceLang
	}
	if cfg.TargetLang == "" {
		cfg.TargetLang = defaultTargetLang
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.MaxParallel)
	}

	return &Pipeline{
		engine:  engine,
		vocab:   cached,
		policy:  policy,
		limiter: limiter,
		cfg:     cfg,
	}
}

// Run executes one translation request end to end.
func (p *Pipeline) Run(ctx context.Context, text string) (*Result, error) {
	if p.engine == nil {
		return nil, fmt.Errorf("no translation engine configured")
	}

	v := p.vocab.Vocabulary(ctx)

	prot := guard.Protect(text, v)
	unverified := guard.FindUnverified(text, v)

	originals := segment.Split(text)
	protected := segment.Split(prot.Text)

	// Placeholder tokens carry no sentence boundaries, so both
	// segmentations must align. If they ever diverge, treat the whole
	// text as one sentence instead of failing the request.
	if len(originals) != len(protected) {
		logrus.WithFields(logrus.Fields{
			"original_sentences":  len(originals),
			"protected_sentences": len(protected),
		}).Warn("sentence alignment diverged, translating as a single sentence")
		originals = []string{text}
		protected = []string{prot.Text}
	}

	translated := p.translateAll(ctx, protected, prot.Map)

	sentences := make([]Sentence, len(originals))
	restored := make([]string, len(originals))
	for i := range originals {
		restored[i] = guard.Restore(translated[i], prot.Map)
		sentences[i] = Sentence{Original: originals[i], Translated: restored[i]}
	}
	output := guard.Restore(strings.Join(restored, " "), prot.Map)

	assessment := p.policy.Classify(unverified)

	warnings := assessment.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	applied := prot.Applied
	if applied == nil {
		applied = []string{}
	}

	return &Result{
		OutputText:      output,
		RiskLevel:       assessment.Level,
		Warnings:        warnings,
		AppliedGlossary: applied,
		Sentences:       sentences,
	}, nil
}

// translateAll fans sentence translation out across goroutines and waits
// for the full set. Order is restored by index, not completion time. A
// failed sentence falls back to its protected original so one failure
// never drops another sentence or aborts the request.
func (p *Pipeline) translateAll(ctx context.Context, protected []string, m *guard.PlaceholderMap) []string {
	out := make([]string, len(protected))

	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.MaxParallel)

	for i, sentence := range protected {
		wg.Add(1)
		go func(idx int, text string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			out[idx] = p.translateOne(ctx, idx, text, m)
		}(i, sentence)
	}
	wg.Wait()

	return out
}

// translateOne translates a single protected sentence, applying the rate
// limit and the safe-fallback policy. Log entries carry the failure kind
// and sentence index only, never sentence content.
func (p *Pipeline) translateOne(ctx context.Context, idx int, text string, m *guard.PlaceholderMap) string {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			logrus.WithError(err).WithField("sentence", idx).Warn("rate limiter interrupted, using protected sentence")
			return text
		}
	}

	res, err := p.engine.Translate(ctx, translate.Request{
		Text:       text,
		SourceLang: p.cfg.SourceLang,
		TargetLang: p.cfg.TargetLang,
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"engine":   p.engine.Name(),
			"sentence": idx,
		}).Warn("sentence translation failed, using protected sentence")
		return text
	}

	if missing := guard.Missing(res.Text, onlyPresent(m, text)); len(missing) > 0 {
		logrus.WithFields(logrus.Fields{
			"engine":   p.engine.Name(),
			"sentence": idx,
			"missing":  len(missing),
		}).Warn("engine dropped placeholders, using protected sentence")
		return text
	}

	return res.Text
}

// onlyPresent narrows a placeholder map to the tokens that actually occur
// in the given protected sentence, so survival checks don't flag tokens
// belonging to other sentences.
func onlyPresent(m *guard.PlaceholderMap, protectedSentence string) *guard.PlaceholderMap {
	narrowed := &guard.PlaceholderMap{}
	for _, mp := range m.Mappings() {
		if strings.Contains(protectedSentence, mp.Token) {
			narrowed.Add(mp)
		}
	}
	return narrowed
}
