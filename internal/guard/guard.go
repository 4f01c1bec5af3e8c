// Package guard protects registered proper nouns during translation by
// replacing them with numbered placeholders (__PN_0__, __PN_1__, …) that
// the translation engine is instructed to preserve. After translation,
// Restore substitutes the verified target renderings for the placeholders.
// FindUnverified flags Han-script runs that are not covered by the
// vocabulary so the risk classifier can warn about them.
package guard

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/okabeworks/visatrans/internal/vocab"
)

// placeholder tokens contain only ASCII letters, digits and underscores, so
// they never introduce a sentence boundary and never collide with natural
// text in either language.
func token(n int) string {
	return fmt.Sprintf("__PN_%d__", n)
}

// Mapping binds one placeholder token to the verified rendering that must
// replace it after translation.
type Mapping struct {
	Token     string
	Rendering string
}

// PlaceholderMap is the ordered placeholder → rendering mapping produced by
// a single Protect call. It is built once per request and never persisted.
type PlaceholderMap struct {
	mappings []Mapping
}

// Len returns the number of placeholders minted.
func (m *PlaceholderMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.mappings)
}

// Add appends a mapping. Used when narrowing a map to a subset of tokens.
func (m *PlaceholderMap) Add(mp Mapping) {
	m.mappings = append(m.mappings, mp)
}

// Mappings returns the placeholder mappings in mint order.
func (m *PlaceholderMap) Mappings() []Mapping {
	if m == nil {
		return nil
	}
	return m.mappings
}

// Protection is the result of protecting one text.
type Protection struct {
	// Text is the input with every occurrence of each applied term
	// replaced by that term's placeholder.
	Text string
	// Map carries the placeholder → rendering pairs for Restore.
	Map *PlaceholderMap
	// Applied lists the source terms that were actually substituted,
	// in substitution order.
	Applied []string
}

// Protect replaces every occurrence of each vocabulary term found in text
// with a freshly minted placeholder. Terms are matched longest-first
// (ties broken by category resolution order) so an overlapping shorter
// term can never corrupt a longer one. Matching is exact-substring and
// case-sensitive; no normalization is applied to the request text.
func Protect(text string, v *vocab.Vocabulary) Protection {
	p := Protection{Text: text, Map: &PlaceholderMap{}}
	if v == nil || v.Len() == 0 {
		return p
	}

	terms := v.Resolved()
	// Longest terms first; stable sort keeps category resolution order
	// among equal lengths.
	sort.SliceStable(terms, func(i, j int) bool {
		return runeLen(terms[i].Source) > runeLen(terms[j].Source)
	})

	counter := 0
	for _, t := range terms {
		if !strings.Contains(p.Text, t.Source) {
			continue
		}
		tok := token(counter)
		counter++
		p.Text = strings.ReplaceAll(p.Text, t.Source, tok)
		p.Map.mappings = append(p.Map.mappings, Mapping{Token: tok, Rendering: t.Target})
		p.Applied = append(p.Applied, t.Source)
	}
	return p
}

func runeLen(s string) int {
	return len([]rune(s))
}

// Restore substitutes every placeholder in text with its verified
// rendering. It is applied identically to the combined translation and to
// each per-sentence translation so the two views stay consistent, and it
// is idempotent: restored text cannot contain placeholder-shaped tokens.
func Restore(text string, m *PlaceholderMap) string {
	for _, mp := range m.Mappings() {
		text = strings.ReplaceAll(text, mp.Token, mp.Rendering)
	}
	return text
}

// Missing reports which placeholders from m are absent from text. A
// non-empty result after translation means the engine dropped or mangled a
// protected term and the sentence should fall back to its protected form.
func Missing(text string, m *PlaceholderMap) []string {
	var missing []string
	for _, mp := range m.Mappings() {
		if !strings.Contains(text, mp.Token) {
			missing = append(missing, mp.Token)
		}
	}
	return missing
}

// InstructionHint returns the contract sentence appended to engine prompts
// so the model leaves placeholder tokens intact.
func InstructionHint() string {
	return "Preserve every __PN_<n>__ token exactly as written; do not translate, move, or remove them."
}

// FindUnverified scans text for maximal runs of Han-script characters of
// length ≥ 2 and returns the runs that the vocabulary cannot vouch for.
// A run is considered covered when it equals a known term, is contained in
// one, or contains one; partial overlaps with legitimate multi-character
// entries are suppressed as noise. The result keeps first-occurrence order
// with duplicates removed. This is a coarse script heuristic, not proper
// noun recognition.
func FindUnverified(text string, v *vocab.Vocabulary) []string {
	runs := hanRuns(text)
	if len(runs) == 0 {
		return nil
	}

	var known []string
	if v != nil {
		known = v.SourceTerms()
	}

	seen := make(map[string]struct{}, len(runs))
	var unverified []string
	for _, run := range runs {
		if _, dup := seen[run]; dup {
			continue
		}
		seen[run] = struct{}{}
		if coveredByVocabulary(run, known) {
			continue
		}
		unverified = append(unverified, run)
	}
	return unverified
}

// hanRuns returns maximal runs of Han characters with rune length ≥ 2.
func hanRuns(text string) []string {
	var runs []string
	var cur []rune
	flush := func() {
		if len(cur) >= 2 {
			runs = append(runs, string(cur))
		}
		cur = cur[:0]
	}
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			cur = append(cur, r)
			continue
		}
		flush()
	}
	flush()
	return runs
}

func coveredByVocabulary(run string, known []string) bool {
	for _, term := range known {
		if run == term || strings.Contains(term, run) || strings.Contains(run, term) {
			return true
		}
	}
	return false
}
