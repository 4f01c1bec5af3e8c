// Package vocab holds the trusted proper-noun vocabulary: verified
// source-term → target-rendering pairs grouped into ordered categories.
// The vocabulary is read-only at request time; it is maintained externally
// (YAML file or the glossary admin commands) and loaded once per process.
package vocab

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Entry is a single verified term mapping. Immutable once loaded.
type Entry struct {
	SourceTerm string
	Target     string
	Confidence string
}

// Category groups entries under a name (person, place, organization, …).
// Entry order within a category follows the backing source.
type Category struct {
	Name    string
	Entries []Entry
}

// Vocabulary is the ordered set of categories. Category order is the
// iteration order used for first-match resolution, so sources must produce
// it deterministically (document order for YAML, category/term sort for
// the SQLite store).
type Vocabulary struct {
	Categories []Category
}

// Term is a resolved (source, rendering) pair after first-match
// deduplication across categories.
type Term struct {
	Source   string
	Target   string
	Category string
}

// Empty returns a vocabulary with no entries.
func Empty() *Vocabulary {
	return &Vocabulary{}
}

// Len returns the total entry count across all categories.
func (v *Vocabulary) Len() int {
	n := 0
	for _, c := range v.Categories {
		n += len(c.Entries)
	}
	return n
}

// Resolved flattens the vocabulary into a deterministic term list. A term
// appearing in more than one category resolves to the first category that
// declares it; later duplicates are dropped.
func (v *Vocabulary) Resolved() []Term {
	seen := make(map[string]struct{}, v.Len())
	terms := make([]Term, 0, v.Len())
	for _, c := range v.Categories {
		for _, e := range c.Entries {
			if e.SourceTerm == "" {
				continue
			}
			if _, dup := seen[e.SourceTerm]; dup {
				continue
			}
			seen[e.SourceTerm] = struct{}{}
			terms = append(terms, Term{Source: e.SourceTerm, Target: e.Target, Category: c.Name})
		}
	}
	return terms
}

// SourceTerms returns all distinct source terms in resolution order.
func (v *Vocabulary) SourceTerms() []string {
	resolved := v.Resolved()
	out := make([]string, len(resolved))
	for i, t := range resolved {
		out[i] = t.Source
	}
	return out
}

// Rendering returns the first-match target rendering for a source term.
func (v *Vocabulary) Rendering(sourceTerm string) (string, bool) {
	for _, c := range v.Categories {
		for _, e := range c.Entries {
			if e.SourceTerm == sourceTerm {
				return e.Target, true
			}
		}
	}
	return "", false
}

// NormalizeTerm trims whitespace and applies Unicode NFC normalization so
// that lookups behave identically regardless of how the term was typed.
func NormalizeTerm(term string) string {
	return norm.NFC.String(strings.TrimSpace(term))
}
