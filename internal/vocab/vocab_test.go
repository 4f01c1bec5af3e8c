package vocab_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okabeworks/visatrans/internal/vocab"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleYAML = `person:
  田中太郎:
    target: "Taro Tanaka"
    confidence: verified
  佐藤花子:
    target: "Hanako Sato"
place:
  東京都:
    target: "Tokyo"
`

func TestFileSource_Load(t *testing.T) {
	src := &vocab.FileSource{Path: writeTemp(t, "vocab.yaml", sampleYAML)}
	v, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(v.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(v.Categories))
	}
	if v.Categories[0].Name != "person" || v.Categories[1].Name != "place" {
		t.Errorf("category document order not preserved: %v, %v", v.Categories[0].Name, v.Categories[1].Name)
	}
	if v.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", v.Len())
	}

	if got, ok := v.Rendering("田中太郎"); !ok || got != "Taro Tanaka" {
		t.Errorf("Rendering(田中太郎) = %q, %v", got, ok)
	}
	// Missing confidence defaults to verified.
	if v.Categories[0].Entries[1].Confidence != "verified" {
		t.Errorf("expected default confidence, got %q", v.Categories[0].Entries[1].Confidence)
	}
}

func TestFileSource_TermOrderPreserved(t *testing.T) {
	src := &vocab.FileSource{Path: writeTemp(t, "vocab.yaml", sampleYAML)}
	v, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	terms := v.SourceTerms()
	want := []string{"田中太郎", "佐藤花子", "東京都"}
	if len(terms) != len(want) {
		t.Fatalf("got %v, want %v", terms, want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Fatalf("got %v, want %v", terms, want)
		}
	}
}

func TestFileSource_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "::: not yaml {{{"},
		{"top level sequence", "- a\n- b\n"},
		{"category not a mapping", "person: just a string\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &vocab.FileSource{Path: writeTemp(t, "bad.yaml", tt.content)}
			if _, err := src.Load(context.Background()); err == nil {
				t.Error("expected error for malformed vocabulary")
			}
		})
	}
}

func TestResolved_FirstMatchAcrossCategories(t *testing.T) {
	content := `person:
  田中:
    target: "Tanaka (person)"
company:
  田中:
    target: "Tanaka Corp"
`
	src := &vocab.FileSource{Path: writeTemp(t, "dup.yaml", content)}
	v, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	resolved := v.Resolved()
	if len(resolved) != 1 {
		t.Fatalf("expected 1 resolved term, got %d", len(resolved))
	}
	if resolved[0].Target != "Tanaka (person)" || resolved[0].Category != "person" {
		t.Errorf("first-match policy violated: %+v", resolved[0])
	}
}

func TestCached_DegradesToEmptyOnFailure(t *testing.T) {
	cached := vocab.NewCached(&vocab.FileSource{Path: "/nonexistent/vocab.yaml"})
	v := cached.Vocabulary(context.Background())
	if v == nil {
		t.Fatal("expected an empty vocabulary, got nil")
	}
	if v.Len() != 0 {
		t.Errorf("expected empty vocabulary, got %d entries", v.Len())
	}
}

func TestCached_LoadsOnce(t *testing.T) {
	src := &countingSource{}
	cached := vocab.NewCached(src)

	for i := 0; i < 3; i++ {
		cached.Vocabulary(context.Background())
	}
	if src.calls != 1 {
		t.Errorf("expected 1 load, got %d", src.calls)
	}
}

type countingSource struct {
	calls int
}

func (s *countingSource) Load(ctx context.Context) (*vocab.Vocabulary, error) {
	s.calls++
	return vocab.Empty(), nil
}

func TestNormalizeTerm(t *testing.T) {
	if got := vocab.NormalizeTerm("  田中太郎\n"); got != "田中太郎" {
		t.Errorf("NormalizeTerm = %q", got)
	}
}
