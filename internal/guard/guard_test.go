package guard_test

import (
	"strings"
	"testing"

	"github.com/okabeworks/visatrans/internal/guard"
	"github.com/okabeworks/visatrans/internal/vocab"
)

func testVocab(categories ...vocab.Category) *vocab.Vocabulary {
	return &vocab.Vocabulary{Categories: categories}
}

func personVocab(pairs map[string]string) vocab.Category {
	cat := vocab.Category{Name: "person"}
	for src, tgt := range pairs {
		cat.Entries = append(cat.Entries, vocab.Entry{SourceTerm: src, Target: tgt, Confidence: "verified"})
	}
	return cat
}

func TestProtect_EmptyVocabulary(t *testing.T) {
	text := "田中太郎は来日した。"
	p := guard.Protect(text, vocab.Empty())
	if p.Text != text {
		t.Errorf("expected unchanged text, got %q", p.Text)
	}
	if p.Map.Len() != 0 {
		t.Errorf("expected 0 mappings, got %d", p.Map.Len())
	}
	if len(p.Applied) != 0 {
		t.Errorf("expected no applied terms, got %v", p.Applied)
	}
}

func TestProtect_KnownTermReplaced(t *testing.T) {
	v := testVocab(personVocab(map[string]string{"田中太郎": "Taro Tanaka"}))
	p := guard.Protect("田中太郎は2020年に来日した。", v)

	if strings.Contains(p.Text, "田中太郎") {
		t.Errorf("source term still present in %q", p.Text)
	}
	if !strings.Contains(p.Text, "__PN_0__") {
		t.Errorf("expected placeholder in %q", p.Text)
	}
	if len(p.Applied) != 1 || p.Applied[0] != "田中太郎" {
		t.Errorf("expected applied=[田中太郎], got %v", p.Applied)
	}
}

func TestProtect_EveryOccurrenceSharesOnePlaceholder(t *testing.T) {
	v := testVocab(personVocab(map[string]string{"田中太郎": "Taro Tanaka"}))
	p := guard.Protect("田中太郎です。田中太郎は学生です。", v)

	if strings.Contains(p.Text, "田中太郎") {
		t.Errorf("source term still present in %q", p.Text)
	}
	if got := strings.Count(p.Text, "__PN_0__"); got != 2 {
		t.Errorf("expected 2 occurrences of the placeholder, got %d in %q", got, p.Text)
	}
	if p.Map.Len() != 1 {
		t.Errorf("expected 1 mapping for the occurrence group, got %d", p.Map.Len())
	}
}

func TestProtect_LongerTermWinsOverlap(t *testing.T) {
	v := testVocab(vocab.Category{Name: "place", Entries: []vocab.Entry{
		{SourceTerm: "東京", Target: "Tokyo (wrong)"},
		{SourceTerm: "東京都", Target: "Tokyo"},
	}})
	p := guard.Protect("住所は東京都です。", v)

	restored := guard.Restore(p.Text, p.Map)
	if !strings.Contains(restored, "Tokyo") || strings.Contains(restored, "wrong") {
		t.Errorf("longest-first matching violated: %q", restored)
	}
	if len(p.Applied) != 1 || p.Applied[0] != "東京都" {
		t.Errorf("expected only 東京都 applied, got %v", p.Applied)
	}
}

func TestRestore_RoundTripNoResidualPlaceholders(t *testing.T) {
	v := testVocab(
		personVocab(map[string]string{"田中太郎": "Taro Tanaka"}),
		vocab.Category{Name: "place", Entries: []vocab.Entry{{SourceTerm: "東京都", Target: "Tokyo"}}},
	)
	p := guard.Protect("田中太郎の住所は東京都です。", v)

	restored := guard.Restore(p.Text, p.Map)
	if strings.Contains(restored, "__PN_") {
		t.Errorf("residual placeholder in %q", restored)
	}
	for _, want := range []string{"Taro Tanaka", "Tokyo"} {
		if !strings.Contains(restored, want) {
			t.Errorf("expected %q in %q", want, restored)
		}
	}
}

func TestRestore_Idempotent(t *testing.T) {
	v := testVocab(personVocab(map[string]string{"田中太郎": "Taro Tanaka"}))
	p := guard.Protect("田中太郎です。", v)

	once := guard.Restore(p.Text, p.Map)
	twice := guard.Restore(once, p.Map)
	if once != twice {
		t.Errorf("restore is not idempotent:\n  once:  %q\n  twice: %q", once, twice)
	}
}

func TestMissing(t *testing.T) {
	v := testVocab(personVocab(map[string]string{"田中太郎": "Taro Tanaka"}))
	p := guard.Protect("田中太郎です。", v)

	if missing := guard.Missing(p.Text, p.Map); len(missing) != 0 {
		t.Errorf("expected no missing tokens in protected text, got %v", missing)
	}
	if missing := guard.Missing("the model dropped everything", p.Map); len(missing) != 1 {
		t.Errorf("expected 1 missing token, got %v", missing)
	}
}

func TestFindUnverified(t *testing.T) {
	v := testVocab(personVocab(map[string]string{"田中太郎": "Taro Tanaka"}))

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "known term is not flagged",
			text: "田中太郎です。",
			want: nil,
		},
		{
			name: "substring of a known term is suppressed",
			text: "田中です。",
			want: nil,
		},
		{
			name: "run containing a known term is suppressed",
			text: "田中太郎様です。",
			want: nil,
		},
		{
			name: "unknown run is flagged",
			text: "大阪府に住んでいます。",
			want: []string{"大阪府"},
		},
		{
			name: "single character runs are ignored",
			text: "彼はここにいます。",
			want: nil,
		},
		{
			name: "duplicates collapse, order preserved",
			text: "大阪府と京都市と大阪府。",
			want: []string{"大阪府", "京都市"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guard.FindUnverified(tt.text, v)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestFindUnverified_EmptyVocabularyFlagsEverything(t *testing.T) {
	got := guard.FindUnverified("田中太郎は東京都に住む。", vocab.Empty())
	if len(got) == 0 {
		t.Fatal("expected unverified candidates with an empty vocabulary")
	}
}
