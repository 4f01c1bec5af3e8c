package segment_test

import (
	"reflect"
	"testing"

	"github.com/okabeworks/visatrans/internal/segment"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "no terminal punctuation is one sentence",
			text: "こんにちは",
			want: []string{"こんにちは"},
		},
		{
			name: "two japanese sentences",
			text: "田中太郎は2020年に来日した。彼の住所は東京都です。",
			want: []string{"田中太郎は2020年に来日した。", "彼の住所は東京都です。"},
		},
		{
			name: "terminal punctuation stays attached",
			text: "本当ですか？はい！",
			want: []string{"本当ですか？", "はい！"},
		},
		{
			name: "punctuation runs stay together",
			text: "すごい！！！次の文。",
			want: []string{"すごい！！！", "次の文。"},
		},
		{
			name: "newline is a boundary",
			text: "一行目\n二行目",
			want: []string{"一行目", "二行目"},
		},
		{
			name: "ascii sentences",
			text: "First sentence. Second one!",
			want: []string{"First sentence.", "Second one!"},
		},
		{
			name: "decimal number stays whole",
			text: "家賃は8.5万円です。",
			want: []string{"家賃は8.5万円です。"},
		},
		{
			name: "version string stays whole",
			text: "v1.2.3を使っています。",
			want: []string{"v1.2.3を使っています。"},
		},
		{
			name: "period before whitespace still splits",
			text: "Rent is 8.5 man yen. It is paid monthly.",
			want: []string{"Rent is 8.5 man yen.", "It is paid monthly."},
		},
		{
			name: "placeholders carry no boundaries",
			text: "__PN_0__は__PN_1__に行った。次の文です。",
			want: []string{"__PN_0__は__PN_1__に行った。", "次の文です。"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segment.Split(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplit_IdempotentOnSingleSentence(t *testing.T) {
	for _, s := range []string{"彼の住所は東京都です。", "A plain sentence.", "区切りのない文"} {
		got := segment.Split(s)
		if len(got) != 1 || got[0] != s {
			t.Errorf("Split(%q) = %v, want [%q]", s, got, s)
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := "一つ目。二つ目！三つ目？"
	first := segment.Split(text)
	second := segment.Split(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Split is not deterministic: %v vs %v", first, second)
	}
}

func TestSplit_AlignsWithProtectedText(t *testing.T) {
	original := "田中太郎は来た。東京都に住む。"
	protected := "__PN_0__は来た。__PN_1__に住む。"

	if a, b := segment.Split(original), segment.Split(protected); len(a) != len(b) {
		t.Errorf("sentence counts diverge: %d vs %d", len(a), len(b))
	}
}
