// Package segment splits text into ordered sentences at trailing-punctuation
// boundaries, keeping the terminal punctuation attached to its sentence.
// Splitting is a pure function of the input; the same text always yields the
// same sentence sequence.
package segment

import (
	"strings"
	"unicode"
)

// terminal runes end a sentence. Newlines count as boundaries so each form
// line translates independently. A bare ASCII period is terminal only when
// followed by whitespace or the end of the text, so decimals and
// abbreviations stay whole.
const terminals = "。．！？!?.\n"

func isTerminal(r rune) bool {
	return strings.ContainsRune(terminals, r)
}

func isBoundary(runes []rune, i int) bool {
	r := runes[i]
	if !isTerminal(r) {
		return false
	}
	if r != '.' {
		return true
	}
	return i+1 == len(runes) || unicode.IsSpace(runes[i+1])
}

// Split returns the sentences of text in order. Empty fragments are
// discarded and a fragment consisting purely of terminal punctuation is
// appended to the preceding sentence, so punctuation never starts a
// sentence or stands alone. Placeholder tokens minted by the guard contain
// no terminal runes, which keeps the segmentation of original and
// protected text index-aligned.
func Split(text string) []string {
	runes := []rune(text)

	var sentences []string
	var cur []rune
	inTerminal := false

	flush := func() {
		s := strings.TrimSpace(string(cur))
		cur = cur[:0]
		if s == "" {
			return
		}
		if pureTerminal(s) && len(sentences) > 0 {
			sentences[len(sentences)-1] += s
			return
		}
		sentences = append(sentences, s)
	}

	for i, r := range runes {
		if isBoundary(runes, i) {
			cur = append(cur, r)
			inTerminal = true
			continue
		}
		if inTerminal {
			flush()
			inTerminal = false
		}
		cur = append(cur, r)
	}
	flush()

	return sentences
}

func pureTerminal(s string) bool {
	for _, r := range s {
		if !isTerminal(r) {
			return false
		}
	}
	return len(s) > 0
}
