// Package postprocess strips common LLM artifacts from per-sentence engine
// output before placeholder restoration: reasoning blocks, instruction
// echoes, code fences, and quote wrapping. The sentence-locked literal
// contract forbids all of these, but models still produce them.
package postprocess

import (
	"regexp"
	"strings"
)

// reasoningBlockRe matches complete <thinking>…</thinking> style blocks.
// Each tag variant is listed explicitly because Go's RE2 engine has no
// backreferences.
var reasoningBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// truncatedReasoningRe matches an opened reasoning tag whose closing tag
// never arrived (the model got cut off mid-thought).
var truncatedReasoningRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>).*$`,
)

// echoRes match introductory phrases models prepend even when told not to.
// Anchored to the start and requiring a colon to avoid eating content.
var echoRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:literal )?(?:translation|text)\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:literal )?(?:translation|translated text)\s*:`),
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.]? here(?:'s| is)(?: the)? (?:translation|text)\s*:`),
}

// Clean removes engine artifacts and returns the trimmed sentence.
func Clean(text string) string {
	text = reasoningBlockRe.ReplaceAllString(text, "")
	text = truncatedReasoningRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	for _, re := range echoRes {
		if loc := re.FindStringIndex(text); loc != nil {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}

	text = trimFence(text)
	text = trimQuotes(text)
	return strings.TrimSpace(text)
}

// trimFence strips a wrapping markdown code fence.
func trimFence(text string) string {
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")
	inner = strings.TrimPrefix(inner, "text")
	return strings.TrimSpace(inner)
}

// trimQuotes strips one matching pair of outer quotes when the entire text
// is wrapped in them.
func trimQuotes(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '「' && last == '」') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
