package nlp

import (
	"strings"

	"tailortalk/internal/core"
)

// intentRule maps a set of phrases to the intent they signal. Rules are
// evaluated in order; the first rule with any matching phrase wins, so
// booking phrases beat query phrases even when both appear ("book an
// appointment" mentions "appointment" from the query set).
type intentRule struct {
	phrases []string
	intent  core.Intent
}

var intentRules = []intentRule{
	{
		phrases: []string{"book", "schedule", "make an appointment", "set up"},
		intent:  core.IntentBook,
	},
	{
		phrases: []string{
			"do i have", "am i free", "anything booked", "appointment",
			"what's scheduled", "is anything", "free on", "available",
			"calendar", "do i", "check", "show me",
		},
		intent: core.IntentQuery,
	},
}

// Classify routes a message to booking or querying. Matching is
// case-insensitive on whole word sequences, so "book" does not fire on
// "facebook". Anything unmatched defaults to booking.
func Classify(text string) core.Intent {
	tokens := tokenize(text)
	for _, rule := range intentRules {
		for _, phrase := range rule.phrases {
			if containsPhrase(tokens, tokenize(phrase)) {
				return rule.intent
			}
		}
	}
	return core.IntentBook
}

// Tokens lowercases and splits text the way the classifier does; other
// packages reuse it for their own word matching.
func Tokens(text string) []string {
	return tokenize(text)
}

// tokenize lowercases and splits on anything that is not a letter, digit
// or apostrophe (keeping "what's" a single token).
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '\'':
			return false
		}
		return true
	})
}

// containsPhrase reports whether phrase occurs in tokens as a contiguous
// subsequence.
func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, w := range phrase {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
