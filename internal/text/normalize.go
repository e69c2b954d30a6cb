// Package text provides cue text utilities for the timeline editor.
package text

import "strings"

// Normalize collapses runs of whitespace (including line breaks from
// multi-line cues) into single spaces and trims the result.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}

// Join concatenates two cue texts with a single space, skipping empty sides.
func Join(first, second string) string {
	first = Normalize(first)
	second = Normalize(second)
	switch {
	case first == "":
		return second
	case second == "":
		return first
	default:
		return first + " " + second
	}
}

// HasBracketed reports whether text contains bracket-delimited content.
func HasBracketed(text string) bool {
	return BracketRegex.MatchString(text)
}

// IsLatinOnly reports whether text consists solely of ASCII letters, digits and
// basic punctuation, and contains at least one letter.
func IsLatinOnly(text string) bool {
	text = Normalize(text)
	return LatinOnlyRegex.MatchString(text) && LetterRegex.MatchString(text)
}
