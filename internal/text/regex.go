package text

import "regexp"

// Pre-compiled patterns shared by ingestion and classification.
var (
	// BracketRegex matches bracket-delimited annotations such as [music] or [door slams].
	BracketRegex = regexp.MustCompile(`\[[^\[\]]*\]`)

	// LatinOnlyRegex matches text made only of ASCII letters, digits, whitespace
	// and basic punctuation.
	LatinOnlyRegex = regexp.MustCompile(`^[A-Za-z0-9\s.,!?;:'"()\-]+$`)

	// LetterRegex matches a single ASCII letter.
	LetterRegex = regexp.MustCompile(`[A-Za-z]`)

	whitespaceRegex = regexp.MustCompile(`\s+`)
)
