package timeline

import "timeline-editor/internal/text"

// Classify picks an initial kind for freshly ingested text: bracketed
// annotations are descriptions, Latin-only text is a translation, anything
// else belongs on the main track. It is a heuristic; an item's AssignedKind
// always wins.
func Classify(value string) Kind {
	switch {
	case text.HasBracketed(value):
		return KindDescription
	case text.IsLatinOnly(value):
		return KindTranslation
	default:
		return KindMain
	}
}

// KindFor returns the item's explicit kind if set, otherwise Classify of its text.
func KindFor(iv Interval) Kind {
	if iv.AssignedKind != "" {
		return iv.AssignedKind
	}
	return Classify(iv.Payload.Text)
}
