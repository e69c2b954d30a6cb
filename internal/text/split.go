package text

import "strings"

// SplitAtRatio splits text into two parts near ratio (0..1) of its length,
// moving the cut to the nearest word boundary. Text without spaces is cut at
// the rune position. Either part may be empty.
func SplitAtRatio(text string, ratio float64) (string, string) {
	text = Normalize(text)
	if text == "" {
		return "", ""
	}
	if ratio <= 0 {
		return "", text
	}
	if ratio >= 1 {
		return text, ""
	}

	runes := []rune(text)
	cut := int(float64(len(runes))*ratio + 0.5)

	if strings.ContainsRune(text, ' ') {
		best := -1
		for i, r := range runes {
			if r != ' ' {
				continue
			}
			if best < 0 || absInt(i-cut) < absInt(best-cut) {
				best = i
			}
		}
		first := strings.TrimSpace(string(runes[:best]))
		second := strings.TrimSpace(string(runes[best:]))
		return first, second
	}

	if len(runes) < 2 {
		return text, ""
	}
	if cut < 1 {
		cut = 1
	}
	if cut > len(runes)-1 {
		cut = len(runes) - 1
	}
	return string(runes[:cut]), string(runes[cut:])
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
