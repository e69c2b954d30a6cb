package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regex for the timing line
var timeRegex = regexp.MustCompile(`((?:\d{1,2}:)?\d{2}:\d{2}[,\.]\d{1,3})\s*-->\s*((?:\d{1,2}:)?\d{2}:\d{2}[,\.]\d{1,3})`)

// ParseSRT parses SRT content from a reader. The numeric index line is
// optional; blocks without a timing line are skipped. A malformed timestamp
// aborts with an error naming the line.
func ParseSRT(r io.Reader) (List, error) {
	var subtitles List
	scanner := bufio.NewScanner(r)

	// SRT format:
	// 1
	// 00:00:00,000 --> 00:00:02,500
	// Text here
	//
	// 2
	// ...

	var current *Subtitle
	var textLines []string
	pendingIndex := 0
	lineNo := 0

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			subtitles = append(subtitles, *current)
		}
		current = nil
		textLines = nil
		pendingIndex = 0
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\uFEFF"))

		if line == "" {
			flush()
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
			continue
		}

		matches := timeRegex.FindStringSubmatch(line)
		if matches == nil {
			if index, err := strconv.Atoi(line); err == nil {
				pendingIndex = index
			}
			continue
		}
		index := pendingIndex
		if index == 0 {
			index = len(subtitles) + 1
		}
		sub, err := timedSubtitle(index, matches, lineNo)
		if err != nil {
			return nil, err
		}
		current = sub
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return subtitles, nil
}

func timedSubtitle(index int, matches []string, lineNo int) (*Subtitle, error) {
	start, err := ParseTimestamp(matches[1])
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo, err)
	}
	end, err := ParseTimestamp(matches[2])
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo, err)
	}
	return &Subtitle{Index: index, StartTime: start, EndTime: end}, nil
}

// ParseSRTFile parses an SRT file from the given path.
func ParseSRTFile(path string) (List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseSRT(file)
}

// ParseSRTString parses SRT content from a string.
func ParseSRTString(content string) (List, error) {
	return ParseSRT(strings.NewReader(content))
}

// FormatSRT formats a list of subtitles to SRT format.
func FormatSRT(subs List) string {
	var builder strings.Builder
	for i, sub := range subs {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(strconv.Itoa(sub.Index))
		builder.WriteString("\n")
		builder.WriteString(FormatTimestamp(sub.StartTime))
		builder.WriteString(" --> ")
		builder.WriteString(FormatTimestamp(sub.EndTime))
		builder.WriteString("\n")
		builder.WriteString(sub.Text)
		builder.WriteString("\n")
	}
	return builder.String()
}

// WriteSRTFile writes subtitles to an SRT file.
func WriteSRTFile(path string, subs List) error {
	return os.WriteFile(path, []byte(FormatSRT(subs)), 0644)
}
