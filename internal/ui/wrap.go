package ui

import (
	"strings"
	"unicode/utf8"
)

// wrapText wraps text to fit within a given width, keeping the text's own
// line breaks (the recommendations are markdown-ish lists).
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = wrapLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) string {
	var result strings.Builder
	var lineLength int

	for _, word := range strings.Fields(line) {
		wordLen := utf8.RuneCountInString(word)

		// Break words that can never fit on one line
		if wordLen > width {
			if lineLength > 0 {
				result.WriteString("\n")
				lineLength = 0
			}
			runes := []rune(word)
			for len(runes) > width {
				// No room for a hyphen
				if width < 2 {
					result.WriteString(string(runes[:1]) + "\n")
					runes = runes[1:]
					continue
				}
				result.WriteString(string(runes[:width-1]) + "-\n")
				runes = runes[width-1:]
			}
			word = string(runes)
			wordLen = len(runes)
		}

		switch {
		case lineLength == 0:
		case lineLength+1+wordLen > width:
			result.WriteString("\n")
			lineLength = 0
		default:
			result.WriteString(" ")
			lineLength++
		}

		result.WriteString(word)
		lineLength += wordLen
	}

	return result.String()
}
