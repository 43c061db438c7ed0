package render

import (
	"html"
	"strings"
)

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeHTML escapes text for use in HTML element content and attributes.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// EscapeXML escapes text for use in SVG/XML content and attributes.
func EscapeXML(s string) string {
	return xmlReplacer.Replace(s)
}

// WrapText greedily wraps words into lines of at most charsPerLine
// characters and keeps the first maxLines lines. A word longer than the
// width is placed on its own line unbroken.
func WrapText(text string, charsPerLine, maxLines int) []string {
	var lines []string
	var current []string
	currentLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := len([]rune(word))
		if len(current) == 0 {
			current = []string{word}
			currentLen = wordLen
			continue
		}
		if currentLen+1+wordLen <= charsPerLine {
			current = append(current, word)
			currentLen += 1 + wordLen
			continue
		}
		lines = append(lines, strings.Join(current, " "))
		current = []string{word}
		currentLen = wordLen
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
