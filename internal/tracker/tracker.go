// Package tracker links ticket references in task topics to an issue tracker.
package tracker

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// ticketRegex matches keys such as OCPBUGS-123.
var ticketRegex = regexp.MustCompile(`\b([A-Z][A-Z0-9]*-\d+)\b`)

// Linker builds browse URLs for ticket keys. A nil Linker or one with an
// empty BaseURL links nothing.
type Linker struct {
	BaseURL string
}

// NewLinker returns a Linker for the tracker at baseURL, or nil when
// baseURL is empty.
func NewLinker(baseURL string) *Linker {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	return &Linker{BaseURL: baseURL}
}

// ExtractTicketID extracts a ticket key from a browse URL or plain text.
func (l *Linker) ExtractTicketID(input string) string {
	if l != nil && l.BaseURL != "" {
		prefix := l.BaseURL + "/browse/"
		if i := strings.Index(input, prefix); i >= 0 {
			if m := ticketRegex.FindStringSubmatch(input[i+len(prefix):]); len(m) > 1 {
				return m[1]
			}
		}
	}

	if m := ticketRegex.FindStringSubmatch(input); len(m) > 1 {
		return m[1]
	}
	return ""
}

// URL returns the browse URL for a ticket key.
func (l *Linker) URL(ticketID string) string {
	return fmt.Sprintf("%s/browse/%s", l.BaseURL, ticketID)
}

// TopicHTML formats a topic as escaped HTML, linking it when it carries a
// ticket key and a tracker is configured.
func (l *Linker) TopicHTML(topic string) string {
	if l == nil || l.BaseURL == "" {
		return html.EscapeString(topic)
	}
	ticketID := l.ExtractTicketID(topic)
	if ticketID == "" {
		return html.EscapeString(topic)
	}
	return fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`,
		html.EscapeString(l.URL(ticketID)), html.EscapeString(topic))
}
