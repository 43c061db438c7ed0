// Package taskfile reads hand-written weekly task files.
//
// A task file groups tasks under three section headers:
//
//	## ACCOMPLISHED
//	- [Topic] Task description
//	- Task without topic
//
//	## IN PROGRESS
//	- [Topic] Another task
//
//	## BLOCKERS
//	- Something blocking progress
//	# a comment line, ignored
package taskfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/bryan-cox/weeklyreport/internal/model"
)

// DefaultPath is the task file looked up when no path is configured.
const DefaultPath = "tasks.txt"

// Section header markers. A line matches when it starts with the marker.
const (
	HeaderAccomplished = "## ACCOMPLISHED"
	HeaderInProgress   = "## IN PROGRESS"
	HeaderBlockers     = "## BLOCKERS"
)

// Keys of the mapping returned by Categorized.ByKey.
const (
	KeyAccomplished = "accomplished"
	KeyInProgress   = "in_progress"
	KeyBlockers     = "blockers"
)

// Template is written by `weeklyreport init` as a starting point.
const Template = `# Weekly tasks. Lines starting with "-" are tasks, "[Topic]" is optional.
## ACCOMPLISHED
- [Topic] Task description
- Task without topic

## IN PROGRESS
- [Topic] Another task

## BLOCKERS
- Something blocking progress
`

var topicRegex = regexp.MustCompile(`^\[([^\]]+)\]\s*(.*)$`)

// Categorized holds the tasks of a file, per section, in file order.
type Categorized struct {
	Accomplished []model.Task
	InProgress   []model.Task
	Blockers     []model.Task
}

// ByKey returns the three categories keyed by accomplished, in_progress and blockers.
func (c Categorized) ByKey() map[string][]model.Task {
	return map[string][]model.Task{
		KeyAccomplished: c.Accomplished,
		KeyInProgress:   c.InProgress,
		KeyBlockers:     c.Blockers,
	}
}

// Len returns the total number of tasks.
func (c Categorized) Len() int {
	return len(c.Accomplished) + len(c.InProgress) + len(c.Blockers)
}

// Exists reports whether a task file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Read parses the task file at path.
// A missing file is not an error: all three categories come back empty.
func Read(path string) (Categorized, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Categorized{}, nil
		}
		return Categorized{}, fmt.Errorf("could not read task file '%s': %w", path, err)
	}
	return Parse(string(data)), nil
}

// Parse parses task file content.
func Parse(content string) Categorized {
	var result Categorized
	var current *[]model.Task
	var status model.TaskStatus

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Headers take priority over the comment rule.
		switch {
		case strings.HasPrefix(line, HeaderAccomplished):
			current, status = &result.Accomplished, model.StatusCompleted
			continue
		case strings.HasPrefix(line, HeaderInProgress):
			current, status = &result.InProgress, model.StatusInProgress
			continue
		case strings.HasPrefix(line, HeaderBlockers):
			current, status = &result.Blockers, model.StatusBlocked
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.HasPrefix(line, "-") || current == nil {
			continue
		}

		text := strings.TrimSpace(line[1:])
		if text == "" {
			continue
		}
		topic, title := ParseTaskText(text)
		*current = append(*current, model.Task{
			Title:  title,
			Topic:  topic,
			Status: status,
		})
	}

	return result
}

// ParseTaskText splits "[Topic] rest of text" into topic and title.
// Text without a leading bracket pair is returned as the title with no topic.
func ParseTaskText(text string) (topic, title string) {
	text = strings.TrimSpace(text)
	matches := topicRegex.FindStringSubmatch(text)
	if matches == nil {
		return "", text
	}
	topic = strings.TrimSpace(matches[1])
	title = strings.TrimSpace(matches[2])
	if topic == "" || title == "" {
		return "", text
	}
	return topic, title
}

// WriteTemplate writes Template to path unless a file already exists there.
func WriteTemplate(path string) error {
	if Exists(path) {
		return fmt.Errorf("task file already exists: %s", path)
	}
	if err := os.WriteFile(path, []byte(Template), 0644); err != nil {
		return fmt.Errorf("writing task file: %w", err)
	}
	return nil
}
