package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bryan-cox/weeklyreport/internal/model"
)

// Section headers for text output (Slack-compatible emoji codes).
const (
	TextHeaderAccomplished = "\n:white_check_mark: Accomplished"
	TextHeaderInProgress   = "\n:construction: In Progress"
	TextHeaderBlockers     = "\n:octagonal_sign: Blockers"
)

// PrintText writes a plain-text report suitable for pasting into chat.
// Empty sections are left out.
func PrintText(out io.Writer, r *model.Report) {
	fmt.Fprintf(out, "Weekly Status Report (%s)\n", r.WeekString())
	fmt.Fprintf(out, "Author: %s\n", r.Author)
	fmt.Fprintln(out, "=======Autogenerated by weeklyreport=======")

	printSection(out, TextHeaderAccomplished, &r.Accomplished)
	printSection(out, TextHeaderInProgress, &r.InProgress)
	printSection(out, TextHeaderBlockers, &r.Blockers)
}

func printSection(out io.Writer, header string, s *model.Section) {
	if s.Len() == 0 {
		return
	}
	fmt.Fprintln(out, header)
	for _, task := range s.Tasks {
		if task.Topic != "" {
			fmt.Fprintf(out, "    • [%s] %s\n", task.Topic, task.Title)
		} else {
			fmt.Fprintf(out, "    • %s\n", task.Title)
		}
		if task.Description != "" {
			fmt.Fprintf(out, "        ◦ %s\n", task.Description)
		}
		if meta := textMeta(task); meta != "" {
			fmt.Fprintf(out, "        ◦ %s\n", meta)
		}
	}
}

func textMeta(task model.Task) string {
	var parts []string
	if task.CommitHash != "" {
		parts = append(parts, "Commit: "+task.CommitHash)
	}
	if task.PRNumber > 0 {
		parts = append(parts, fmt.Sprintf("PR #%d", task.PRNumber))
	}
	return strings.Join(parts, "; ")
}
