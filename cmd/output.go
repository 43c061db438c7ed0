package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/bryan-cox/weeklyreport/internal/model"
	"github.com/bryan-cox/weeklyreport/internal/styles"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func validateFormat(format string) error {
	switch format {
	case formatYAML, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown export format %q (want %s or %s)", format, formatYAML, formatJSON)
	}
}

// marshalReport serializes the report's document form.
func marshalReport(format string, r *model.Report) ([]byte, error) {
	doc := r.Document()
	switch format {
	case formatYAML:
		return yaml.Marshal(doc)
	case formatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, validateFormat(format)
	}
}

// --- Summary Printing Functions ---

func printSummary(out io.Writer, r *model.Report, path string) {
	size := "unknown size"
	if info, err := os.Stat(path); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}

	fmt.Fprintln(out, styles.TitleStyle.Render("Report saved"))
	printField(out, "Path", fmt.Sprintf("%s (%s)", path, size))
	printReportFields(out, r)
}

func printSlidesSummary(out io.Writer, r *model.Report, dir string, paths []string) {
	var total int64
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			total += info.Size()
		}
	}

	fmt.Fprintln(out, styles.TitleStyle.Render("Slides saved"))
	printField(out, "Directory", dir)
	printField(out, "Slides", fmt.Sprintf("%d (%s)", len(paths), humanize.Bytes(uint64(total))))
	printReportFields(out, r)
}

func printReportFields(out io.Writer, r *model.Report) {
	printField(out, "Week", r.WeekString())
	printField(out, "Author", r.Author)
	counts := []string{
		styles.SuccessStyle.Render(fmt.Sprintf("%d %s", r.Accomplished.Len(), strings.ToLower(r.Accomplished.Name))),
		styles.WarningStyle.Render(fmt.Sprintf("%d %s", r.InProgress.Len(), strings.ToLower(r.InProgress.Name))),
		styles.ErrorStyle.Render(fmt.Sprintf("%d %s", r.Blockers.Len(), strings.ToLower(r.Blockers.Name))),
	}
	printField(out, "Tasks", strings.Join(counts, ", "))
}

func printField(out io.Writer, label, value string) {
	fmt.Fprintf(out, "  %s %s\n", styles.LabelStyle.Render(label+":"), value)
}
