package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/bryan-cox/weeklyreport/internal/config"
	"github.com/bryan-cox/weeklyreport/internal/model"
)

// --- Test Setup ---

const testTasks = `# week notes
## ACCOMPLISHED
- [API] Shipped the export endpoint
- Fixed flaky test

## IN PROGRESS
- [Docs] Writing the migration guide

## BLOCKERS
- Waiting on staging credentials
`

func setupTests(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.txt"), []byte(testTasks), 0644); err != nil {
		t.Fatalf("Failed to write task file: %v", err)
	}
	// Keep slog quiet and restore it for other tests.
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return dir
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		for _, fs := range []*pflag.FlagSet{cmd.PersistentFlags(), cmd.Flags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				if sv, ok := f.Value.(pflag.SliceValue); ok {
					sv.Replace(nil)
				} else {
					f.Value.Set(f.DefValue)
				}
				f.Changed = false
			})
		}
	}
}

// executeCommandText captures plain text output from a command.
func executeCommandText(t *testing.T, args ...string) string {
	t.Helper()
	b := new(bytes.Buffer)

	// Set the command's output to our buffer
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)
	rootCmd.SetArgs(args)

	// Reset flags to default values before each run
	resetFlags(rootCmd, htmlCmd, slidesCmd, textCmd, exportCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command execution failed: %v", err)
	}

	return b.String()
}

// baseArgs points a run at dir with a fixed week and no prompting.
func baseArgs(dir string, args ...string) []string {
	return append(args,
		"--repo", dir,
		"--config", filepath.Join(dir, "missing-config.yaml"),
		"--author", "Jane Doe",
		"--week-start", "2024-01-08",
		"--week-end", "2024-01-14",
		"--no-interactive",
	)
}

// --- Test Functions ---

func TestTextCommand(t *testing.T) {
	dir := setupTests(t)

	output := executeCommandText(t, baseArgs(dir, "text", "-b", "Laptop died", "-p", "Reviewing PRs")...)

	expected := []string{
		"Weekly Status Report (Jan 08 - Jan 14, 2024)",
		"Author: Jane Doe",
		":white_check_mark: Accomplished",
		"    • [API] Shipped the export endpoint",
		"    • Fixed flaky test",
		":construction: In Progress",
		"    • [Docs] Writing the migration guide",
		"    • Reviewing PRs",
		":octagonal_sign: Blockers",
		"    • Waiting on staging credentials",
		"    • Laptop died",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("Report missing %q\nGot:\n%s", want, output)
		}
	}

	// Flag items come after the file's items.
	if strings.Index(output, "Waiting on staging credentials") > strings.Index(output, "Laptop died") {
		t.Error("blocker from flag should follow file blockers")
	}
}

func TestHTMLCommand(t *testing.T) {
	dir := setupTests(t)
	out := filepath.Join(dir, "out", "report.html")

	t.Run("saves the report and prints a summary", func(t *testing.T) {
		output := executeCommandText(t, baseArgs(dir, "html", "-o", out)...)

		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("report not written: %v", err)
		}
		html := string(data)
		if !strings.Contains(html, "Shipped the export endpoint") {
			t.Error("HTML missing accomplished task")
		}
		if !strings.Contains(html, "Jane Doe") {
			t.Error("HTML missing author")
		}

		for _, want := range []string{"Report saved", "report.html", "Jan 08 - Jan 14, 2024", "2 accomplished", "1 in progress", "1 blockers"} {
			if !strings.Contains(output, want) {
				t.Errorf("summary missing %q\nGot:\n%s", want, output)
			}
		}
	})

	t.Run("prints the HTML instead of saving with --print", func(t *testing.T) {
		printed := filepath.Join(dir, "printed", "report.html")
		output := executeCommandText(t, baseArgs(dir, "html", "-o", printed, "--print")...)

		if !strings.HasPrefix(output, "<!DOCTYPE html>") {
			t.Errorf("expected stdout to start with the document, got %q", output[:min(len(output), 40)])
		}
		if !strings.HasSuffix(output, "</html>\n") {
			t.Error("expected nothing on stdout after </html>")
		}
		if strings.Contains(output, "Report saved") {
			t.Error("summary should not be printed with --print")
		}
		if _, err := os.Stat(printed); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("--print should not write a file, stat err: %v", err)
		}
	})

	t.Run("links ticket topics from tracker_url", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "tracker.yaml")
		if err := os.WriteFile(cfgPath, []byte("tracker_url: https://issues.example.com\n"), 0644); err != nil {
			t.Fatal(err)
		}
		tasks := filepath.Join(dir, "tickets.txt")
		if err := os.WriteFile(tasks, []byte("## ACCOMPLISHED\n- [OCPBUGS-9] Fixed upgrade\n"), 0644); err != nil {
			t.Fatal(err)
		}

		args := append(baseArgs(dir, "html", "--print", "--tasks", tasks), "--config", cfgPath)
		output := executeCommandText(t, args...)
		if !strings.Contains(output, `href="https://issues.example.com/browse/OCPBUGS-9"`) {
			t.Error("expected ticket topic link in HTML")
		}
	})

	t.Run("root command defaults to html", func(t *testing.T) {
		rootOut := filepath.Join(dir, "root.html")
		executeCommandText(t, baseArgs(dir, "-o", rootOut)...)
		if _, err := os.Stat(rootOut); err != nil {
			t.Errorf("expected root command to write HTML: %v", err)
		}
	})
}

func TestSlidesCommand(t *testing.T) {
	dir := setupTests(t)
	slidesDir := filepath.Join(dir, "slides")

	output := executeCommandText(t, baseArgs(dir, "slides", "-o", slidesDir)...)

	entries, err := os.ReadDir(slidesDir)
	if err != nil {
		t.Fatalf("slides dir not created: %v", err)
	}
	// Summary plus four tasks.
	if len(entries) != 5 {
		t.Errorf("expected 5 slides, got %d", len(entries))
	}
	if _, err := os.Stat(filepath.Join(slidesDir, "00_summary.svg")); err != nil {
		t.Error("missing summary slide")
	}
	if !strings.Contains(output, "Slides saved") {
		t.Errorf("summary missing\nGot:\n%s", output)
	}
}

func TestExportCommand(t *testing.T) {
	dir := setupTests(t)

	t.Run("json", func(t *testing.T) {
		output := executeCommandText(t, baseArgs(dir, "export", "--format", "json")...)

		var doc model.Document
		if err := json.Unmarshal([]byte(output), &doc); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, output)
		}
		if doc.Author != "Jane Doe" {
			t.Errorf("unexpected author %q", doc.Author)
		}
		if len(doc.Accomplished.Tasks) != 2 || doc.Accomplished.Tasks[0].Topic != "API" {
			t.Errorf("unexpected accomplished tasks: %+v", doc.Accomplished.Tasks)
		}
		if doc.ID == "" {
			t.Error("expected a report id")
		}
	})

	t.Run("yaml to file", func(t *testing.T) {
		path := filepath.Join(dir, "report.yaml")
		executeCommandText(t, baseArgs(dir, "export", "-o", path)...)

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("export not written: %v", err)
		}
		var doc model.Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			t.Fatalf("export is not YAML: %v", err)
		}
		if len(doc.Blockers.Tasks) != 1 || doc.Blockers.Tasks[0].Title != "Waiting on staging credentials" {
			t.Errorf("unexpected blockers: %+v", doc.Blockers.Tasks)
		}
	})
}

func TestInitCommand(t *testing.T) {
	setupTests(t)
	dir := t.TempDir()
	if _, err := config.FindConfigDir(dir); !errors.Is(err, config.ErrConfigNotFound) {
		t.Skipf("a %s directory exists above %s", config.ConfigDirName, dir)
	}

	output := executeCommandText(t, "init", "--repo", dir)

	if !strings.Contains(output, "Created task file") || !strings.Contains(output, "Created config") {
		t.Errorf("unexpected init output:\n%s", output)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks.txt")); err != nil {
		t.Errorf("tasks.txt not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.ConfigDirName, config.ConfigFileName)); err != nil {
		t.Errorf("config not created: %v", err)
	}

	output = executeCommandText(t, "init", "--repo", dir)
	if !strings.Contains(output, "Task file already exists") || !strings.Contains(output, "Config already exists") {
		t.Errorf("second init should leave files alone:\n%s", output)
	}
}

func TestParseWeek(t *testing.T) {
	setupTests(t)

	start, end := parseWeek("2024-01-01", "2024-01-07")
	if !start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2024, 1, 7, 23, 59, 59, 0, time.Local)) {
		t.Errorf("week end should be inclusive, got %v", end)
	}

	for _, tc := range [][2]string{{"", ""}, {"2024-01-01", ""}, {"not-a-date", "2024-01-07"}, {"2024-01-01", "01/07/2024"}} {
		start, end := parseWeek(tc[0], tc[1])
		if !start.IsZero() || !end.IsZero() {
			t.Errorf("parseWeek(%q, %q) should fall back to the default week", tc[0], tc[1])
		}
	}
}

func TestMarshalReportUnknownFormat(t *testing.T) {
	r := model.NewReport("a", time.Now(), time.Now(), time.Now())
	if _, err := marshalReport("toml", r); err == nil {
		t.Error("expected error for unknown format")
	}
}
