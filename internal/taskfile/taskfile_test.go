package taskfile

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/bryan-cox/weeklyreport/internal/model"
)

func writeTaskFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write task file: %v", err)
	}
	return path
}

func TestReadTopicTask(t *testing.T) {
	path := writeTaskFile(t, "## ACCOMPLISHED\n- [API] Fixed bug\n")

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got.Accomplished) != 1 {
		t.Fatalf("expected 1 accomplished task, got %d", len(got.Accomplished))
	}
	task := got.Accomplished[0]
	if task.Topic != "API" || task.Title != "Fixed bug" || task.Status != model.StatusCompleted {
		t.Errorf("unexpected task: %+v", task)
	}
	if len(got.InProgress) != 0 || len(got.Blockers) != 0 {
		t.Errorf("expected other sections to be empty, got %+v", got)
	}
}

func TestReadBlockerWithoutTopic(t *testing.T) {
	path := writeTaskFile(t, "## BLOCKERS\n- Waiting on review\n")

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got.Blockers) != 1 {
		t.Fatalf("expected 1 blocker, got %d", len(got.Blockers))
	}
	task := got.Blockers[0]
	if task.Topic != "" || task.Title != "Waiting on review" || task.Status != model.StatusBlocked {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestReadTaskBeforeHeaderIgnored(t *testing.T) {
	path := writeTaskFile(t, "- task\n")

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("expected no tasks, got %+v", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")
	if Exists(path) {
		t.Fatal("expected file to not exist")
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	byKey := got.ByKey()
	if len(byKey) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(byKey))
	}
	for _, key := range []string{KeyAccomplished, KeyInProgress, KeyBlockers} {
		tasks, ok := byKey[key]
		if !ok {
			t.Errorf("missing key %q", key)
		}
		if len(tasks) != 0 {
			t.Errorf("expected %q to be empty, got %d tasks", key, len(tasks))
		}
	}
}

func TestReadUnreadableFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission checks are not enforced")
	}
	path := writeTaskFile(t, "## ACCOMPLISHED\n- a\n")
	if err := os.Chmod(path, 0000); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}

	if _, err := Read(path); err == nil {
		t.Error("expected an error for an unreadable file")
	}
}

func TestParseFullFile(t *testing.T) {
	content := `# my week
## ACCOMPLISHED
- [API] Shipped the endpoint
# a comment between tasks
- Task without topic

## IN PROGRESS
- [Docs] Another task
## Unknown header
- still in progress

## BLOCKERS
- Something blocking progress
   -    [CI]   Flaky runners
-
not a task line
`
	got := Parse(content)

	want := Categorized{
		Accomplished: []model.Task{
			{Title: "Shipped the endpoint", Topic: "API", Status: model.StatusCompleted},
			{Title: "Task without topic", Status: model.StatusCompleted},
		},
		InProgress: []model.Task{
			{Title: "Another task", Topic: "Docs", Status: model.StatusInProgress},
			{Title: "still in progress", Status: model.StatusInProgress},
		},
		Blockers: []model.Task{
			{Title: "Something blocking progress", Status: model.StatusBlocked},
			{Title: "Flaky runners", Topic: "CI", Status: model.StatusBlocked},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestParseHeaderPrefixMatch(t *testing.T) {
	got := Parse("## ACCOMPLISHED this week\n- done\n## BLOCKERS:\n- stuck\n")
	if len(got.Accomplished) != 1 || len(got.Blockers) != 1 {
		t.Errorf("expected headers to match by prefix, got %+v", got)
	}
}

func TestParseCRLF(t *testing.T) {
	got := Parse("## IN PROGRESS\r\n- [UI] Polish\r\n")
	if len(got.InProgress) != 1 || got.InProgress[0].Title != "Polish" || got.InProgress[0].Topic != "UI" {
		t.Errorf("unexpected result for CRLF input: %+v", got)
	}
}

func TestParseTaskText(t *testing.T) {
	tests := []struct {
		text      string
		wantTopic string
		wantTitle string
	}{
		{"[API] Fixed bug", "API", "Fixed bug"},
		{"[API]Fixed bug", "API", "Fixed bug"},
		{"[ Backend Team ]   Deploy", "Backend Team", "Deploy"},
		{"Fixed bug", "", "Fixed bug"},
		{"Fixed [API] bug", "", "Fixed [API] bug"},
		{"[API Fixed bug", "", "[API Fixed bug"},
		{"[] Fixed bug", "", "[] Fixed bug"},
		{"[API]", "", "[API]"},
		{"[A] [B] nested", "A", "[B] nested"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			topic, title := ParseTaskText(tt.text)
			if topic != tt.wantTopic || title != tt.wantTitle {
				t.Errorf("ParseTaskText(%q) = (%q, %q), want (%q, %q)",
					tt.text, topic, title, tt.wantTopic, tt.wantTitle)
			}
		})
	}
}

func TestReadIdempotent(t *testing.T) {
	path := writeTaskFile(t, Template)

	first, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	second, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(first.Accomplished) != 2 || len(first.InProgress) != 1 || len(first.Blockers) != 1 {
		t.Errorf("unexpected template parse: %+v", first)
	}
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := WriteTemplate(path); err != nil {
		t.Fatalf("WriteTemplate failed: %v", err)
	}
	if !Exists(path) {
		t.Fatal("expected template to be written")
	}
	if err := WriteTemplate(path); err == nil {
		t.Error("expected error when task file already exists")
	}
}
