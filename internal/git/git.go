// Package git reads commit history and identity from a local repository.
package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bryan-cox/weeklyreport/internal/model"
)

// ErrCommandFailed is returned when git exits with a non-zero status.
var ErrCommandFailed = errors.New("git command failed")

// ErrNoIdentity is returned when no user.name is configured.
var ErrNoIdentity = errors.New("git user.name is not configured")

// ShortHashLength is the number of hash characters kept on history tasks.
const ShortHashLength = 7

// fieldSep separates fields in the log format; commit subjects may contain "|".
const fieldSep = "\x1f"

// logFormat emits hash, subject and strict ISO author date per commit.
const logFormat = "--pretty=format:%H%x1f%s%x1f%aI"

// prRegex matches pull request references such as "#123" or "(#123)".
var prRegex = regexp.MustCompile(`#(\d+)\b`)

// Commit is a single entry from git log.
type Commit struct {
	ID        string
	Message   string
	Timestamp time.Time
}

// NoMessageTitle prefixes the short hash of commits with an empty subject.
const NoMessageTitle = "(no message)"

// Task converts the commit into a completed history task.
// A commit with an empty subject is titled by its short hash.
func (c Commit) Task() model.Task {
	title := strings.TrimSpace(c.Message)
	if title == "" {
		title = NoMessageTitle + " " + ShortHash(c.ID)
	}
	return model.Task{
		Title:      title,
		Status:     model.StatusCompleted,
		CommitHash: ShortHash(c.ID),
		PRNumber:   ExtractPRNumber(c.Message),
		Date:       c.Timestamp,
	}
}

// Repo runs git commands inside a working tree.
type Repo struct {
	dir string
}

// NewRepo creates a Repo rooted at dir. An empty dir means the current directory.
func NewRepo(dir string) *Repo {
	return &Repo{dir: dir}
}

// Dir returns the repository directory.
func (r *Repo) Dir() string {
	return r.dir
}

func (r *Repo) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if r.dir != "" {
		cmd.Dir = r.dir
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: git %s: %s", ErrCommandFailed, args[0], msg)
	}
	return strings.TrimSpace(string(out)), nil
}

// ResolveIdentity returns the configured git user.name.
func (r *Repo) ResolveIdentity() (string, error) {
	name, err := r.run("config", "user.name")
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", ErrNoIdentity
	}
	return name, nil
}

// QueryCommits returns commits authored between since and until, oldest first.
// When author is non-empty only that author's commits are returned.
func (r *Repo) QueryCommits(since, until time.Time, author string) ([]Commit, error) {
	args := []string{
		"log",
		"--reverse",
		"--since=" + since.Format(time.RFC3339),
		"--until=" + until.Format(time.RFC3339),
		logFormat,
	}
	if author != "" {
		args = append(args, "--author="+author)
	}

	out, err := r.run(args...)
	if err != nil {
		return nil, err
	}
	return parseLog(out)
}

// parseLog parses output produced with logFormat.
func parseLog(out string) ([]Commit, error) {
	commits := []Commit{}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, fieldSep, 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("unexpected git log line %q", line)
		}
		commit := Commit{ID: parts[0], Message: parts[1]}
		if len(parts) == 3 {
			ts, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[2]))
			if err != nil {
				return nil, fmt.Errorf("parsing commit date for %s: %w", ShortHash(parts[0]), err)
			}
			commit.Timestamp = ts
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// ShortHash returns the abbreviated form of a commit hash.
func ShortHash(id string) string {
	if len(id) <= ShortHashLength {
		return id
	}
	return id[:ShortHashLength]
}

// ExtractPRNumber returns the first pull request number referenced in a
// commit message, or 0 when there is none.
func ExtractPRNumber(message string) int {
	matches := prRegex.FindStringSubmatch(message)
	if len(matches) < 2 {
		return 0
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
