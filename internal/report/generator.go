// Package report assembles weekly status reports and prints them as text.
package report

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bryan-cox/weeklyreport/internal/git"
	"github.com/bryan-cox/weeklyreport/internal/model"
	"github.com/bryan-cox/weeklyreport/internal/taskfile"
)

// UnknownAuthor is used when no author is given and git has no identity.
const UnknownAuthor = "Unknown Author"

// ErrInvalidWindow is returned when the week start is after the week end.
var ErrInvalidWindow = errors.New("week start is after week end")

// ErrNoHistory is returned when the history path is taken without a source.
var ErrNoHistory = errors.New("no history source configured")

// HistorySource provides commit history and the local identity.
type HistorySource interface {
	ResolveIdentity() (string, error)
	QueryCommits(since, until time.Time, author string) ([]git.Commit, error)
}

// Options controls a single generation run. Zero values select defaults.
type Options struct {
	// WeekStart and WeekEnd bound the report. If either is zero the
	// current week is used for both.
	WeekStart time.Time
	WeekEnd   time.Time
	// Author overrides the git identity and filters history by author.
	Author string
	// InProgress and Blockers are appended after any file or history tasks.
	InProgress []string
	Blockers   []string
	// NoTaskFile forces the git history path even when a task file exists.
	NoTaskFile bool
}

// Generator builds reports from a task file or git history.
type Generator struct {
	History  HistorySource
	TaskFile string
	Now      func() time.Time
}

// NewGenerator returns a Generator reading taskFile and falling back to history.
func NewGenerator(history HistorySource, taskFile string) *Generator {
	return &Generator{
		History:  history,
		TaskFile: taskFile,
		Now:      time.Now,
	}
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

// WeekRange returns Monday 00:00:00 through Sunday 23:59:59 of the week
// containing ref, in ref's location. Bounds are wall-clock times, so in a
// week with a daylight saving change the elapsed span is an hour shorter
// or longer than 6d23h59m59s.
func WeekRange(ref time.Time) (time.Time, time.Time) {
	// Monday is day 0.
	offset := (int(ref.Weekday()) + 6) % 7
	y, m, d := ref.Date()
	start := time.Date(y, m, d-offset, 0, 0, 0, 0, ref.Location())
	end := time.Date(y, m, d-offset+6, 23, 59, 59, 0, ref.Location())
	return start, end
}

// Generate builds a report. Errors from the task file or history source
// are returned unchanged in meaning.
func (g *Generator) Generate(opts Options) (*model.Report, error) {
	now := g.now()

	start, end := opts.WeekStart, opts.WeekEnd
	if start.IsZero() || end.IsZero() {
		start, end = WeekRange(now)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidWindow,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	author := opts.Author
	if author == "" {
		author = g.resolveAuthor()
	}

	r := model.NewReport(author, start, end, now)
	log := slog.With("report_id", r.ID)

	if !opts.NoTaskFile && g.TaskFile != "" && taskfile.Exists(g.TaskFile) {
		log.Debug("populating report from task file", "path", g.TaskFile)
		tasks, err := taskfile.Read(g.TaskFile)
		if err != nil {
			return nil, err
		}
		appendAll(&r.Accomplished, tasks.Accomplished)
		appendAll(&r.InProgress, tasks.InProgress)
		appendAll(&r.Blockers, tasks.Blockers)
	} else {
		log.Debug("populating report from git history", "since", start, "until", end, "author", opts.Author)
		if g.History == nil {
			return nil, ErrNoHistory
		}
		// Only an explicitly supplied author filters history.
		commits, err := g.History.QueryCommits(start, end, opts.Author)
		if err != nil {
			return nil, fmt.Errorf("querying commits: %w", err)
		}
		for _, c := range commits {
			r.Accomplished.Add(c.Task())
		}
	}

	for _, text := range opts.InProgress {
		r.InProgress.Add(model.NewTask(text, model.StatusInProgress))
	}
	for _, text := range opts.Blockers {
		r.Blockers.Add(model.NewTask(text, model.StatusBlocked))
	}

	log.Debug("report generated",
		"accomplished", r.Accomplished.Len(),
		"in_progress", r.InProgress.Len(),
		"blockers", r.Blockers.Len())
	return r, nil
}

func (g *Generator) resolveAuthor() string {
	if g.History == nil {
		return UnknownAuthor
	}
	name, err := g.History.ResolveIdentity()
	if err != nil || name == "" {
		slog.Debug("could not resolve author from git", "error", err)
		return UnknownAuthor
	}
	return name
}

func appendAll(s *model.Section, tasks []model.Task) {
	for _, t := range tasks {
		s.Add(t)
	}
}
