// Package model defines the core data structures for weekly status reports.
package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the state of a single work item.
type TaskStatus string

// Task status constants.
const (
	StatusCompleted  TaskStatus = "completed"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
)

// Section names, in report order.
const (
	SectionAccomplished = "Accomplished"
	SectionInProgress   = "In Progress"
	SectionBlockers     = "Blockers"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusBlocked:
		return true
	}
	return false
}

// Label returns the upper-case display label used on slides.
func (s TaskStatus) Label() string {
	switch s {
	case StatusCompleted:
		return "COMPLETED"
	case StatusInProgress:
		return "IN PROGRESS"
	case StatusBlocked:
		return "BLOCKED"
	}
	panic("model: unknown task status " + string(s))
}

// Task represents a single work item.
// CommitHash and PRNumber are only set for tasks that came from git history.
type Task struct {
	Title       string
	Description string
	Status      TaskStatus
	Topic       string
	CommitHash  string
	PRNumber    int
	Date        time.Time
}

// NewTask returns a task with the given title and status and no provenance.
func NewTask(title string, status TaskStatus) Task {
	return Task{Title: title, Status: status}
}

// HasProvenance returns true if the task carries git history fields.
func (t Task) HasProvenance() bool {
	return t.CommitHash != "" || t.PRNumber > 0
}

// Section is a named, insertion-ordered list of tasks.
type Section struct {
	Name  string
	Tasks []Task
}

// Add appends a task to the end of the section.
func (s *Section) Add(task Task) {
	if task.Status == "" {
		task.Status = StatusCompleted
	}
	s.Tasks = append(s.Tasks, task)
}

// Len returns the number of tasks in the section.
func (s *Section) Len() int {
	return len(s.Tasks)
}

// Report is the weekly status report for one author.
type Report struct {
	ID           string
	Author       string
	WeekStart    time.Time
	WeekEnd      time.Time
	Accomplished Section
	InProgress   Section
	Blockers     Section
	GeneratedAt  time.Time
}

// NewReport creates an empty report. now is recorded as the generation time.
func NewReport(author string, weekStart, weekEnd, now time.Time) *Report {
	return &Report{
		ID:           uuid.NewString(),
		Author:       author,
		WeekStart:    weekStart,
		WeekEnd:      weekEnd,
		Accomplished: Section{Name: SectionAccomplished},
		InProgress:   Section{Name: SectionInProgress},
		Blockers:     Section{Name: SectionBlockers},
		GeneratedAt:  now,
	}
}

// WeekString returns a label such as "Jan 01 - Jan 07, 2024".
func (r *Report) WeekString() string {
	return r.WeekStart.Format("Jan 02") + " - " + r.WeekEnd.Format("Jan 02, 2006")
}

// Sections returns the three sections in display order.
func (r *Report) Sections() []*Section {
	return []*Section{&r.Accomplished, &r.InProgress, &r.Blockers}
}

// SectionFor returns the section that holds tasks of the given status.
func (r *Report) SectionFor(status TaskStatus) *Section {
	switch status {
	case StatusCompleted:
		return &r.Accomplished
	case StatusInProgress:
		return &r.InProgress
	case StatusBlocked:
		return &r.Blockers
	}
	panic("model: unknown task status " + string(status))
}

// Total returns the number of tasks across all sections.
func (r *Report) Total() int {
	return r.Accomplished.Len() + r.InProgress.Len() + r.Blockers.Len()
}

// AllTasks returns every task in section order.
func (r *Report) AllTasks() []Task {
	tasks := make([]Task, 0, r.Total())
	for _, s := range r.Sections() {
		tasks = append(tasks, s.Tasks...)
	}
	return tasks
}
