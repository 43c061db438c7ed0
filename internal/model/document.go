package model

import "time"

// TaskDocument is the serialized form of a Task.
type TaskDocument struct {
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Status      TaskStatus `yaml:"status" json:"status"`
	Topic       string     `yaml:"topic,omitempty" json:"topic,omitempty"`
	CommitHash  string     `yaml:"commit_hash,omitempty" json:"commit_hash,omitempty"`
	PRNumber    int        `yaml:"pr_number,omitempty" json:"pr_number,omitempty"`
	Date        string     `yaml:"date,omitempty" json:"date,omitempty"`
}

// SectionDocument is the serialized form of a Section.
type SectionDocument struct {
	Name  string         `yaml:"name" json:"name"`
	Tasks []TaskDocument `yaml:"tasks" json:"tasks"`
}

// Document is the serialized form of a Report.
type Document struct {
	ID           string          `yaml:"id" json:"id"`
	Author       string          `yaml:"author" json:"author"`
	WeekStart    string          `yaml:"week_start" json:"week_start"`
	WeekEnd      string          `yaml:"week_end" json:"week_end"`
	WeekString   string          `yaml:"week_string" json:"week_string"`
	Accomplished SectionDocument `yaml:"accomplished" json:"accomplished"`
	InProgress   SectionDocument `yaml:"in_progress" json:"in_progress"`
	Blockers     SectionDocument `yaml:"blockers" json:"blockers"`
	GeneratedAt  string          `yaml:"generated_at" json:"generated_at"`
}

// Document converts the task to its serialized form.
func (t Task) Document() TaskDocument {
	doc := TaskDocument{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Topic:       t.Topic,
		CommitHash:  t.CommitHash,
		PRNumber:    t.PRNumber,
	}
	if !t.Date.IsZero() {
		doc.Date = t.Date.Format(time.RFC3339)
	}
	return doc
}

// Document converts the section to its serialized form.
func (s *Section) Document() SectionDocument {
	tasks := make([]TaskDocument, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		tasks = append(tasks, t.Document())
	}
	return SectionDocument{Name: s.Name, Tasks: tasks}
}

// Document converts the report to its serialized form.
// WeekString is computed here so it always matches the boundaries.
func (r *Report) Document() Document {
	return Document{
		ID:           r.ID,
		Author:       r.Author,
		WeekStart:    r.WeekStart.Format(time.RFC3339),
		WeekEnd:      r.WeekEnd.Format(time.RFC3339),
		WeekString:   r.WeekString(),
		Accomplished: r.Accomplished.Document(),
		InProgress:   r.InProgress.Document(),
		Blockers:     r.Blockers.Document(),
		GeneratedAt:  r.GeneratedAt.Format(time.RFC3339),
	}
}
