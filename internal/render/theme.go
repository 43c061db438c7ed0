// Package render turns a finished report into HTML and SVG documents.
//
// Renderers are pure functions of the report: they hold no buffers between
// calls, and all colors and layout knobs live in explicit values.
package render

import (
	"fmt"

	"github.com/bryan-cox/weeklyreport/internal/model"
)

// StatusStyle is the color set used for one task status.
type StatusStyle struct {
	Primary   string
	Secondary string
	Glow      string
}

// Theme is the slide color palette.
type Theme struct {
	Background string
	Grid       string
	Text       string
	TextDim    string
	Accent     string
	Trace      string
	Font       string

	Completed  StatusStyle
	InProgress StatusStyle
	Blocked    StatusStyle
}

// DefaultTheme returns the dark chip-floorplan palette.
func DefaultTheme() Theme {
	return Theme{
		Background: "#0a0e14",
		Grid:       "#1a2332",
		Text:       "#e6e6e6",
		TextDim:    "#8892a2",
		Accent:     "#bd93f9",
		Trace:      "#2d3a4d",
		Font:       "JetBrains Mono, Consolas, monospace",
		Completed: StatusStyle{
			Primary:   "#00ff9f",
			Secondary: "#00cc7f",
			Glow:      "#00ff9f33",
		},
		InProgress: StatusStyle{
			Primary:   "#00d4ff",
			Secondary: "#00a8cc",
			Glow:      "#00d4ff33",
		},
		Blocked: StatusStyle{
			Primary:   "#ff5370",
			Secondary: "#cc4259",
			Glow:      "#ff537033",
		},
	}
}

// Style returns the colors for a status.
func (t Theme) Style(status model.TaskStatus) StatusStyle {
	switch status {
	case model.StatusCompleted:
		return t.Completed
	case model.StatusInProgress:
		return t.InProgress
	case model.StatusBlocked:
		return t.Blocked
	}
	panic(fmt.Sprintf("render: no style for task status %q", status))
}

// SlideOptions controls text layout on task slides.
type SlideOptions struct {
	// CharsPerLine approximates how many monospace characters fit a line.
	CharsPerLine int
	// MaxLines caps the wrapped task title; extra lines are dropped.
	MaxLines int
}

// DefaultSlideOptions matches a 700px text box at 16px monospace.
func DefaultSlideOptions() SlideOptions {
	return SlideOptions{CharsPerLine: 70, MaxLines: 4}
}
