package render

import (
	"fmt"
	"strings"

	"github.com/bryan-cox/weeklyreport/internal/model"
)

// Slide dimensions in pixels.
const (
	SlideWidth  = 800
	SlideHeight = 450
)

// DefaultTopic is shown on slides for tasks without a topic.
const DefaultTopic = "General"

// Slide is one rendered SVG document.
type Slide struct {
	Name    string
	Content string
}

// Deck renders a report as a sequence of SVG slides.
type Deck struct {
	Theme   Theme
	Options SlideOptions
}

// NewDeck returns a Deck with the default theme and layout.
func NewDeck() Deck {
	return Deck{Theme: DefaultTheme(), Options: DefaultSlideOptions()}
}

// Slides renders the summary slide followed by one slide per task, in
// section order.
func (d Deck) Slides(r *model.Report) []Slide {
	tasks := r.AllTasks()
	slides := make([]Slide, 0, len(tasks)+1)
	slides = append(slides, Slide{Name: "00_summary.svg", Content: d.Summary(r)})

	week := r.WeekString()
	for i, task := range tasks {
		index := i + 1
		slides = append(slides, Slide{
			Name:    fmt.Sprintf("%02d_%s.svg", index, slideSlug(task.Status)),
			Content: d.TaskSlide(task, index, len(tasks), r.Author, week),
		})
	}
	return slides
}

func slideSlug(status model.TaskStatus) string {
	return strings.ToLower(strings.ReplaceAll(status.Label(), " ", "-"))
}

func (d Deck) openSVG(b *strings.Builder) {
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		SlideWidth, SlideHeight, SlideWidth, SlideHeight)
}

func (d Deck) writeDefs(b *strings.Builder, traces bool) {
	t := d.Theme
	b.WriteString("  <defs>\n")
	b.WriteString(`    <filter id="glow" x="-50%" y="-50%" width="200%" height="200%">` + "\n")
	b.WriteString(`      <feGaussianBlur stdDeviation="3" result="coloredBlur"/>` + "\n")
	b.WriteString("      <feMerge>\n")
	b.WriteString(`        <feMergeNode in="coloredBlur"/>` + "\n")
	b.WriteString(`        <feMergeNode in="SourceGraphic"/>` + "\n")
	b.WriteString("      </feMerge>\n    </filter>\n")
	b.WriteString(`    <pattern id="grid" width="40" height="40" patternUnits="userSpaceOnUse">` + "\n")
	fmt.Fprintf(b, `      <path d="M 40 0 L 0 0 0 40" fill="none" stroke="%s" stroke-width="0.5"/>`+"\n", t.Grid)
	b.WriteString("    </pattern>\n")
	if traces {
		b.WriteString(`    <pattern id="traces" width="100" height="100" patternUnits="userSpaceOnUse">` + "\n")
		fmt.Fprintf(b, `      <path d="M0 50 H30 V20 H50 V50 H70 V80 H100" fill="none" stroke="%s" stroke-width="1"/>`+"\n", t.Trace)
		fmt.Fprintf(b, `      <path d="M50 0 V20" fill="none" stroke="%s" stroke-width="1"/>`+"\n", t.Trace)
		for _, c := range [][2]int{{30, 50}, {50, 20}, {70, 50}} {
			fmt.Fprintf(b, `      <circle cx="%d" cy="%d" r="2" fill="%s"/>`+"\n", c[0], c[1], t.Trace)
		}
		b.WriteString("    </pattern>\n")
	}
	b.WriteString("  </defs>\n\n")

	fmt.Fprintf(b, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", t.Background)
	b.WriteString(`  <rect width="100%" height="100%" fill="url(#grid)" opacity="0.5"/>` + "\n")
	if traces {
		b.WriteString(`  <rect width="100%" height="100%" fill="url(#traces)" opacity="0.3"/>` + "\n")
	}
}

// writeFrame draws the corner brackets around the slide.
func (d Deck) writeFrame(b *strings.Builder, color string) {
	for _, path := range []string{
		"M5 30 L5 5 L30 5",
		"M770 5 L795 5 L795 30",
		"M795 420 L795 445 L770 445",
		"M30 445 L5 445 L5 420",
	} {
		fmt.Fprintf(b, `  <path d="%s" fill="none" stroke="%s" stroke-width="2"/>`+"\n", path, color)
	}
}

// writePins draws three IC-style pins in each corner.
func (d Deck) writePins(b *strings.Builder, color string) {
	for _, x := range []int{10, 782} {
		for _, y := range []int{40, 50, 60, 387, 397, 407} {
			fmt.Fprintf(b, `  <rect x="%d" y="%d" width="8" height="3" fill="%s" opacity="0.6"/>`+"\n", x, y, color)
		}
	}
}

func (d Deck) text(b *strings.Builder, x, y, size int, fill, attrs, content string) {
	if attrs != "" {
		attrs = " " + attrs
	}
	fmt.Fprintf(b, `  <text x="%d" y="%d" font-family="%s" font-size="%d" fill="%s"%s>%s</text>`+"\n",
		x, y, d.Theme.Font, size, fill, attrs, content)
}

// TaskSlide renders a single task. index is 1-based out of total.
func (d Deck) TaskSlide(task model.Task, index, total int, author, week string) string {
	t := d.Theme
	style := t.Style(task.Status)
	topic := task.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	var b strings.Builder
	d.openSVG(&b)
	d.writeDefs(&b, true)
	d.writePins(&b, style.Primary)

	// Header bar and status badge.
	fmt.Fprintf(&b, `  <rect x="40" y="30" width="720" height="4" fill="%s" filter="url(#glow)" rx="2"/>`+"\n", style.Primary)
	fmt.Fprintf(&b, `  <rect x="40" y="50" width="120" height="28" fill="%s" stroke="%s" stroke-width="1" rx="4"/>`+"\n",
		style.Glow, style.Primary)
	d.text(&b, 100, 69, 12, style.Primary, `text-anchor="middle" font-weight="bold"`, EscapeXML(task.Status.Label()))

	// Topic block.
	fmt.Fprintf(&b, `  <rect x="40" y="100" width="720" height="80" fill="%s" stroke="%s" stroke-width="2" rx="4"/>`+"\n",
		t.Background, style.Primary)
	fmt.Fprintf(&b, `  <rect x="40" y="100" width="720" height="80" fill="%s" rx="4"/>`+"\n", style.Glow)
	fmt.Fprintf(&b, `  <rect x="50" y="90" width="100" height="20" fill="%s"/>`+"\n", t.Background)
	d.text(&b, 55, 104, 10, t.TextDim, "", "TOPIC")
	d.text(&b, 60, 150, 28, style.Primary, `font-weight="bold" filter="url(#glow)"`, EscapeXML(topic))

	// Description block with the wrapped title.
	fmt.Fprintf(&b, `  <rect x="40" y="200" width="720" height="160" fill="%s" stroke="%s" stroke-width="1" rx="4"/>`+"\n",
		t.Background, t.Trace)
	fmt.Fprintf(&b, `  <rect x="50" y="190" width="120" height="20" fill="%s"/>`+"\n", t.Background)
	d.text(&b, 55, 204, 10, t.TextDim, "", "DESCRIPTION")
	for i, line := range WrapText(task.Title, d.Options.CharsPerLine, d.Options.MaxLines) {
		d.text(&b, 60, 240+i*24, 16, t.Text, "", EscapeXML(line))
	}

	// Footer.
	fmt.Fprintf(&b, `  <rect x="40" y="380" width="720" height="1" fill="%s"/>`+"\n", t.Trace)
	d.text(&b, 40, 410, 11, t.TextDim, "",
		fmt.Sprintf(`<tspan fill="%s">ENGINEER:</tspan> %s`, t.Accent, EscapeXML(author)))
	d.text(&b, 300, 410, 11, t.TextDim, "",
		fmt.Sprintf(`<tspan fill="%s">WEEK:</tspan> %s`, t.Accent, EscapeXML(week)))
	d.text(&b, 760, 410, 11, t.TextDim, `text-anchor="end"`,
		fmt.Sprintf(`<tspan fill="%s">%d</tspan>/%d`, style.Primary, index, total))

	d.writeFrame(&b, style.Secondary)
	b.WriteString("</svg>\n")
	return b.String()
}

// Summary renders the overview slide with per-section counts.
func (d Deck) Summary(r *model.Report) string {
	t := d.Theme

	var b strings.Builder
	d.openSVG(&b)
	d.writeDefs(&b, false)

	d.text(&b, 400, 60, 28, t.Accent, `text-anchor="middle" font-weight="bold" filter="url(#glow)"`, "WEEKLY STATUS REPORT")
	d.text(&b, 400, 90, 14, t.TextDim, `text-anchor="middle"`, EscapeXML(r.WeekString()))

	blocks := []struct {
		x      int
		status model.TaskStatus
		count  int
		label  string
	}{
		{80, model.StatusCompleted, r.Accomplished.Len(), "COMPLETED"},
		{310, model.StatusInProgress, r.InProgress.Len(), "IN PROGRESS"},
		{540, model.StatusBlocked, r.Blockers.Len(), "BLOCKERS"},
	}
	for _, blk := range blocks {
		style := t.Style(blk.status)
		center := blk.x + 90
		fmt.Fprintf(&b, `  <rect x="%d" y="140" width="180" height="120" fill="%s" stroke="%s" stroke-width="2" rx="4"/>`+"\n",
			blk.x, t.Background, style.Primary)
		fmt.Fprintf(&b, `  <rect x="%d" y="140" width="180" height="120" fill="%s" rx="4"/>`+"\n", blk.x, style.Glow)
		d.text(&b, center, 190, 48, style.Primary, `text-anchor="middle" filter="url(#glow)"`, fmt.Sprint(blk.count))
		d.text(&b, center, 240, 12, t.TextDim, `text-anchor="middle"`, blk.label)
	}

	d.text(&b, 400, 320, 14, t.TextDim, `text-anchor="middle"`,
		fmt.Sprintf(`<tspan fill="%s">ENGINEER:</tspan> %s`, t.Accent, EscapeXML(r.Author)))
	d.text(&b, 400, 360, 12, t.TextDim, `text-anchor="middle"`,
		fmt.Sprintf(`TOTAL TASKS: <tspan fill="%s">%d</tspan>`, t.Text, r.Total()))

	d.writeFrame(&b, t.Accent)
	b.WriteString("</svg>\n")
	return b.String()
}
