package render

import (
	"fmt"
	"strings"

	"github.com/bryan-cox/weeklyreport/internal/model"
	"github.com/bryan-cox/weeklyreport/internal/tracker"
)

const htmlStyle = `        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 800px;
            margin: 0 auto;
            padding: 40px 20px;
            background: #f5f5f5;
        }
        .report { background: white; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); padding: 40px; }
        .header { border-bottom: 2px solid #2563eb; padding-bottom: 20px; margin-bottom: 30px; }
        .header h1 { color: #1e40af; font-size: 1.8rem; margin-bottom: 8px; }
        .header .meta { color: #666; font-size: 0.95rem; }
        .header .meta span { margin-right: 20px; }
        .section { margin-bottom: 30px; }
        .section h2 { font-size: 1.2rem; margin-bottom: 15px; padding: 8px 12px; border-radius: 4px; }
        .section h2 .count { float: right; font-weight: normal; }
        .section.accomplished h2 { background: #dcfce7; color: #166534; }
        .section.in-progress h2 { background: #fef3c7; color: #92400e; }
        .section.blockers h2 { background: #fee2e2; color: #991b1b; }
        .task-list { list-style: none; }
        .task-list li {
            padding: 10px 12px;
            border-left: 3px solid #e5e7eb;
            margin-bottom: 8px;
            background: #fafafa;
            border-radius: 0 4px 4px 0;
        }
        .task-list li:hover { border-left-color: #2563eb; }
        .task-title { font-weight: 500; }
        .task-topic {
            display: inline-block;
            background: #e0e7ff;
            color: #3730a3;
            font-size: 0.75rem;
            padding: 1px 8px;
            border-radius: 10px;
            margin-right: 6px;
        }
        .task-topic a { color: inherit; text-decoration: none; }
        .task-meta { font-size: 0.85rem; color: #666; margin-top: 4px; }
        .task-meta code { background: #e5e7eb; padding: 2px 6px; border-radius: 3px; font-size: 0.8rem; }
        .empty-section { color: #999; font-style: italic; padding: 10px 12px; }
        .footer {
            margin-top: 30px;
            padding-top: 20px;
            border-top: 1px solid #e5e7eb;
            font-size: 0.85rem;
            color: #666;
            text-align: center;
        }
`

// EmptySectionText is shown for sections without tasks.
const EmptySectionText = "No items to report."

// GeneratedAtLayout formats the footer timestamp.
const GeneratedAtLayout = "January 02, 2006 at 03:04 PM"

// sectionClass returns the CSS class for a section.
func sectionClass(status model.TaskStatus) string {
	switch status {
	case model.StatusCompleted:
		return "accomplished"
	case model.StatusInProgress:
		return "in-progress"
	case model.StatusBlocked:
		return "blockers"
	}
	panic(fmt.Sprintf("render: no section class for task status %q", status))
}

// Page renders reports as standalone HTML documents.
type Page struct {
	// Tickets links topics that carry a ticket key. Nil disables linking.
	Tickets *tracker.Linker
}

// HTML renders the report with no ticket links.
func HTML(r *model.Report) string {
	return Page{}.HTML(r)
}

// HTML renders the report as a standalone HTML document.
func (p Page) HTML(r *model.Report) string {
	var b strings.Builder
	week := EscapeHTML(r.WeekString())

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "    <meta name=\"report-id\" content=\"%s\">\n", EscapeHTML(r.ID))
	fmt.Fprintf(&b, "    <title>Weekly Status Report - %s</title>\n", week)
	b.WriteString("    <style>\n" + htmlStyle + "    </style>\n</head>\n<body>\n")
	b.WriteString("    <div class=\"report\">\n")
	b.WriteString("        <div class=\"header\">\n")
	b.WriteString("            <h1>Weekly Status Report</h1>\n")
	b.WriteString("            <div class=\"meta\">\n")
	fmt.Fprintf(&b, "                <span><strong>Author:</strong> %s</span>\n", EscapeHTML(r.Author))
	fmt.Fprintf(&b, "                <span><strong>Week:</strong> %s</span>\n", week)
	fmt.Fprintf(&b, "                <span><strong>Total:</strong> %d</span>\n", r.Total())
	b.WriteString("            </div>\n        </div>\n")

	p.writeSection(&b, &r.Accomplished, model.StatusCompleted)
	p.writeSection(&b, &r.InProgress, model.StatusInProgress)
	p.writeSection(&b, &r.Blockers, model.StatusBlocked)

	fmt.Fprintf(&b, "        <div class=\"footer\">\n            Generated on %s\n        </div>\n",
		EscapeHTML(r.GeneratedAt.Format(GeneratedAtLayout)))
	b.WriteString("    </div>\n</body>\n</html>\n")
	return b.String()
}

func (p Page) writeSection(b *strings.Builder, s *model.Section, status model.TaskStatus) {
	fmt.Fprintf(b, "        <div class=\"section %s\">\n", sectionClass(status))
	fmt.Fprintf(b, "            <h2>%s <span class=\"count\">%d</span></h2>\n", EscapeHTML(s.Name), s.Len())
	b.WriteString("            " + p.sectionBody(s) + "\n")
	b.WriteString("        </div>\n")
}

func (p Page) sectionBody(s *model.Section) string {
	if s.Len() == 0 {
		return `<p class="empty-section">` + EmptySectionText + `</p>`
	}

	var b strings.Builder
	b.WriteString(`<ul class="task-list">`)
	for _, task := range s.Tasks {
		b.WriteString("<li>")
		b.WriteString(`<div class="task-title">`)
		if task.Topic != "" {
			fmt.Fprintf(&b, `<span class="task-topic">%s</span>`, p.Tickets.TopicHTML(task.Topic))
		}
		b.WriteString(EscapeHTML(task.Title))
		b.WriteString("</div>")
		if task.Description != "" {
			fmt.Fprintf(&b, `<div class="task-description">%s</div>`, EscapeHTML(task.Description))
		}
		if meta := taskMeta(task); meta != "" {
			fmt.Fprintf(&b, `<div class="task-meta">%s</div>`, meta)
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// taskMeta returns the escaped provenance line for a task.
func taskMeta(task model.Task) string {
	var parts []string
	if task.CommitHash != "" {
		parts = append(parts, "<code>"+EscapeHTML(task.CommitHash)+"</code>")
	}
	if task.PRNumber > 0 {
		parts = append(parts, fmt.Sprintf("PR #%d", task.PRNumber))
	}
	if !task.Date.IsZero() {
		parts = append(parts, task.Date.Format("Jan 02"))
	}
	return strings.Join(parts, " · ")
}
