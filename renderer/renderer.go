// Package renderer turns simulation results into markdown reports. The
// markdown is plain text: callers decide whether to print it raw or through
// a terminal renderer.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderReport renders the full simulation report to a markdown string.
func RenderReport(r *Report) string {
	partials := map[string]string{
		"report_title":   "templates/report_title.md",
		"report_summary": "templates/report_summary.md",
		"report_periods": "templates/report_periods.md",
		"report_cohorts": "templates/report_cohorts.md",
	}
	return renderTemplate("report", "templates/report.md", partials, r)
}

// RenderSchedule renders the generated period schedule to a markdown string.
func RenderSchedule(s *ScheduleView) string {
	return renderTemplate("schedule", "templates/schedule.md", nil, s)
}

// RenderAllocation renders a one-shot distributor outcome to a markdown string.
func RenderAllocation(a *AllocationView) string {
	return renderTemplate("allocation", "templates/allocation.md", nil, a)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, readErr := fs.ReadFile(templates, file)
		if readErr != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
