// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"taskman/internal/service"
)

const (
	// Separator is the separator line above and below a detail block.
	Separator = "------------"

	// BusyMarker is appended to a task line while it is being deleted.
	BusyMarker = "Deleting..."
)

// FormatTask formats a task line for the list.
// Format: "{ID:>4}  {STATUS:<11}  {TITLE}[  due {DATE}][  Deleting...]\n",
// followed by the description indented six spaces when there is one.
func FormatTask(w io.Writer, task service.Task, busy bool) {
	line := fmt.Sprintf("%4d  %-11s  %s", task.ID, FormatStatus(task.Status), normalizeTitle(task.Title))
	if task.DueDate != nil && *task.DueDate != "" {
		line += "  due " + *task.DueDate
	}
	if busy {
		line += "  " + BusyMarker
	}
	fmt.Fprintln(w, line)

	if desc := normalizeText(task.Description); desc != "" {
		fmt.Fprintf(w, "      %s\n", desc)
	}
}

// FormatStatus returns the display form of a status ("in_progress" -> "in progress").
func FormatStatus(s service.Status) string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// FormatTaskDetail formats every field of a single task.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "#%d %s\n", task.ID, normalizeTitle(task.Title))
	fmt.Fprintln(w, Separator)
	fmt.Fprintf(w, "status:      %s\n", FormatStatus(task.Status))
	fmt.Fprintf(w, "due:         %s\n", orDash(task.DueDate))
	fmt.Fprintf(w, "description: %s\n", orDash(task.Description))
	if !task.CreatedAt.IsZero() {
		fmt.Fprintf(w, "created:     %s\n", task.CreatedAt.Format("2006-01-02 15:04"))
	}
	if !task.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "updated:     %s\n", task.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

// FormatDraft formats the fields of a task being edited.
func FormatDraft(w io.Writer, d service.TaskDraft) {
	fmt.Fprintf(w, "title:       %s\n", d.Title)
	fmt.Fprintf(w, "description: %s\n", d.Description)
	fmt.Fprintf(w, "due:         %s\n", d.DueDate)
	fmt.Fprintf(w, "status:      %s\n", d.Status)
}

// FormatPageFooter formats the pagination line under a list.
func FormatPageFooter(w io.Writer, page, count int, hasPrev, hasNext bool) {
	if !hasPrev && !hasNext {
		return
	}
	line := fmt.Sprintf("page %d, %d tasks", page, count)
	if hasPrev {
		line += fmt.Sprintf(", prev: --page %d", page-1)
	}
	if hasNext {
		line += fmt.Sprintf(", next: --page %d", page+1)
	}
	fmt.Fprintln(w, line)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func normalizeText(s *string) string {
	if s == nil {
		return ""
	}
	v := strings.ReplaceAll(*s, "\r", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	return strings.TrimSpace(v)
}

func orDash(s *string) string {
	if v := normalizeText(s); v != "" {
		return v
	}
	return "-"
}
