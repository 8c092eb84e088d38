// Package cli provides output formatting and an HTTP client for the DarkSeeker CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hyperjump/darkseeker/internal/models"
	"github.com/hyperjump/darkseeker/internal/search"
	"github.com/hyperjump/darkseeker/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints one line per item.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// descriptionLen is the rune budget for descriptions in text output.
const descriptionLen = 160

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("141"))
)

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
	}
}

// WriteSearchResults writes a result page to w in the given format.
// Use OutputJSON for output matching the /api/search response body.
func WriteSearchResults(w io.Writer, page *models.ResultPage, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, page)
	case OutputCompact:
		for _, item := range page.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\n",
				item.Score, item.ID, item.Title, item.Price, item.Category)
		}
		return nil
	default:
		writeSearchResultsText(w, page)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, page *models.ResultPage) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Found %d items (page %d of %d)",
		page.Total, page.Page, page.TotalPages)))
	if len(page.Items) == 0 {
		fmt.Fprintln(w, metaStyle.Render("No items on this page."))
		return
	}
	for _, item := range page.Items {
		fmt.Fprintln(w)
		writeOneItem(w, item)
	}
}

func writeOneItem(w io.Writer, item models.ScoredItem) {
	fmt.Fprintf(w, "%s  %s\n", titleStyle.Render(item.Title), metaStyle.Render("#"+item.ID.String()))
	meta := utils.JoinNonEmpty([]string{
		item.Category,
		fmt.Sprintf("%.2f", item.Price),
		item.Date.String(),
		fmt.Sprintf("score %d", item.Score),
	}, " | ")
	fmt.Fprintln(w, metaStyle.Render(meta))
	if len(item.Tags) > 0 {
		fmt.Fprintln(w, tagStyle.Render(strings.Join(item.Tags, ", ")))
	}
	if item.Description != "" {
		fmt.Fprintln(w, utils.Truncate(item.Description, descriptionLen))
	}
}

// WriteTags writes the tag list, one per line for text and compact output.
func WriteTags(w io.Writer, tags []string, format OutputFormat) error {
	if format == OutputJSON {
		if tags == nil {
			tags = []string{}
		}
		return writeJSON(w, tags)
	}
	for _, t := range tags {
		fmt.Fprintln(w, t)
	}
	return nil
}

// Status is what the status command reports: catalog stats plus on-disk size when the
// catalog is a local file.
type Status struct {
	search.Stats
	DiskUsageBytes *int64 `json:"disk_usage_bytes,omitempty"`
}

// WriteStatus writes catalog status in the given format. Compact output is the same as text.
func WriteStatus(w io.Writer, status *Status, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, status)
	}
	fmt.Fprintf(w, "items:             %d\n", status.Items)
	fmt.Fprintf(w, "tags:              %d\n", status.Tags)
	fmt.Fprintf(w, "categories:        %s\n", strings.Join(status.Categories, ", "))
	if status.Source != "" {
		fmt.Fprintf(w, "source:            %s\n", status.Source)
	}
	if !status.LoadedAt.IsZero() {
		fmt.Fprintf(w, "loaded_at:         %s\n", status.LoadedAt.Format("2006-01-02 15:04:05"))
	}
	if status.DiskUsageBytes != nil {
		fmt.Fprintf(w, "disk_usage_bytes:  %d\n", *status.DiskUsageBytes)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
