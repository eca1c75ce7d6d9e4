package store

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Row styles keep the original grey palette: a lighter band for the
// header and two alternating darker bands for data rows.
var (
	headerStyle = lipgloss.NewStyle().Background(lipgloss.Color("241"))
	oddStyle    = lipgloss.NewStyle().Background(lipgloss.Color("235"))
	evenStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236"))
)

type column struct {
	header string
	width  int
	center bool
}

// wideChars returns the extra display cells needed by wide glyphs in s.
func wideChars(s string) int {
	n := 0
	for _, r := range s {
		if runewidth.RuneWidth(r) > 1 {
			n++
		}
	}
	return n
}

// displayWidth is the rune count plus one extra cell per wide glyph.
func displayWidth(s string) int {
	return utf8.RuneCountInString(s) + wideChars(s)
}

// tableColumns sizes the title and project columns to the widest value
// observed, never narrower than their headers.
func tableColumns(tasks []Task, verbose bool) []column {
	titleWidth := len("title")
	projectWidth := len("project")
	for _, t := range tasks {
		if w := displayWidth(t.Title); w > titleWidth {
			titleWidth = w
		}
		if w := displayWidth(t.Project); w > projectWidth {
			projectWidth = w
		}
	}
	cols := []column{
		{header: "", width: 3, center: true},
		{header: "id", width: 7},
		{header: "title", width: titleWidth + 1},
		{header: "priority", width: 9},
		{header: "project", width: projectWidth + 1},
	}
	if verbose {
		cols = append(cols,
			column{header: "create", width: 17},
			column{header: "expire", width: 17},
		)
	}
	return cols
}

func alignLeft(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

// alignLeftWide pads by display width so wide glyphs keep the columns
// to the right flush.
func alignLeftWide(s string, width int) string {
	pad := width - displayWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

func alignCenter(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func formatRow(cells []string, cols []column) string {
	var b strings.Builder
	for i, c := range cols {
		switch {
		case c.center:
			b.WriteString(alignCenter(cells[i], c.width))
		case c.header == "title":
			b.WriteString(alignLeftWide(cells[i], c.width))
		default:
			b.WriteString(alignLeft(cells[i], c.width))
		}
	}
	return b.String()
}

func rowCells(t Task, verbose bool) []string {
	marker := ""
	if t.List == ListToday {
		marker = "*"
	}
	cells := []string{marker, t.ID, t.Title, strconv.Itoa(t.Priority), t.Project}
	if verbose {
		cells = append(cells, t.Create, t.ExpireString())
	}
	return cells
}

// RenderTable renders the ordered tasks as a table: a styled header row
// of literal column names, then one row per task with backgrounds
// alternating by zero-based position.
func RenderTable(tasks []Task, verbose bool) string {
	cols := tableColumns(tasks, verbose)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(formatRow(headers, cols)))
	b.WriteString("\n")
	for i, t := range tasks {
		row := formatRow(rowCells(t, verbose), cols)
		if i%2 == 0 {
			b.WriteString(evenStyle.Render(row))
		} else {
			b.WriteString(oddStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}
