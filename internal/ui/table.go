package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/espenotterstad/svcdb/internal/svc"
)

// Column widths in terminal cells (content + trailing padding).
// The gutter (cursor indicator + space) is NOT included here; both the
// header and every data row are prefixed with exactly gutterWidth cells so
// all columns line up.
const (
	colName  = 20 // longest registry names run ~15 chars + 3 gap
	colPort  = 8  // "65535" + 3 gap
	colProto = 8  // "sctp" + 3 gap
)

// arrowRune is the cursor indicator shown on the selected row.  Its display
// width is measured at runtime with lipgloss.Width because many terminals
// render it as 2 cells (ambiguous-width Unicode character).
const arrowRune = "▶"

// gutterWidth is the number of terminal cells reserved for the gutter on
// every row (header and data alike).
var gutterWidth = lipgloss.Width(arrowRune) + 1

// RenderTable renders the scrollable record table.
func RenderTable(recs []svc.Record, cursor, width, height int) string {
	var sb strings.Builder

	gutter := strings.Repeat(" ", gutterWidth)
	sb.WriteString(gutter + renderHeader())
	sb.WriteByte('\n')
	sb.WriteString(StyleDivider.Render(strings.Repeat("─", width)))
	sb.WriteByte('\n')

	rowsAvail := height - 2
	if rowsAvail < 1 {
		rowsAvail = 1
	}

	start := scrollStart(len(recs), cursor, rowsAvail)
	end := start + rowsAvail
	if end > len(recs) {
		end = len(recs)
	}

	for i := start; i < end; i++ {
		selected := i == cursor
		var prefix string
		if selected {
			rendered := lipgloss.NewStyle().Foreground(ColorOther).Render(arrowRune)
			prefix = rendered + strings.Repeat(" ", gutterWidth-lipgloss.Width(arrowRune))
		} else {
			prefix = gutter
		}
		sb.WriteString(prefix + renderDataRow(recs[i], selected, width))
		sb.WriteByte('\n')
	}

	// Pad remaining rows so height stays constant.
	for i := end - start; i < rowsAvail; i++ {
		sb.WriteByte('\n')
	}

	return sb.String()
}

// RenderDetailPage renders a full-screen view of a single record.  It reads
// only the record value passed in, so a dataset reload cannot affect what
// is displayed.
func RenderDetailPage(r svc.Record, width, height int) string {
	var sb strings.Builder

	title := StyleLabel.Render("Record Detail")
	sb.WriteString(strings.Repeat(" ", gutterWidth) + title + "\n")
	sb.WriteString(StyleDivider.Render(strings.Repeat("─", width)) + "\n")

	field := func(k, v string) {
		if v == "" {
			return
		}
		sb.WriteString(
			strings.Repeat(" ", gutterWidth) +
				StyleLabel.Render(fmt.Sprintf("%-14s", k+":")) +
				" " + v + "\n",
		)
	}

	field("Name", r.Name)
	field("Port", fmt.Sprintf("%d", r.Port))
	field("Protocol", ProtoStyle(string(r.Protocol)).Render(string(r.Protocol)))
	field("Description", r.Description)
	field("Assignee", r.Assignee)
	field("Contact", r.Contact)
	field("Registered", r.RegistrationDate)
	field("Modified", r.ModificationDate)
	field("References", strings.Join(r.References, ", "))
	field("Notes", r.Notes)

	// Pad to the full available height with blank lines.  Bubble Tea v1.x
	// uses a cell-by-cell diff renderer: any cell not written in the current
	// frame keeps whatever was rendered in the previous frame, so rows of
	// the table visible before the detail page opened would bleed through
	// below the detail content.
	out := sb.String()
	written := strings.Count(out, "\n")
	for written < height {
		out += "\n"
		written++
	}
	return out
}

// renderHeader produces a styled column-header row (no gutter prefix).
func renderHeader() string {
	style := lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	return style.Render(
		padCell("NAME", colName) +
			padCell("PORT", colPort) +
			padCell("PROTO", colProto) +
			"DESCRIPTION",
	)
}

// renderDataRow renders a single record as a table row (no gutter prefix).
func renderDataRow(r svc.Record, selected bool, width int) string {
	descAvail := width - gutterWidth - colName - colPort - colProto
	if descAvail < 1 {
		descAvail = 1
	}
	desc := r.Description
	if ansi.StringWidth(desc) > descAvail {
		desc = ansi.Truncate(desc, descAvail, "…")
	}

	if selected {
		return StyleSelected.Render(
			padCell(r.Name, colName) +
				padCell(fmt.Sprintf("%d", r.Port), colPort) +
				padCell(string(r.Protocol), colProto) +
				desc,
		)
	}

	return padCell(r.Name, colName) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Render(padCell(fmt.Sprintf("%d", r.Port), colPort)) +
		ProtoStyle(string(r.Protocol)).Render(padCell(string(r.Protocol), colProto)) +
		StyleMuted.Render(desc)
}

// padCell left-aligns s within exactly w terminal cells.  Truncation and
// padding go by display width, never by byte offset, so multibyte and
// double-width runes stay intact.
func padCell(s string, w int) string {
	if ansi.StringWidth(s) > w-1 {
		s = ansi.Truncate(s, w-3, "…")
	}
	if pad := w - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// scrollStart returns the first visible row index.
func scrollStart(total, cursor, rowsAvail int) int {
	if total <= rowsAvail {
		return 0
	}
	start := 0
	if cursor >= start+rowsAvail {
		start = cursor - rowsAvail + 1
	}
	return start
}
