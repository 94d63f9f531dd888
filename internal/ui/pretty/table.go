package pretty

import (
	"fmt"
	"strings"
)

const (
	tablePadding    = 2
	minMarkerWidth  = 8
	minTitleWidth   = 8
	minClassWidth   = 12
	tableSeparator  = "-"
	ellipsis        = "..."
	markersHeader   = "MARKER"
	titlesHeader    = "TITLE"
	classesHeader   = "CSS CLASS"
	markerTableCols = 3
)

// MarkerRow is one configured admonition type.
type MarkerRow struct {
	Marker   string
	Title    string
	CSSClass string
}

// MarkerTable formats configured markers as an aligned table.
type MarkerTable struct {
	styles    *Styles
	termWidth int
}

// NewMarkerTable creates a table formatter bounded by termWidth.
func NewMarkerTable(styles *Styles, termWidth int) *MarkerTable {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &MarkerTable{styles: styles, termWidth: termWidth}
}

// Format renders rows in the order given. It returns "" for no rows.
func (m *MarkerTable) Format(rows []MarkerRow) string {
	if len(rows) == 0 {
		return ""
	}

	marker, title, class := minMarkerWidth, minTitleWidth, minClassWidth
	for _, row := range rows {
		marker = max(marker, len(row.Marker))
		title = max(title, len(row.Title))
		class = max(class, len(row.CSSClass))
	}

	total := marker + title + class + tablePadding*markerTableCols
	if total > m.termWidth {
		class = max(minClassWidth, class-(total-m.termWidth))
		total = marker + title + class + tablePadding*markerTableCols
	}

	var builder strings.Builder
	builder.WriteString(m.styles.TableHeader.Render(
		fmt.Sprintf(" %-*s  %-*s  %-*s", marker, markersHeader, title, titlesHeader, class, classesHeader)))
	builder.WriteString("\n")
	builder.WriteString(m.styles.TableSeparator.Render(strings.Repeat(tableSeparator, total)))
	builder.WriteString("\n")

	for _, row := range rows {
		// Pad before styling so escape codes do not skew alignment.
		builder.WriteString(" ")
		builder.WriteString(m.styles.Marker.Render(fmt.Sprintf("%-*s", marker, row.Marker)))
		builder.WriteString(fmt.Sprintf("  %-*s  %s", title, row.Title, truncate(row.CSSClass, class)))
		builder.WriteString("\n")
	}

	return builder.String()
}

func truncate(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return str[:maxLen]
	}
	return str[:maxLen-len(ellipsis)] + ellipsis
}
