package utils

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// RenderTable draws rows as a box table. Every row must have one cell per
// column.
func RenderTable(w io.Writer, columns []string, rows [][]string) {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	border := func(left, mid, right string) {
		fmt.Fprint(w, left)
		for i, width := range widths {
			fmt.Fprint(w, strings.Repeat("─", width+2))
			if i < len(widths)-1 {
				fmt.Fprint(w, mid)
			}
		}
		fmt.Fprintln(w, right)
	}
	line := func(cells []string) {
		fmt.Fprint(w, "│")
		for i, cell := range cells {
			fmt.Fprintf(w, " %-*s │", widths[i], cell)
		}
		fmt.Fprintln(w)
	}

	border("┌", "┬", "┐")
	line(columns)
	border("├", "┼", "┤")
	for _, row := range rows {
		line(row)
	}
	border("└", "┴", "┘")
}
