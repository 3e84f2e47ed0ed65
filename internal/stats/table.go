package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const simpleColumnGap = "  "

// simpleTable renders headers, a dashed rule and rows separated by two spaces.
func simpleTable(headers []string, rows [][]string, rightAlignCols map[int]bool) string {
	widths := columnWidths(headers, rows)
	if len(widths) == 0 {
		return ""
	}
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, formatRow(headers, widths, rightAlignCols, simpleColumnGap))
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	lines = append(lines, strings.Join(rule, simpleColumnGap))
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols, simpleColumnGap))
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// gridTable renders rows inside a box, with a border line between rows.
func gridTable(rows [][]string, rightAlignCols map[int]bool) string {
	widths := columnWidths(nil, rows)
	if len(widths) == 0 {
		return ""
	}
	var border strings.Builder
	border.WriteByte('+')
	for _, w := range widths {
		border.WriteString(strings.Repeat("-", w+2))
		border.WriteByte('+')
	}
	lines := make([]string, 0, 2*len(rows)+1)
	lines = append(lines, border.String())
	for _, row := range rows {
		lines = append(lines, "| "+formatRow(row, widths, rightAlignCols, " | ")+" |")
		lines = append(lines, border.String())
	}
	return strings.Join(lines, "\n")
}

func columnWidths(headers []string, rows [][]string) []int {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool, gap string) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
