// Package formatter renders score reports as Markdown tables.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"apinventory/internal/models"
)

// minColumnWidth keeps separator cells at least "---".
const minColumnWidth = 3

// ReportHeader lists the columns of the triage report.
var ReportHeader = []string{
	"#", "bssid", "ssid",
	models.ScoreOUIMismatch, models.ScoreRSNMismatch, models.ScoreMultiChannel,
	models.ScoreTimingAnomaly, models.ScoreEntropyPenalty, models.ScoreTotal,
}

// Report renders one table row per scored record, in input order.
func Report(scored []models.Scored) string {
	table := [][]string{ReportHeader}

	for i, s := range scored {
		row := []string{strconv.Itoa(i), s.Record.BSSID, escapeCell(s.Record.SSID)}
		for _, v := range s.Scores.Values() {
			row = append(row, strconv.Itoa(v))
		}

		row = append(row, strconv.Itoa(s.Scores.TotalScore))
		table = append(table, row)
	}

	return strings.Join(Table(table), "\n") + "\n"
}

// Table lays out rows as a Markdown table whose first row is the header.
// Columns are padded by display width, so wide characters line up.
func Table(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < minColumnWidth {
			colWidths[i] = minColumnWidth
		}
	}

	result := make([]string, 0, len(rows)+1)
	result = append(result, renderRow(rows[0], colWidths))

	separator := make([]string, colCount)
	for i, w := range colWidths {
		separator[i] = strings.Repeat("-", w)
	}

	result = append(result, renderRow(separator, colWidths))

	for _, row := range rows[1:] {
		result = append(result, renderRow(row, colWidths))
	}

	return result
}

func renderRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		if padding := width - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

// escapeCell keeps SSIDs from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r", " ")

	return strings.ReplaceAll(s, "\n", " ")
}
