package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// parsePDF joins the text of every page that has any, one paragraph per
// page. Pages the reader cannot decode are listed at the end instead of
// failing the import.
func parsePDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var (
		pages      []string
		unreadable []string
	)
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			unreadable = append(unreadable, strconv.Itoa(i))
			continue
		}
		if text = cleanText(text); text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		return "", ErrNoText
	}
	content := strings.Join(pages, "\n\n")
	if len(unreadable) > 0 {
		content += "\n\n_Pages not extracted: " + strings.Join(unreadable, ", ") + "_"
	}
	return content, nil
}

// cleanText normalizes line endings and strips NUL bytes left by PDF
// extraction.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\x00", "")
	return strings.TrimSpace(text)
}

// parseExcel reads a workbook and converts each sheet to a markdown table.
func parseExcel(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n\n", sheet)
		sb.WriteString(rowsToMarkdown(rows))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// rowsToMarkdown converts rows into a markdown table, first row as header.
func rowsToMarkdown(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder

	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}

	writeRow := func(row []string) {
		cells := make([]string, maxCols)
		for j := range cells {
			if j < len(row) {
				cell := strings.ReplaceAll(row[j], "|", "\\|")
				cells[j] = strings.ReplaceAll(cell, "\n", " ")
			}
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	writeRow(rows[0])
	sb.WriteString("|")
	for i := 0; i < maxCols; i++ {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}

	return sb.String()
}
