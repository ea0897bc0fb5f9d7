// Package ingest turns local files and web pages into node material.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFile is returned for file types that cannot be imported.
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrNoText is returned for a PDF without any extractable text.
	ErrNoText = errors.New("no extractable text")
)

// Document is the extracted title and body of a source.
type Document struct {
	Title   string
	Content string
	Source  string
}

// FromFile reads a local file. Plain text and markdown are taken as-is,
// PDFs contribute their page text and spreadsheets become markdown tables.
func FromFile(path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var (
		content string
		err     error
	)
	switch ext {
	case ".txt", ".md", ".markdown":
		var data []byte
		data, err = os.ReadFile(path)
		content = string(data)
		if err == nil && ext != ".txt" {
			if h := firstHeading(content); h != "" {
				title = h
			}
		}
	case ".pdf":
		content, err = parsePDF(path)
	case ".xlsx", ".xlsm":
		content, err = parseExcel(path)
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, ext)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Document{Title: title, Content: strings.TrimSpace(content), Source: path}, nil
}

// firstHeading returns the text of the first level-one markdown heading.
func firstHeading(md string) string {
	for line := range strings.Lines(md) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
