// Package export writes the knowledge graph to files.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/sagepkm/internal/pkm"
	"github.com/jeanpaul/sagepkm/internal/render"
	"github.com/jeanpaul/sagepkm/internal/tags"
)

// SheetName is the worksheet holding exported nodes.
const SheetName = "Nodes"

// Markdown writes nodes as a markdown document to path.
func Markdown(path, title string, nodes []pkm.Node) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(render.Markdown(title, nodes)), 0644)
}

// Spreadsheet writes nodes to a workbook at path, one row per node.
func Spreadsheet(path string, nodes []pkm.Node) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	header := []any{"Title", "Summary", "Content", "Tags"}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, n := range nodes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{n.Title(), n.Summary(), n.Content(), tags.Join(n.Tags())}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return f.SaveAs(path)
}
