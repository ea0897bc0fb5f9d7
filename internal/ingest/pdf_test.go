package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePDF writes a single-page PDF showing one line per entry of lines,
// with a correct xref table so the reader can resolve every object.
func writePDF(t *testing.T, path string, lines ...string) {
	t.Helper()

	var stream bytes.Buffer
	for i, line := range lines {
		fmt.Fprintf(&stream, "BT /F1 12 Tf 72 %d Td (%s) Tj ET\n", 720-20*i, line)
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", stream.Len(), stream.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestFromFile_PDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quantum.pdf")
	writePDF(t, path, "Quantum notes", "Entanglement basics")

	doc, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "quantum", doc.Title)
	assert.Contains(t, doc.Content, "Quantum notes")
	assert.Contains(t, doc.Content, "Entanglement basics")
	assert.NotContains(t, doc.Content, "Pages not extracted")
	assert.Equal(t, path, doc.Source)
}

func TestFromFile_PDFWithoutText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.pdf")
	writePDF(t, path)

	_, err := FromFile(path)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestFromFile_CorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0644))

	_, err := FromFile(path)
	assert.ErrorContains(t, err, "failed to read")
}
