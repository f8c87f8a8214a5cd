// Package pdftest builds small deterministic PDF files for tests. The
// builder writes a classic cross-reference table and one content stream
// per page, optionally Flate-compressed.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"fmt"
)

// Builder assembles a single-increment PDF document.
type Builder struct {
	pages    []string
	compress bool
}

// NewBuilder returns an empty document builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddPage appends a page whose content stream is the given operator text.
func (b *Builder) AddPage(content string) *Builder {
	b.pages = append(b.pages, content)
	return b
}

// Compress makes the builder Flate-encode every content stream.
func (b *Builder) Compress() *Builder {
	b.compress = true
	return b
}

// Bytes renders the document. Object numbering: 1 catalog, 2 page tree,
// then alternating page and content objects.
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	offsets := []int64{0} // object 0 is the free-list head

	writeObj := func(body string) {
		offsets = append(offsets, int64(buf.Len()))
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := ""
	for i := range b.pages {
		kids += fmt.Sprintf("%d 0 R ", 3+2*i)
	}
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		kids, len(b.pages)))

	for i, content := range b.pages {
		pageNum := 3 + 2*i
		contentNum := pageNum + 1
		writeObj(fmt.Sprintf(
			"%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Contents %d 0 R >>\nendobj\n",
			pageNum, contentNum))

		data := []byte(content)
		filter := ""
		if b.compress {
			var zbuf bytes.Buffer
			zw := zlib.NewWriter(&zbuf)
			zw.Write(data)
			zw.Close()
			data = zbuf.Bytes()
			filter = " /Filter /FlateDecode"
		}
		offsets = append(offsets, int64(buf.Len()))
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Length %d%s >>\nstream\n", contentNum, len(data), filter)
		buf.Write(data)
		buf.WriteString("\nendstream\nendobj\n")
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets), xrefOffset)

	return buf.Bytes()
}
