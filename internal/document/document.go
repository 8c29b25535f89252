// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package document resolves local files into upload candidates.
//
// The declared media type follows the file name extension, the same way a
// browser fills in File.type. Content sniffing is only used when the
// extension is unknown, so a mislabeled file is still judged by its name.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// MediaTypePDF is the only media type the service ingests.
const MediaTypePDF = "application/pdf"

var (
	// ErrNotFound is returned when the path does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrNotRegular is returned for directories and special files.
	ErrNotRegular = errors.New("not a regular file")
)

// Document is a local file selected for upload.
type Document struct {
	// Name is the base name sent as the multipart file name.
	Name string

	// Path is the absolute path on disk.
	Path string

	// MediaType is the declared type, without parameters.
	MediaType string

	// Size in bytes.
	Size int64

	// Pages is the PDF page count, or 0 when unknown.
	Pages int

	// content, when set, is used instead of reading Path.
	content []byte
}

// Inspect stats path and fills in a Document.
// Page counting is best effort and never fails the call.
func Inspect(path string) (*Document, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	doc := &Document{
		Name:      filepath.Base(abs),
		Path:      abs,
		MediaType: declaredType(abs),
		Size:      info.Size(),
	}
	if doc.IsPDF() {
		doc.Pages = countPages(abs)
	}
	return doc, nil
}

// FromBytes builds an in-memory Document. The media type is derived from
// name exactly as Inspect would.
func FromBytes(name string, data []byte) *Document {
	mt := typeByExtension(name)
	if mt == "" {
		mt = stripParams(mimetype.Detect(data).String())
	}
	return &Document{
		Name:      filepath.Base(name),
		MediaType: mt,
		Size:      int64(len(data)),
		content:   data,
	}
}

// IsPDF reports whether the declared type is MediaTypePDF.
func (d *Document) IsPDF() bool {
	return d.MediaType == MediaTypePDF
}

// Open returns a reader over the document content.
func (d *Document) Open() (io.ReadCloser, error) {
	if d.content != nil {
		return io.NopCloser(bytes.NewReader(d.content)), nil
	}
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", d.Name, err)
	}
	return f, nil
}

// Summary is a short description for labels, e.g. "report.pdf (12 pages, 1.2 MB)".
func (d *Document) Summary() string {
	var parts []string
	if d.Pages > 0 {
		if d.Pages == 1 {
			parts = append(parts, "1 page")
		} else {
			parts = append(parts, fmt.Sprintf("%d pages", d.Pages))
		}
	}
	parts = append(parts, FormatSize(d.Size))
	return fmt.Sprintf("%s (%s)", d.Name, strings.Join(parts, ", "))
}

func declaredType(path string) string {
	if mt := typeByExtension(path); mt != "" {
		return mt
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return stripParams(mt.String())
}

func typeByExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	return stripParams(mime.TypeByExtension(ext))
}

func stripParams(mt string) string {
	if mt == "" {
		return ""
	}
	base, _, err := mime.ParseMediaType(mt)
	if err != nil {
		return mt
	}
	return base
}

// countPages returns 0 for anything the pdf reader cannot handle.
// The reader panics on some malformed files.
func countPages(path string) (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	return r.NumPage()
}

// FormatSize renders a byte count as B, KB or MB.
func FormatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
