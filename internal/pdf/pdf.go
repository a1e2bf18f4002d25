// Package pdf provides the PDF primitives used by the merge engine.
//
// Functions:
//   - Load / Parse: read and validate a document with pdfcpu.
//     Failures are reported as *LoadError.
//   - (*Document).PageSize: visible size of a page in points.
//   - (*Document).Overlay: draw a single-page overlay PDF on top of a page.
//   - Concat: append the pages of several documents, in order.
//   - Empty: a serialized document without pages.
//
// Drawing happens on a Canvas (see canvas.go), which renders an overlay page
// with gofpdf. The overlay is then stamped onto the target page by pdfcpu.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// LoadError reports bytes that could not be read as a PDF.
type LoadError struct {
	Name  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load PDF %s: %v", e.Name, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

var disableConfigDir sync.Once

// configuration returns a fresh pdfcpu configuration. pdfcpu contexts keep
// a pointer to it, so it is never shared between documents.
func configuration() *model.Configuration {
	// The server never needs pdfcpu's on-disk config or user fonts.
	disableConfigDir.Do(pdfapi.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.CreateBookmarks = false
	return conf
}

// Document is a loaded, validated PDF.
type Document struct {
	Name string
	data []byte
	ctx  *model.Context
}

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Name: path, Cause: err}
	}
	return Parse(path, data)
}

// Parse validates data as a PDF with at least one page.
func Parse(name string, data []byte) (*Document, error) {
	ctx, err := pdfapi.ReadContext(bytes.NewReader(data), configuration())
	if err != nil {
		return nil, &LoadError{Name: name, Cause: err}
	}
	if err := pdfapi.ValidateContext(ctx); err != nil {
		return nil, &LoadError{Name: name, Cause: err}
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, &LoadError{Name: name, Cause: err}
	}
	if ctx.PageCount < 1 {
		return nil, &LoadError{Name: name, Cause: errors.New("document has no pages")}
	}
	return &Document{Name: name, data: data, ctx: ctx}, nil
}

func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Bytes returns the serialized document.
func (d *Document) Bytes() []byte {
	return d.data
}

// PageSize returns the visible width and height of page pageNr (1-based),
// taking the crop box and page rotation into account.
func (d *Document) PageSize(pageNr int) (width, height float64, err error) {
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return 0, 0, fmt.Errorf("page %d out of range 1-%d", pageNr, d.ctx.PageCount)
	}
	_, _, inh, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return 0, 0, err
	}
	if inh == nil {
		return 0, 0, fmt.Errorf("page %d has no inherited attributes", pageNr)
	}

	box := inh.CropBox
	if box == nil {
		box = inh.MediaBox
	}
	if box == nil {
		return 0, 0, fmt.Errorf("page %d has no media box", pageNr)
	}

	width, height = box.Width(), box.Height()
	if inh.Rotate%180 != 0 {
		width, height = height, width
	}
	return width, height, nil
}

// overlayDesc pins the overlay's lower-left corner to the page's lower-left
// corner at its natural size.
const overlayDesc = "position:bl, offset:0 0, scalefactor:1 abs, rotation:0, opacity:1"

// Overlay draws the first page of overlay on top of page pageNr. dir holds
// the temporary overlay file. On success the document is re-read from the
// stamped bytes.
func (d *Document) Overlay(pageNr int, overlay []byte, dir string) error {
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return fmt.Errorf("page %d out of range 1-%d", pageNr, d.ctx.PageCount)
	}

	f, err := os.CreateTemp(dir, "overlay-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create overlay file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(overlay); err != nil {
		f.Close()
		return fmt.Errorf("failed to write overlay file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write overlay file: %w", err)
	}

	wm, err := pdfapi.PDFWatermark(f.Name(), overlayDesc, true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("failed to parse overlay: %w", err)
	}

	var out bytes.Buffer
	pages := []string{strconv.Itoa(pageNr)}
	if err := pdfapi.AddWatermarks(bytes.NewReader(d.data), &out, pages, wm, configuration()); err != nil {
		return fmt.Errorf("failed to apply overlay to page %d: %w", pageNr, err)
	}

	stamped, err := Parse(d.Name, out.Bytes())
	if err != nil {
		return err
	}
	*d = *stamped
	return nil
}

// Concat returns a document holding the pages of docs in order, each
// document's pages in their original order. No documents give an Empty one.
func Concat(docs []*Document) ([]byte, error) {
	switch len(docs) {
	case 0:
		return Empty()
	case 1:
		return docs[0].Bytes(), nil
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d.data)
	}

	var out bytes.Buffer
	if err := pdfapi.MergeRaw(readers, &out, false, configuration()); err != nil {
		return nil, fmt.Errorf("failed to merge PDFs: %w", err)
	}
	return out.Bytes(), nil
}

// Empty returns a valid document with an empty page tree.
func Empty() ([]byte, error) {
	ctx, err := pdfcpu.CreateContextWithXRefTable(configuration(), types.PaperSize["A4"])
	if err != nil {
		return nil, fmt.Errorf("failed to create empty PDF: %w", err)
	}

	var out bytes.Buffer
	if err := pdfapi.WriteContext(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to write empty PDF: %w", err)
	}
	return out.Bytes(), nil
}
