// Package pdftest builds small PDF fixtures for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// StampMarker opens the marked content pdfcpu writes around an applied
// overlay.
const StampMarker = "/Subtype /Watermark"

// A4 page size in points.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// Document returns a PDF with n pages of the given size. Each page shows
// its label and page number.
func Document(t testing.TB, label string, n int, width, height float64) []byte {
	t.Helper()

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetFont("Helvetica", "", 14)
	for i := 1; i <= n; i++ {
		doc.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
		doc.Text(40, 60, fmt.Sprintf("%s page %d", label, i))
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("failed to build fixture %s: %v", label, err)
	}
	return buf.Bytes()
}

// A4 returns an A4 document with n pages.
func A4(t testing.TB, label string, n int) []byte {
	t.Helper()
	return Document(t, label, n, A4Width, A4Height)
}

// PageContents returns the decoded content stream of every page of data.
func PageContents(t testing.TB, data []byte) []string {
	t.Helper()

	pdfapi.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := pdfapi.ReadAndValidate(bytes.NewReader(data), conf)
	if err != nil {
		t.Fatalf("failed to read PDF: %v", err)
	}

	out := make([]string, ctx.PageCount)
	for i := range out {
		r, err := pdfcpu.ExtractPageContent(ctx, i+1)
		if err != nil {
			t.Fatalf("failed to extract page %d: %v", i+1, err)
		}
		b, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("failed to read page %d: %v", i+1, err)
		}
		out[i] = string(b)
	}
	return out
}

var labelRE = regexp.MustCompile(`\(([^()]* page \d+)\) Tj`)

// PageLabels returns the label Document printed on every page of data, in
// page order. Pages without one yield "".
func PageLabels(t testing.TB, data []byte) []string {
	t.Helper()

	contents := PageContents(t, data)
	labels := make([]string, len(contents))
	for i, c := range contents {
		if m := labelRE.FindStringSubmatch(c); m != nil {
			labels[i] = m[1]
		}
	}
	return labels
}

// StampedPages returns the 1-based numbers of the pages carrying an overlay.
func StampedPages(t testing.TB, data []byte) []int {
	t.Helper()

	var pages []int
	for i, c := range PageContents(t, data) {
		if strings.Contains(c, StampMarker) {
			pages = append(pages, i+1)
		}
	}
	return pages
}
