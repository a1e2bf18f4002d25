package pdf

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Gray is the color used for stamps and annotations.
var Gray = Color{R: 0.75, G: 0.75, B: 0.75}

func (c Color) rgb() (int, int, int) {
	to255 := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return to255(c.R), to255(c.G), to255(c.B)
}

// Rect is a rectangle in page space, origin bottom-left.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// TextStyle controls DrawText. A zero MaxWidth disables wrapping; a zero
// LineHeight uses 1.2 times Size.
type TextStyle struct {
	Size       float64
	LineHeight float64
	MaxWidth   float64
	Color      Color
}

// Surface is a page that can be drawn on, in page space with the origin at
// the bottom-left corner.
type Surface interface {
	Size() (width, height float64)
	StrokeRect(r Rect, c Color, lineWidth float64)
	// DrawText draws text with the first baseline at (x, y). Newlines and
	// wrapping move following lines down by the line height.
	DrawText(x, y float64, text string, style TextStyle)
}

// Canvas renders a single transparent overlay page with gofpdf.
type Canvas struct {
	doc    *gofpdf.Fpdf
	width  float64
	height float64
}

// NewCanvas starts an overlay page of the given size using font for text.
func NewCanvas(width, height float64, font Font) *Canvas {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetCompression(true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCellMargin(0)
	doc.SetCreator("pdf-stamp", true)
	doc.AddUTF8FontFromBytes(font.Family, "", font.Data)
	doc.AddPageFormat("P", gofpdf.SizeType{Wd: width, Ht: height})
	doc.SetFont(font.Family, "", 12)

	return &Canvas{doc: doc, width: width, height: height}
}

func (c *Canvas) Size() (float64, float64) {
	return c.width, c.height
}

func (c *Canvas) StrokeRect(r Rect, col Color, lineWidth float64) {
	c.doc.SetDrawColor(col.rgb())
	c.doc.SetLineWidth(lineWidth)
	// gofpdf measures y from the top edge to the rectangle's top side.
	c.doc.Rect(r.X, c.height-r.Y-r.Height, r.Width, r.Height, "D")
}

func (c *Canvas) DrawText(x, y float64, text string, style TextStyle) {
	if style.Size <= 0 {
		return
	}
	lineHeight := style.LineHeight
	if lineHeight <= 0 {
		lineHeight = style.Size * 1.2
	}

	c.doc.SetFontSize(style.Size)
	c.doc.SetTextColor(style.Color.rgb())

	for i, line := range c.lines(text, style.MaxWidth) {
		if line == "" {
			continue
		}
		baseline := y - float64(i)*lineHeight
		c.doc.Text(x, c.height-baseline, line)
	}
}

// lines splits text on newlines and, when maxWidth > 0, wraps each
// paragraph with the current font.
func (c *Canvas) lines(text string, maxWidth float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if maxWidth <= 0 || para == "" {
			out = append(out, para)
			continue
		}
		wrapped := c.doc.SplitText(para, maxWidth)
		if len(wrapped) == 0 {
			wrapped = []string{para}
		}
		out = append(out, wrapped...)
	}
	return out
}

// Bytes finishes the page and returns the overlay PDF.
func (c *Canvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render overlay: %w", err)
	}
	return buf.Bytes(), nil
}
