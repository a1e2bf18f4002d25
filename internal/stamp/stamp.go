// Package stamp draws signature stamps: a thin bordered box with small-print
// text, positioned by a watermark.Placement.
package stamp

import (
	"pdf-stamp/internal/pdf"
	"pdf-stamp/internal/watermark"
)

// Renderer holds the stamp's visual constants.
type Renderer struct {
	Color       pdf.Color
	BorderWidth float64
	FontSize    float64
	LineHeight  float64
	// Padding is the horizontal inset of the text on both sides.
	Padding float64
	// BorderDrop moves the border below the placement's Y.
	BorderDrop float64
	// TextRise puts the first baseline above the placement's Y.
	TextRise float64
}

func NewRenderer() *Renderer {
	return &Renderer{
		Color:       pdf.Gray,
		BorderWidth: 1,
		FontSize:    5,
		LineHeight:  10,
		Padding:     10,
		BorderDrop:  10,
		TextRise:    30,
	}
}

// Draw renders one stamp onto s.
func (r *Renderer) Draw(s pdf.Surface, p watermark.Placement) {
	s.StrokeRect(pdf.Rect{
		X:      p.X,
		Y:      p.Y - r.BorderDrop,
		Width:  p.Width,
		Height: p.Height,
	}, r.Color, r.BorderWidth)

	s.DrawText(p.X+r.Padding, p.Y+r.TextRise, p.Text, pdf.TextStyle{
		Size:       r.FontSize,
		LineHeight: r.LineHeight,
		MaxWidth:   p.Width - 2*r.Padding,
		Color:      r.Color,
	})
}

// DrawAll renders placements in order.
func (r *Renderer) DrawAll(s pdf.Surface, placements []watermark.Placement) {
	for _, p := range placements {
		r.Draw(s, p)
	}
}
