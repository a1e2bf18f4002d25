package stamp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf-stamp/internal/pdf"
	"pdf-stamp/internal/watermark"
)

type rectCall struct {
	rect  pdf.Rect
	color pdf.Color
	width float64
}

type textCall struct {
	x, y  float64
	text  string
	style pdf.TextStyle
}

type recorder struct {
	width, height float64
	rects         []rectCall
	texts         []textCall
}

func (r *recorder) Size() (float64, float64) { return r.width, r.height }

func (r *recorder) StrokeRect(rect pdf.Rect, c pdf.Color, w float64) {
	r.rects = append(r.rects, rectCall{rect, c, w})
}

func (r *recorder) DrawText(x, y float64, text string, style pdf.TextStyle) {
	r.texts = append(r.texts, textCall{x, y, text, style})
}

func TestDraw_Geometry(t *testing.T) {
	rec := &recorder{width: 595, height: 842}
	NewRenderer().Draw(rec, watermark.Placement{X: 197.5, Y: 50, Width: 200, Height: 50, Text: "hello"})

	require.Len(t, rec.rects, 1)
	assert.Equal(t, pdf.Rect{X: 197.5, Y: 40, Width: 200, Height: 50}, rec.rects[0].rect)
	assert.Equal(t, pdf.Gray, rec.rects[0].color)
	assert.Equal(t, 1.0, rec.rects[0].width)

	require.Len(t, rec.texts, 1)
	text := rec.texts[0]
	assert.Equal(t, 207.5, text.x)
	assert.Equal(t, 80.0, text.y)
	assert.Equal(t, "hello", text.text)
	assert.Equal(t, pdf.TextStyle{Size: 5, LineHeight: 10, MaxWidth: 180, Color: pdf.Gray}, text.style)
}

func TestDrawAll_FromPolicy(t *testing.T) {
	sigs := []watermark.SignatureInfo{
		{CertificateNumber: "1", Owner: "A", Validity: "2030-01-01"},
		{CertificateNumber: "2", Owner: "B", Validity: "bad"},
	}
	plan, err := watermark.DefaultPolicy(watermark.English).Plan(0, 2, sigs)
	require.NoError(t, err)

	rec := &recorder{width: 612, height: 792}
	NewRenderer().DrawAll(rec, plan.Placements(rec.width))

	require.Len(t, rec.rects, 2)
	assert.Equal(t, 50.0, rec.rects[0].rect.X)
	assert.Equal(t, 300.0, rec.rects[1].rect.X)
	assert.Contains(t, rec.texts[1].text, "date not specified")
}

func TestDraw_OnCanvas(t *testing.T) {
	canvas := pdf.NewCanvas(595, 842, pdf.DefaultFont())
	NewRenderer().Draw(canvas, watermark.Placement{X: 197.5, Y: 50, Width: 200, Height: 50,
		Text: watermark.Text(watermark.SignatureInfo{CertificateNumber: "01AB", Owner: "Иванов И.И.", Validity: "2030-05-17"}, watermark.Russian)})

	out, err := canvas.Bytes()
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
