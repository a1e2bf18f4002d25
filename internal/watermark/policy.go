package watermark

// PositionClass locates a document within the merge sequence.
type PositionClass int

const (
	Interior PositionClass = iota
	First
	Last
	// Sole is a document that is both first and last.
	Sole
)

func (c PositionClass) String() string {
	switch c {
	case First:
		return "first"
	case Last:
		return "last"
	case Sole:
		return "sole"
	default:
		return "interior"
	}
}

// Classify returns the class of the document at 0-based index out of total.
func Classify(index, total int) PositionClass {
	switch {
	case total == 1:
		return Sole
	case index == 0:
		return First
	case index == total-1:
		return Last
	default:
		return Interior
	}
}

// PageSelector names the page of a document that receives stamps.
type PageSelector int

const (
	NoPage PageSelector = iota
	LastPage
	FirstPage
)

// Page returns the 1-based page number for a document with pageCount pages.
func (s PageSelector) Page(pageCount int) (int, bool) {
	if pageCount < 1 {
		return 0, false
	}
	switch s {
	case LastPage:
		return pageCount, true
	case FirstPage:
		return 1, true
	default:
		return 0, false
	}
}

// Anchor tells how a slot's X is resolved against the page width.
type Anchor int

const (
	// AnchorLeft puts the stamp's left edge at Slot.X.
	AnchorLeft Anchor = iota
	// AnchorCenter centers the stamp horizontally; Slot.X is ignored.
	AnchorCenter
)

// Slot is one stamp position in a layout.
type Slot struct {
	Anchor Anchor
	X      float64
}

// Layout lists the slots used for a given number of signatures. Signature i
// goes into slot i.
type Layout []Slot

// Placement is a resolved stamp rectangle in page space, origin bottom-left.
type Placement struct {
	X, Y          float64
	Width, Height float64
	Text          string
}

const (
	StampWidth  = 200
	StampHeight = 50
	StampY      = 50
)

// Policy is the stamping decision table. Pages maps a position class to the
// stamped page; Layouts maps a signature count to its slots. Combinations
// missing from either table draw nothing.
type Policy struct {
	Pages   map[PositionClass]PageSelector
	Layouts map[int]Layout

	StampWidth  float64
	StampHeight float64
	StampY      float64

	Labels Labels
}

// DefaultPolicy stamps the last page of the first and last documents with
// one centered stamp or two side-by-side stamps.
func DefaultPolicy(labels Labels) *Policy {
	return &Policy{
		Pages: map[PositionClass]PageSelector{
			Sole:  LastPage,
			First: LastPage,
			Last:  LastPage,
		},
		Layouts: map[int]Layout{
			1: {{Anchor: AnchorCenter}},
			2: {{Anchor: AnchorLeft, X: 50}, {Anchor: AnchorLeft, X: 300}},
		},
		StampWidth:  StampWidth,
		StampHeight: StampHeight,
		StampY:      StampY,
		Labels:      labels,
	}
}

// Validate checks every signature the policy would render. Signature lists
// with no layout are never rendered and always pass.
func (p *Policy) Validate(sigs []SignatureInfo) error {
	if _, ok := p.Layouts[len(sigs)]; !ok {
		return nil
	}
	for i, sig := range sigs {
		if err := sig.Validate(i); err != nil {
			return err
		}
	}
	return nil
}

// Plan is the stamping decision for one document.
type Plan struct {
	Page   PageSelector
	slots  Layout
	texts  []string
	width  float64
	height float64
	y      float64
}

// Empty reports whether the plan draws nothing.
func (pl Plan) Empty() bool {
	return pl.Page == NoPage || len(pl.slots) == 0
}

// Placements resolves the plan against the target page width.
func (pl Plan) Placements(pageWidth float64) []Placement {
	if pl.Empty() {
		return nil
	}
	out := make([]Placement, 0, len(pl.slots))
	for i, slot := range pl.slots {
		x := slot.X
		if slot.Anchor == AnchorCenter {
			x = (pageWidth - pl.width) / 2
		}
		out = append(out, Placement{
			X:      x,
			Y:      pl.y,
			Width:  pl.width,
			Height: pl.height,
			Text:   pl.texts[i],
		})
	}
	return out
}

// Plan decides the stamps for the document at index out of total.
func (p *Policy) Plan(index, total int, sigs []SignatureInfo) (Plan, error) {
	page := p.Pages[Classify(index, total)]
	layout, ok := p.Layouts[len(sigs)]
	if page == NoPage || !ok {
		return Plan{}, nil
	}
	if err := p.Validate(sigs); err != nil {
		return Plan{}, err
	}

	texts := make([]string, len(sigs))
	for i, sig := range sigs {
		texts[i] = Text(sig, p.Labels)
	}
	return Plan{
		Page:   page,
		slots:  layout,
		texts:  texts,
		width:  p.StampWidth,
		height: p.StampHeight,
		y:      p.StampY,
	}, nil
}
