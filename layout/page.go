package layout

import (
	"fmt"

	"onepaper/utils/debug"
)

// Page is a display list: everything package writer needs to know to produce
// the slide. All distances are in centimeters, font sizes and line widths in
// points.
type Page struct {
	Width      float64
	Height     float64
	Background Color
	Shapes     []Shape
}

type Rect struct {
	X, Y, W, H float64
}

// Right is x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

type Color struct {
	R, G, B uint8
}

// Hex returns color in the form used by OOXML srgbClr.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

type Kind int

const (
	KindTextBox Kind = iota
	KindRect
	KindRoundRect
	KindRightArrow
)

func (k Kind) String() string {
	switch k {
	case KindTextBox:
		return "TextBox"
	case KindRect:
		return "Rectangle"
	case KindRoundRect:
		return "Rounded Rectangle"
	case KindRightArrow:
		return "Right Arrow"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
)

type Anchor int

const (
	AnchorDefault Anchor = iota
	AnchorTop
	AnchorMiddle
)

type Line struct {
	Color Color
	Width float64
}

type Run struct {
	Text  string
	Font  string
	Size  float64
	Bold  bool
	Color Color
}

type Paragraph struct {
	Align Align
	// LineSpacing is a multiple of single line, 0 means default.
	LineSpacing float64
	// SpaceAfter is in points.
	SpaceAfter float64
	Runs       []Run
}

type TextFrame struct {
	Wrap       bool
	Anchor     Anchor
	Paragraphs []Paragraph
}

// Shape is a single drawing object. Nil Fill or Line means none.
type Shape struct {
	ID   int
	Name string
	Kind Kind
	Box  Rect
	Fill *Color
	Line *Line
	Text *TextFrame
}

// Dump returns readable tree of the page for debug reports.
func (p *Page) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Page %gx%g background=%s shapes=%d", p.Width, p.Height, p.Background.Hex(), len(p.Shapes))
	for _, s := range p.Shapes {
		tw.Line(1, "Shape id=%d name=%q", s.ID, s.Name)
		tw.Number(2, "x", s.Box.X)
		tw.Number(2, "y", s.Box.Y)
		tw.Number(2, "w", s.Box.W)
		tw.Number(2, "h", s.Box.H)
		if s.Fill != nil {
			tw.Line(2, "fill: %s", s.Fill.Hex())
		}
		if s.Line != nil {
			tw.Line(2, "line: %s %gpt", s.Line.Color.Hex(), s.Line.Width)
		}
		if s.Text == nil {
			continue
		}
		tw.Line(2, "text wrap=%t anchor=%d", s.Text.Wrap, s.Text.Anchor)
		for _, para := range s.Text.Paragraphs {
			tw.Line(3, "paragraph align=%d spacing=%g after=%g", para.Align, para.LineSpacing, para.SpaceAfter)
			for _, r := range para.Runs {
				tw.TextBlock(4, fmt.Sprintf("run %gpt bold=%t %s", r.Size, r.Bold, r.Color.Hex()), r.Text)
			}
		}
	}
	return tw.String()
}
