// Package layout computes geometry of the one page slide and produces its
// display list.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"onepaper/config"
	"onepaper/slide"
)

// ErrInvalidGeometry is reported when configured page leaves no room for
// content.
var ErrInvalidGeometry = errors.New("invalid geometry")

// RenderError aborts rendering of the whole page.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Fixed offsets inside section container, centimeters.
const (
	barInsetX     = 0.1
	barInsetY     = 0.15
	barWidth      = 0.15
	labelInset    = 0.4
	bodyInsetR    = 0.2
	bodyInsetB    = 0.2
	flowPadding   = 0.4
	flowInsetTop  = 0.2
	arrowInsetX   = 0.1
	lineWidthNorm = 1.0
)

type renderFunc func(c *canvas, slot Rect, item slide.ContentItem) error

type Engine struct {
	cfg       *config.DocumentConfig
	pal       Palette
	log       *zap.Logger
	renderers map[slide.LayoutType]renderFunc
}

// New creates layout engine. Configuration must be validated already.
func New(cfg *config.DocumentConfig, log *zap.Logger) *Engine {
	e := &Engine{
		cfg: cfg,
		pal: PaletteFor(cfg.ThemeMode),
		log: log.Named("layout"),
	}
	e.renderers = map[slide.LayoutType]renderFunc{
		slide.LayoutTypeText:           e.drawSection,
		slide.LayoutTypeFlowHorizontal: e.drawFlow,
	}
	return e
}

// LegacyRules returns placement rules for slot mapping documents.
func (e *Engine) LegacyRules() slide.LegacyRules {
	rules := slide.LegacyRules{
		RightSlots:   e.cfg.Legacy.RightSlots,
		DefaultLabel: e.cfg.Legacy.DefaultLabel,
	}
	for _, l := range e.cfg.Legacy.Labels {
		rules.Labels = append(rules.Labels, slide.LabelRule{Match: l.Match, Label: l.Label})
	}
	return rules
}

// Title returns text to be used as page title.
func (e *Engine) Title(doc *slide.Document) string {
	if t := strings.TrimSpace(doc.Theme); len(t) > 0 {
		return t
	}
	return e.cfg.Header.DefaultTitle
}

// frame is derived page geometry.
type frame struct {
	contentTop    float64
	contentHeight float64
	columnWidth   float64
	leftX         float64
	rightX        float64
	innerWidth    float64
}

func (e *Engine) frame() (frame, error) {
	p := &e.cfg.Page
	f := frame{
		contentTop: p.Margin + p.HeaderHeight + p.HeaderGutter,
		innerWidth: p.Width - 2*p.Margin,
		leftX:      p.Margin,
	}
	f.contentHeight = p.Height - f.contentTop - p.Margin
	f.columnWidth = (f.innerWidth - p.ColumnGap) / 2
	f.rightX = p.Margin + f.columnWidth + p.ColumnGap

	switch {
	case f.innerWidth <= 0:
		return f, fmt.Errorf("%w: margins leave no width", ErrInvalidGeometry)
	case f.columnWidth <= 0:
		return f, fmt.Errorf("%w: column width %.3f", ErrInvalidGeometry, f.columnWidth)
	case f.contentHeight <= 0:
		return f, fmt.Errorf("%w: content height %.3f", ErrInvalidGeometry, f.contentHeight)
	}
	return f, nil
}

// Layout builds the page. Either complete page or RenderError is returned.
func (e *Engine) Layout(doc *slide.Document) (*Page, error) {
	if doc == nil {
		return nil, &RenderError{Op: "layout", Err: errors.New("no document")}
	}
	f, err := e.frame()
	if err != nil {
		return nil, &RenderError{Op: "page", Err: err}
	}

	c := newCanvas(e.cfg.Page.Width, e.cfg.Page.Height, e.pal.Page)
	e.drawHeader(c, doc, f)

	left, right, dropped := doc.Content.Columns(e.LegacyRules())
	if dropped > 0 {
		e.log.Warn("Some content could not be placed", zap.Int("dropped", dropped))
	}
	e.log.Debug("Columns", zap.Stringer("shape", doc.Content.Shape), zap.Int("left", len(left)), zap.Int("right", len(right)))

	if err := e.layoutColumn(c, Rect{X: f.leftX, Y: f.contentTop, W: f.columnWidth, H: f.contentHeight}, left); err != nil {
		return nil, err
	}
	if err := e.layoutColumn(c, Rect{X: f.rightX, Y: f.contentTop, W: f.columnWidth, H: f.contentHeight}, right); err != nil {
		return nil, err
	}
	return c.page, nil
}

// SlotHeight returns height of each of count equal slots in column.
func SlotHeight(total, gap float64, count int) float64 {
	return (total - float64(count-1)*gap) / float64(count)
}

func (e *Engine) layoutColumn(c *canvas, col Rect, items []slide.ContentItem) error {
	if len(items) == 0 {
		return nil
	}
	gap := e.cfg.Page.BoxGap
	h := SlotHeight(col.H, gap, len(items))
	if h <= 0 {
		return &RenderError{Op: "column", Err: fmt.Errorf("%w: %d items leave slot height %.3f", ErrInvalidGeometry, len(items), h)}
	}

	y := col.Y
	for i, item := range items {
		draw, ok := e.renderers[item.Layout]
		if !ok {
			draw = e.drawSection
		}
		if err := draw(c, Rect{X: col.X, Y: y, W: col.W, H: h}, item); err != nil {
			return &RenderError{Op: fmt.Sprintf("item %d", i), Err: err}
		}
		y += h + gap
	}
	return nil
}

func (e *Engine) drawHeader(c *canvas, doc *slide.Document, f frame) {
	p, hdr := &e.cfg.Page, &e.cfg.Header
	title := e.Title(doc)

	c.add(Shape{
		Kind: KindTextBox,
		Box:  Rect{X: p.Margin, Y: p.Margin, W: f.innerWidth, H: hdr.TitleBoxHeight},
		Text: &TextFrame{Paragraphs: []Paragraph{{
			Runs: []Run{{Text: title, Font: e.cfg.Fonts.Bold, Size: TitleFontSize(title, hdr), Bold: true, Color: e.pal.Main}},
		}}},
	})

	sub := Paragraph{}
	if len(doc.Department) > 0 {
		sub.Runs = []Run{{Text: doc.Department, Font: e.cfg.Fonts.Body, Size: hdr.SubtitleSize, Color: e.pal.Muted}}
	}
	c.add(Shape{
		Kind: KindTextBox,
		Box:  Rect{X: p.Margin, Y: p.Margin + hdr.TitleBoxHeight, W: f.innerWidth, H: hdr.SubtitleBoxHeight},
		Text: &TextFrame{Paragraphs: []Paragraph{sub}},
	})

	accent := e.pal.Accent
	c.add(Shape{
		Kind: KindRect,
		Box:  Rect{X: p.Margin, Y: p.Margin + p.HeaderHeight, W: f.innerWidth, H: hdr.RuleThickness},
		Fill: &accent,
	})
}

// drawContainer draws bordered box with accent bar and label which both
// section and flow share.
func (e *Engine) drawContainer(c *canvas, slot Rect, label string) {
	hh := e.cfg.Section.HeaderHeight
	card, main := e.pal.Card, e.pal.Main

	c.add(Shape{
		Kind: KindRect,
		Box:  slot,
		Fill: &card,
		Line: &Line{Color: e.pal.Border, Width: lineWidthNorm},
	})
	c.add(Shape{
		Kind: KindRect,
		Box:  Rect{X: slot.X + barInsetX, Y: slot.Y + barInsetY, W: barWidth, H: hh - 2*barInsetY},
		Fill: &main,
	})
	c.add(Shape{
		Kind: KindTextBox,
		Box:  Rect{X: slot.X + labelInset, Y: slot.Y, W: slot.W - labelInset, H: hh},
		Text: &TextFrame{
			Anchor: AnchorMiddle,
			Paragraphs: []Paragraph{{
				Align: AlignLeft,
				Runs:  []Run{{Text: label, Font: e.cfg.Fonts.Bold, Size: e.cfg.Section.LabelSize, Bold: true, Color: e.pal.Main}},
			}},
		},
	})
}

func (e *Engine) drawSection(c *canvas, slot Rect, item slide.ContentItem) error {
	e.drawContainer(c, slot, item.Label)

	hh := e.cfg.Section.HeaderHeight
	c.add(Shape{
		Kind: KindTextBox,
		Box:  Rect{X: slot.X + labelInset, Y: slot.Y + hh, W: slot.W - labelInset - bodyInsetR, H: slot.H - hh - bodyInsetB},
		Text: &TextFrame{
			Wrap:       true,
			Anchor:     AnchorTop,
			Paragraphs: e.paragraphs(item.Text, BodyFontSize(item.Text, &e.cfg.Section)),
		},
	})
	return nil
}

func (e *Engine) drawFlow(c *canvas, slot Rect, item slide.ContentItem) error {
	flow := &e.cfg.Flow
	hh := e.cfg.Section.HeaderHeight

	steps := Steps(item.Text)
	if len(steps) > flow.MaxSteps {
		e.log.Debug("Too many flow steps, extra dropped", zap.String("label", item.Label), zap.Int("steps", len(steps)))
		steps = steps[:flow.MaxSteps]
	}
	area := Rect{
		X: slot.X + flowPadding,
		Y: slot.Y + hh + flowInsetTop,
		W: slot.W - 2*flowPadding,
		H: slot.H - hh - 2*flowInsetTop,
	}
	n := len(steps)
	arrows := flow.ArrowWidth * float64(max(n-1, 0))
	if n > 0 && arrows >= area.W {
		e.log.Debug("No room for flow diagram, drawing as text", zap.String("label", item.Label), zap.Float64("width", area.W))
		return e.drawSection(c, slot, item)
	}

	e.drawContainer(c, slot, item.Label)
	if n == 0 {
		return nil
	}

	boxW := (area.W - arrows) / float64(n)
	fill, accent := e.pal.StepFill, e.pal.Accent
	x := area.X
	for i, step := range steps {
		box := Rect{X: x, Y: area.Y, W: boxW, H: area.H}
		c.add(Shape{
			Kind: KindRoundRect,
			Box:  box,
			Fill: &fill,
			Line: &Line{Color: e.pal.Main, Width: lineWidthNorm},
			Text: &TextFrame{
				Wrap:   true,
				Anchor: AnchorMiddle,
				Paragraphs: []Paragraph{{
					Align: AlignCenter,
					Runs:  []Run{{Text: step, Font: e.cfg.Fonts.Body, Size: flow.StepFontSize, Color: e.pal.Text}},
				}},
			},
		})
		x = box.Right()
		if i < n-1 {
			c.add(Shape{
				Kind: KindRightArrow,
				Box: Rect{
					X: x + arrowInsetX,
					Y: area.Y + area.H/2 - flow.ArrowHeight/2,
					W: flow.ArrowWidth - 2*arrowInsetX,
					H: flow.ArrowHeight,
				},
				Fill: &accent,
			})
			x += flow.ArrowWidth
		}
	}
	return nil
}

// canvas accumulates shapes assigning them ids and names.
type canvas struct {
	page *Page
}

func newCanvas(w, h float64, bg Color) *canvas {
	return &canvas{page: &Page{Width: w, Height: h, Background: bg, Shapes: []Shape{}}}
}

func (c *canvas) add(s Shape) {
	// id 1 belongs to the slide shape tree
	s.ID = len(c.page.Shapes) + 2
	s.Name = fmt.Sprintf("%s %d", s.Kind, s.ID-1)
	s.Box.W, s.Box.H = max(s.Box.W, 0), max(s.Box.H, 0)
	c.page.Shapes = append(c.page.Shapes, s)
}
