package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"onepaper/config"
	"onepaper/layout"
	"onepaper/slide"
	"onepaper/state"
)

var testModified = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (context.Context, *state.LocalEnv, *zap.Logger) {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env, logger
}

func samplePage(t *testing.T, cfg *config.DocumentConfig, log *zap.Logger) *layout.Page {
	t.Helper()
	doc := &slide.Document{
		Theme:      "Quarterly plan",
		Department: "Planning",
		Content: slide.Content{Shape: slide.ShapeItems, Items: []slide.ContentItem{
			{Column: slide.ColumnLeft, Label: "Background", Text: "- first **point**\n- second"},
			{Column: slide.ColumnRight, Label: "Steps", Text: "Plan\nDo\nCheck", Layout: slide.LayoutTypeFlowHorizontal},
		}},
	}
	page, err := layout.New(cfg, log).Layout(doc)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	return page
}

func writePackage(t *testing.T, page *layout.Page, cfg *config.DocumentConfig) []byte {
	t.Helper()
	var buf bytes.Buffer
	meta := Meta{Title: "Quarterly plan", Subject: "Planning", Description: "analysis", Modified: testModified}
	if err := Write(&buf, page, meta, cfg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return buf.Bytes()
}

func openPackage(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) *etree.Document {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		return doc
	}
	t.Fatalf("part %s not found", name)
	return nil
}

func TestUnits(t *testing.T) {
	if got := cmToEMU(42); got != 15120000 {
		t.Errorf("cmToEMU(42) = %d, want 15120000", got)
	}
	if got := cmToEMU(29.7); got != 10692000 {
		t.Errorf("cmToEMU(29.7) = %d, want 10692000", got)
	}
	if got := ptToEMU(1); got != 12700 {
		t.Errorf("ptToEMU(1) = %d, want 12700", got)
	}
	if got := fontSize(10.5); got != "1050" {
		t.Errorf("fontSize(10.5) = %s, want 1050", got)
	}
	if got := percent(1.2); got != "120000" {
		t.Errorf("percent(1.2) = %s, want 120000", got)
	}
}

func TestWrite_Parts(t *testing.T) {
	_, env, log := setupTestContext(t)
	cfg := &env.Cfg.Document
	zr := openPackage(t, writePackage(t, samplePage(t, cfg, log), cfg))

	want := []string{
		partContentTypes, partRootRels, partCore, partApp, partPresentation, partPresRels,
		partMaster, partMasterRels, partLayout, partLayoutRels, partTheme, partSlide, partSlideRels,
	}
	if len(zr.File) != len(want) {
		t.Fatalf("got %d entries, want %d", len(zr.File), len(want))
	}
	for i, f := range zr.File {
		if f.Name != want[i] {
			t.Errorf("entry %d = %s, want %s", i, f.Name, want[i])
		}
		if !f.Modified.Equal(testModified) {
			t.Errorf("entry %s modified = %v, want %v", f.Name, f.Modified, testModified)
		}
	}

	ct := readPart(t, zr, partContentTypes)
	overrides := ct.FindElements("//Override")
	if len(overrides) != 7 {
		t.Errorf("got %d content type overrides, want 7", len(overrides))
	}
	for _, o := range overrides {
		name := strings.TrimPrefix(o.SelectAttrValue("PartName", ""), "/")
		found := false
		for _, f := range zr.File {
			found = found || f.Name == name
		}
		if !found {
			t.Errorf("override for missing part %s", name)
		}
	}

	rels := readPart(t, zr, partRootRels)
	if el := rels.FindElement("//Relationship[@Id='rId1']"); el == nil || el.SelectAttrValue("Target", "") != partPresentation {
		t.Errorf("root relationship does not point to presentation")
	}
}

func TestWrite_Presentation(t *testing.T) {
	_, env, log := setupTestContext(t)
	cfg := &env.Cfg.Document
	zr := openPackage(t, writePackage(t, samplePage(t, cfg, log), cfg))

	pres := readPart(t, zr, partPresentation)
	sz := pres.FindElement("//p:sldSz")
	if sz == nil {
		t.Fatal("p:sldSz not found")
	}
	if cx, cy := sz.SelectAttrValue("cx", ""), sz.SelectAttrValue("cy", ""); cx != "15120000" || cy != "10692000" {
		t.Errorf("slide size = %sx%s, want 15120000x10692000", cx, cy)
	}
	if id := pres.FindElement("//p:sldId"); id == nil || id.SelectAttrValue("r:id", "") != "rId2" {
		t.Errorf("slide id does not reference rId2")
	}

	theme := readPart(t, zr, partTheme)
	if el := theme.FindElement("//a:clrScheme/a:accent2/a:srgbClr"); el == nil || el.SelectAttrValue("val", "") != "DAA520" {
		t.Errorf("accent2 color is not taken from palette")
	}
	if el := theme.FindElement("//a:minorFont/a:ea"); el == nil || el.SelectAttrValue("typeface", "") != cfg.Fonts.Body {
		t.Errorf("minor east asian font is not %q", cfg.Fonts.Body)
	}
}

func TestWrite_Core(t *testing.T) {
	_, env, log := setupTestContext(t)
	cfg := &env.Cfg.Document
	zr := openPackage(t, writePackage(t, samplePage(t, cfg, log), cfg))

	core := readPart(t, zr, partCore)
	checks := map[string]string{
		"//dc:title":         "Quarterly plan",
		"//dc:subject":       "Planning",
		"//dc:description":   "analysis",
		"//dc:creator":       "onepaper",
		"//dcterms:modified": "2026-10-19T09:30:00Z",
	}
	for path, want := range checks {
		el := core.FindElement(path)
		if el == nil {
			t.Errorf("%s not found", path)
			continue
		}
		if el.Text() != want {
			t.Errorf("%s = %q, want %q", path, el.Text(), want)
		}
	}
	id := core.FindElement("//dc:identifier")
	if id == nil || !strings.HasPrefix(id.Text(), "urn:uuid:") {
		t.Fatalf("identifier is missing or malformed")
	}
	meta := Meta{Title: "Quarterly plan", Modified: testModified}
	if want := "urn:uuid:" + meta.identifier().String(); id.Text() != want {
		t.Errorf("identifier = %s, want %s", id.Text(), want)
	}
}

func TestWrite_Slide(t *testing.T) {
	_, env, log := setupTestContext(t)
	cfg := &env.Cfg.Document
	page := samplePage(t, cfg, log)
	zr := openPackage(t, writePackage(t, page, cfg))

	sld := readPart(t, zr, partSlide)
	shapes := sld.FindElements("//p:spTree/p:sp")
	if len(shapes) != len(page.Shapes) {
		t.Fatalf("got %d shapes, want %d", len(shapes), len(page.Shapes))
	}
	if bg := sld.FindElement("//p:bg/p:bgPr/a:solidFill/a:srgbClr"); bg == nil || bg.SelectAttrValue("val", "") != page.Background.Hex() {
		t.Errorf("background color does not match page")
	}

	for i, sp := range shapes {
		s := page.Shapes[i]
		cNvPr := sp.FindElement("p:nvSpPr/p:cNvPr")
		if cNvPr.SelectAttrValue("id", "") != itoa(int64(s.ID)) || cNvPr.SelectAttrValue("name", "") != s.Name {
			t.Errorf("shape %d: id/name do not match", i)
		}
		off := sp.FindElement("p:spPr/a:xfrm/a:off")
		ext := sp.FindElement("p:spPr/a:xfrm/a:ext")
		if off.SelectAttrValue("x", "") != itoa(cmToEMU(s.Box.X)) || off.SelectAttrValue("y", "") != itoa(cmToEMU(s.Box.Y)) {
			t.Errorf("shape %d: offset does not match box", i)
		}
		if ext.SelectAttrValue("cx", "") != itoa(cmToEMU(s.Box.W)) || ext.SelectAttrValue("cy", "") != itoa(cmToEMU(s.Box.H)) {
			t.Errorf("shape %d: extent does not match box", i)
		}
		if got := sp.FindElement("p:spPr/a:prstGeom").SelectAttrValue("prst", ""); got != presetOf(s.Kind) {
			t.Errorf("shape %d: preset = %s, want %s", i, got, presetOf(s.Kind))
		}
		if (sp.FindElement("p:txBody") != nil) != (s.Text != nil) {
			t.Errorf("shape %d: text body presence mismatch", i)
		}
	}

	// bold markup in the left section body
	var bold []string
	for _, r := range sld.FindElements("//a:r") {
		if r.FindElement("a:rPr").SelectAttrValue("b", "") == "1" {
			bold = append(bold, r.FindElement("a:t").Text())
		}
	}
	found := false
	for _, b := range bold {
		found = found || b == "point"
	}
	if !found {
		t.Errorf("bold run %q not found among %q", "point", bold)
	}
}

func TestWriteShape(t *testing.T) {
	fill := layout.Color{R: 1, G: 2, B: 3}
	tests := []struct {
		name      string
		shape     layout.Shape
		prst      string
		txBox     bool
		noFill    bool
		noLine    bool
		lineWidth string
		adj       bool
	}{
		{
			name:   "text box",
			shape:  layout.Shape{ID: 2, Name: "TextBox 1", Kind: layout.KindTextBox, Text: &layout.TextFrame{}},
			prst:   "rect",
			txBox:  true,
			noFill: true,
			noLine: true,
		},
		{
			name:      "bordered rectangle",
			shape:     layout.Shape{ID: 3, Name: "Rectangle 2", Kind: layout.KindRect, Fill: &fill, Line: &layout.Line{Color: fill, Width: 1}},
			prst:      "rect",
			lineWidth: "12700",
		},
		{
			name:   "rounded",
			shape:  layout.Shape{ID: 4, Name: "Rounded Rectangle 3", Kind: layout.KindRoundRect, Fill: &fill},
			prst:   "roundRect",
			noLine: true,
			adj:    true,
		},
		{
			name:   "arrow",
			shape:  layout.Shape{ID: 5, Name: "Right Arrow 4", Kind: layout.KindRightArrow, Fill: &fill},
			prst:   "rightArrow",
			noLine: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := etree.NewElement("p:spTree")
			writeShape(tree, &tt.shape)
			sp := tree.FindElement("p:sp")

			if got := sp.FindElement("p:spPr/a:prstGeom").SelectAttrValue("prst", ""); got != tt.prst {
				t.Errorf("prst = %s, want %s", got, tt.prst)
			}
			if got := sp.FindElement("p:nvSpPr/p:cNvSpPr").SelectAttrValue("txBox", "") == "1"; got != tt.txBox {
				t.Errorf("txBox = %t, want %t", got, tt.txBox)
			}
			if got := sp.FindElement("p:spPr/a:noFill") != nil; got != tt.noFill {
				t.Errorf("noFill = %t, want %t", got, tt.noFill)
			}
			if !tt.noFill {
				if got := sp.FindElement("p:spPr/a:solidFill/a:srgbClr").SelectAttrValue("val", ""); got != "010203" {
					t.Errorf("fill = %s, want 010203", got)
				}
			}
			if got := sp.FindElement("p:spPr/a:ln/a:noFill") != nil; got != tt.noLine {
				t.Errorf("line noFill = %t, want %t", got, tt.noLine)
			}
			if got := sp.FindElement("p:spPr/a:ln").SelectAttrValue("w", ""); got != tt.lineWidth {
				t.Errorf("line width = %q, want %q", got, tt.lineWidth)
			}
			if got := sp.FindElement("p:spPr/a:prstGeom/a:avLst/a:gd") != nil; got != tt.adj {
				t.Errorf("adjust guide = %t, want %t", got, tt.adj)
			}
		})
	}
}

func TestWriteTextBody(t *testing.T) {
	t.Run("empty frame still has paragraph", func(t *testing.T) {
		sp := etree.NewElement("p:sp")
		writeTextBody(sp, &layout.TextFrame{})
		ps := sp.FindElements("p:txBody/a:p")
		if len(ps) != 1 || len(ps[0].ChildElements()) != 0 {
			t.Errorf("expected single empty paragraph, got %d", len(ps))
		}
		if got := sp.FindElement("p:txBody/a:bodyPr").SelectAttrValue("wrap", ""); got != "none" {
			t.Errorf("wrap = %s, want none", got)
		}
	})

	t.Run("paragraph properties", func(t *testing.T) {
		sp := etree.NewElement("p:sp")
		writeTextBody(sp, &layout.TextFrame{
			Wrap:   true,
			Anchor: layout.AnchorMiddle,
			Paragraphs: []layout.Paragraph{{
				Align:       layout.AlignCenter,
				LineSpacing: 1.2,
				SpaceAfter:  6,
				Runs:        []layout.Run{{Text: "A & <B>", Font: "Meiryo UI", Size: 14, Bold: true}},
			}},
		})
		bodyPr := sp.FindElement("p:txBody/a:bodyPr")
		if bodyPr.SelectAttrValue("wrap", "") != "square" || bodyPr.SelectAttrValue("anchor", "") != "ctr" {
			t.Errorf("unexpected body properties")
		}
		pPr := sp.FindElement("p:txBody/a:p/a:pPr")
		if pPr == nil || pPr.SelectAttrValue("algn", "") != "ctr" {
			t.Fatalf("paragraph alignment missing")
		}
		if got := pPr.FindElement("a:lnSpc/a:spcPct").SelectAttrValue("val", ""); got != "120000" {
			t.Errorf("line spacing = %s, want 120000", got)
		}
		if got := pPr.FindElement("a:spcAft/a:spcPts").SelectAttrValue("val", ""); got != "600" {
			t.Errorf("space after = %s, want 600", got)
		}
		rPr := sp.FindElement("p:txBody/a:p/a:r/a:rPr")
		if rPr.SelectAttrValue("sz", "") != "1400" || rPr.SelectAttrValue("b", "") != "1" {
			t.Errorf("unexpected run properties")
		}
		if got := rPr.FindElement("a:ea").SelectAttrValue("typeface", ""); got != "Meiryo UI" {
			t.Errorf("east asian font = %s", got)
		}
		if got := sp.FindElement("p:txBody/a:p/a:r/a:t").Text(); got != "A & <B>" {
			t.Errorf("text = %q", got)
		}
	})

	t.Run("default paragraph has no properties", func(t *testing.T) {
		sp := etree.NewElement("p:sp")
		writeTextBody(sp, &layout.TextFrame{Paragraphs: []layout.Paragraph{{Runs: []layout.Run{{Text: "x", Size: 10}}}}})
		if sp.FindElement("p:txBody/a:p/a:pPr") != nil {
			t.Errorf("unexpected paragraph properties")
		}
	})
}

func TestWrite_Deterministic(t *testing.T) {
	_, env, log := setupTestContext(t)
	cfg := &env.Cfg.Document
	first := writePackage(t, samplePage(t, cfg, log), cfg)
	second := writePackage(t, samplePage(t, cfg, log), cfg)
	if !bytes.Equal(first, second) {
		t.Error("same page and metadata produced different packages")
	}
}

func TestWrite_NilPage(t *testing.T) {
	_, env, _ := setupTestContext(t)
	if err := Write(io.Discard, nil, Meta{}, &env.Cfg.Document); err == nil {
		t.Error("expected error for nil page")
	}
}

func TestGenerate(t *testing.T) {
	ctx, env, log := setupTestContext(t)
	cfg := &env.Cfg.Document
	page := samplePage(t, cfg, log)
	dir := t.TempDir()
	out := filepath.Join(dir, "sub", "result.pptx")
	meta := Meta{Title: "Quarterly plan", Modified: testModified}

	if err := Generate(ctx, page, meta, out, cfg, log); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	openPackage(t, data)

	t.Run("existing file is kept", func(t *testing.T) {
		err := Generate(ctx, page, meta, out, cfg, log)
		var re *layout.RenderError
		if !errors.As(err, &re) || re.Op != "write" {
			t.Fatalf("expected write RenderError, got %v", err)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		env.Overwrite = true
		defer func() { env.Overwrite = false }()
		if err := Generate(ctx, page, meta, out, cfg, log); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
	})

	entries, err := os.ReadDir(filepath.Dir(out))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestGenerate_FixZip(t *testing.T) {
	ctx, env, log := setupTestContext(t)
	cfg := env.Cfg.Document
	cfg.FixZip = true
	out := filepath.Join(t.TempDir(), "fixed.pptx")

	if err := Generate(ctx, samplePage(t, &cfg, log), Meta{Title: "t", Modified: testModified}, out, &cfg, log); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	zr := openPackage(t, data)
	if len(zr.File) != 13 {
		t.Errorf("got %d entries, want 13", len(zr.File))
	}
	for _, f := range zr.File {
		if f.Flags&0x8 != 0 {
			t.Errorf("entry %s still has data descriptor", f.Name)
		}
	}
	readPart(t, zr, partSlide)
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, env, log := setupTestContext(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()
	out := filepath.Join(t.TempDir(), "never.pptx")
	err := Generate(ctx, &layout.Page{}, Meta{}, out, &env.Cfg.Document, log)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output must not be created")
	}
}
