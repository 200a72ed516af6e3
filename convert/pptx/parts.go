package pptx

import (
	"time"

	"github.com/beevik/etree"

	"onepaper/layout"
)

const (
	nsA        = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP        = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsCT       = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRels     = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCore     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtended = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsVT       = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"

	ctPrefix = "application/vnd.openxmlformats-officedocument."

	// Presentation wide ids, values PowerPoint itself uses for the first
	// master, layout and slide.
	masterID = "2147483648"
	layoutID = "2147483649"
	slideID  = "256"

	notesWidth  = 6858000
	notesHeight = 9144000
)

const (
	partContentTypes = "[Content_Types].xml"
	partRootRels     = "_rels/.rels"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
	partPresentation = "ppt/presentation.xml"
	partPresRels     = "ppt/_rels/presentation.xml.rels"
	partMaster       = "ppt/slideMasters/slideMaster1.xml"
	partMasterRels   = "ppt/slideMasters/_rels/slideMaster1.xml.rels"
	partLayout       = "ppt/slideLayouts/slideLayout1.xml"
	partLayoutRels   = "ppt/slideLayouts/_rels/slideLayout1.xml.rels"
	partTheme        = "ppt/theme/theme1.xml"
	partSlide        = "ppt/slides/slide1.xml"
	partSlideRels    = "ppt/slides/_rels/slide1.xml.rels"
)

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

// newPresentationML creates document with root element in PresentationML
// namespace and common namespace declarations.
func newPresentationML(root string) (*etree.Document, *etree.Element) {
	doc := newDocument()
	el := doc.CreateElement("p:" + root)
	el.CreateAttr("xmlns:a", nsA)
	el.CreateAttr("xmlns:r", nsR)
	el.CreateAttr("xmlns:p", nsP)
	return doc, el
}

type relationship struct {
	id, kind, target string
}

func relsPart(rels ...relationship) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsRels)
	for _, r := range rels {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", r.id)
		el.CreateAttr("Type", r.kind)
		el.CreateAttr("Target", r.target)
	}
	return doc
}

func contentTypesPart() *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("Types")
	root.CreateAttr("xmlns", nsCT)

	for _, d := range [][2]string{
		{"rels", "application/vnd.openxmlformats-package.relationships+xml"},
		{"xml", "application/xml"},
	} {
		el := root.CreateElement("Default")
		el.CreateAttr("Extension", d[0])
		el.CreateAttr("ContentType", d[1])
	}
	for _, o := range [][2]string{
		{partPresentation, ctPrefix + "presentationml.presentation.main+xml"},
		{partMaster, ctPrefix + "presentationml.slideMaster+xml"},
		{partLayout, ctPrefix + "presentationml.slideLayout+xml"},
		{partSlide, ctPrefix + "presentationml.slide+xml"},
		{partTheme, ctPrefix + "theme+xml"},
		{partCore, "application/vnd.openxmlformats-package.core-properties+xml"},
		{partApp, ctPrefix + "extended-properties+xml"},
	} {
		el := root.CreateElement("Override")
		el.CreateAttr("PartName", "/"+o[0])
		el.CreateAttr("ContentType", o[1])
	}
	return doc
}

func corePart(meta *Meta) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", nsCore)
	root.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	root.CreateAttr("xmlns:dcterms", "http://purl.org/dc/terms/")
	root.CreateAttr("xmlns:dcmitype", "http://purl.org/dc/dcmitype/")
	root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	root.CreateElement("dc:title").SetText(meta.Title)
	if len(meta.Subject) > 0 {
		root.CreateElement("dc:subject").SetText(meta.Subject)
	}
	root.CreateElement("dc:creator").SetText(meta.Creator)
	if len(meta.Description) > 0 {
		root.CreateElement("dc:description").SetText(meta.Description)
	}
	root.CreateElement("dc:identifier").SetText("urn:uuid:" + meta.identifier().String())
	root.CreateElement("cp:lastModifiedBy").SetText(meta.Creator)
	root.CreateElement("cp:revision").SetText("1")

	stamp := meta.Modified.UTC().Format(time.RFC3339)
	for _, name := range []string{"dcterms:created", "dcterms:modified"} {
		el := root.CreateElement(name)
		el.CreateAttr("xsi:type", "dcterms:W3CDTF")
		el.SetText(stamp)
	}
	return doc
}

func appPart(meta *Meta) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("Properties")
	root.CreateAttr("xmlns", nsExtended)
	root.CreateAttr("xmlns:vt", nsVT)
	root.CreateElement("TotalTime").SetText("0")
	root.CreateElement("Application").SetText(meta.Creator)
	root.CreateElement("PresentationFormat").SetText("A3")
	root.CreateElement("Slides").SetText("1")
	return doc
}

func presentationPart(page *layout.Page) *etree.Document {
	doc, root := newPresentationML("presentation")
	root.CreateAttr("saveSubsetFonts", "1")

	m := root.CreateElement("p:sldMasterIdLst").CreateElement("p:sldMasterId")
	m.CreateAttr("id", masterID)
	m.CreateAttr("r:id", "rId1")

	s := root.CreateElement("p:sldIdLst").CreateElement("p:sldId")
	s.CreateAttr("id", slideID)
	s.CreateAttr("r:id", "rId2")

	sz := root.CreateElement("p:sldSz")
	sz.CreateAttr("cx", itoa(cmToEMU(page.Width)))
	sz.CreateAttr("cy", itoa(cmToEMU(page.Height)))

	notes := root.CreateElement("p:notesSz")
	notes.CreateAttr("cx", itoa(notesWidth))
	notes.CreateAttr("cy", itoa(notesHeight))
	return doc
}

// emptyShapeTree adds shape tree with only mandatory group properties.
func emptyShapeTree(cSld *etree.Element) *etree.Element {
	tree := cSld.CreateElement("p:spTree")
	nv := tree.CreateElement("p:nvGrpSpPr")
	cNvPr := nv.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", "1")
	cNvPr.CreateAttr("name", "")
	nv.CreateElement("p:cNvGrpSpPr")
	nv.CreateElement("p:nvPr")

	xfrm := tree.CreateElement("p:grpSpPr").CreateElement("a:xfrm")
	for _, name := range []string{"a:off", "a:ext", "a:chOff", "a:chExt"} {
		el := xfrm.CreateElement(name)
		if name == "a:off" || name == "a:chOff" {
			el.CreateAttr("x", "0")
			el.CreateAttr("y", "0")
		} else {
			el.CreateAttr("cx", "0")
			el.CreateAttr("cy", "0")
		}
	}
	return tree
}

func masterPart() *etree.Document {
	doc, root := newPresentationML("sldMaster")
	cSld := root.CreateElement("p:cSld")
	bgRef := cSld.CreateElement("p:bg").CreateElement("p:bgRef")
	bgRef.CreateAttr("idx", "1001")
	bgRef.CreateElement("a:schemeClr").CreateAttr("val", "bg1")
	emptyShapeTree(cSld)

	clrMap := root.CreateElement("p:clrMap")
	for _, kv := range [][2]string{
		{"bg1", "lt1"}, {"tx1", "dk1"}, {"bg2", "lt2"}, {"tx2", "dk2"},
		{"accent1", "accent1"}, {"accent2", "accent2"}, {"accent3", "accent3"},
		{"accent4", "accent4"}, {"accent5", "accent5"}, {"accent6", "accent6"},
		{"hlink", "hlink"}, {"folHlink", "folHlink"},
	} {
		clrMap.CreateAttr(kv[0], kv[1])
	}

	l := root.CreateElement("p:sldLayoutIdLst").CreateElement("p:sldLayoutId")
	l.CreateAttr("id", layoutID)
	l.CreateAttr("r:id", "rId1")
	return doc
}

func layoutPart() *etree.Document {
	doc, root := newPresentationML("sldLayout")
	root.CreateAttr("type", "blank")
	root.CreateAttr("preserve", "1")
	cSld := root.CreateElement("p:cSld")
	cSld.CreateAttr("name", "Blank")
	emptyShapeTree(cSld)
	root.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return doc
}

func srgb(parent *etree.Element, c layout.Color) {
	parent.CreateElement("a:srgbClr").CreateAttr("val", c.Hex())
}

func solidFill(parent *etree.Element, c layout.Color) {
	srgb(parent.CreateElement("a:solidFill"), c)
}

// themePart carries page palette and fonts, so that text typed into the slide
// later by hand looks the same as generated one.
func themePart(pal layout.Palette, bodyFont, boldFont string) *etree.Document {
	doc := newDocument()
	root := doc.CreateElement("a:theme")
	root.CreateAttr("xmlns:a", nsA)
	root.CreateAttr("name", "onepaper")
	elements := root.CreateElement("a:themeElements")

	scheme := elements.CreateElement("a:clrScheme")
	scheme.CreateAttr("name", "onepaper")
	for _, c := range []struct {
		name  string
		color layout.Color
	}{
		{"dk1", pal.Text}, {"lt1", pal.Page}, {"dk2", pal.Main}, {"lt2", pal.Border},
		{"accent1", pal.Main}, {"accent2", pal.Accent}, {"accent3", pal.Muted},
		{"accent4", pal.StepFill}, {"accent5", pal.Card}, {"accent6", pal.Border},
		{"hlink", pal.Main}, {"folHlink", pal.Muted},
	} {
		srgb(scheme.CreateElement("a:"+c.name), c.color)
	}

	fonts := elements.CreateElement("a:fontScheme")
	fonts.CreateAttr("name", "onepaper")
	for _, f := range []struct{ name, face string }{{"a:majorFont", boldFont}, {"a:minorFont", bodyFont}} {
		el := fonts.CreateElement(f.name)
		for _, script := range []string{"a:latin", "a:ea", "a:cs"} {
			el.CreateElement(script).CreateAttr("typeface", f.face)
		}
	}

	fmtScheme := elements.CreateElement("a:fmtScheme")
	fmtScheme.CreateAttr("name", "onepaper")
	fills := fmtScheme.CreateElement("a:fillStyleLst")
	lines := fmtScheme.CreateElement("a:lnStyleLst")
	effects := fmtScheme.CreateElement("a:effectStyleLst")
	bgFills := fmtScheme.CreateElement("a:bgFillStyleLst")
	// each list requires exactly three entries: subtle, moderate, intense
	for i, w := range []float64{0.75, 1, 2} {
		fills.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
		ln := lines.CreateElement("a:ln")
		ln.CreateAttr("w", itoa(ptToEMU(w)))
		ln.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
		effects.CreateElement("a:effectStyle").CreateElement("a:effectLst")
		bg := bgFills.CreateElement("a:solidFill").CreateElement("a:schemeClr")
		if i == 0 {
			bg.CreateAttr("val", "phClr")
		} else {
			bg.CreateAttr("val", "bg1")
		}
	}
	return doc
}
