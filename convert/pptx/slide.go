package pptx

import (
	"github.com/beevik/etree"

	"onepaper/layout"
)

const roundRectRadius = "8000"

func slidePart(page *layout.Page) *etree.Document {
	doc, root := newPresentationML("sld")
	cSld := root.CreateElement("p:cSld")

	bgPr := cSld.CreateElement("p:bg").CreateElement("p:bgPr")
	solidFill(bgPr, page.Background)
	bgPr.CreateElement("a:effectLst")

	tree := emptyShapeTree(cSld)
	for i := range page.Shapes {
		writeShape(tree, &page.Shapes[i])
	}
	root.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return doc
}

func writeShape(tree *etree.Element, s *layout.Shape) {
	sp := tree.CreateElement("p:sp")

	nv := sp.CreateElement("p:nvSpPr")
	cNvPr := nv.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", itoa(int64(s.ID)))
	cNvPr.CreateAttr("name", s.Name)
	cNvSpPr := nv.CreateElement("p:cNvSpPr")
	if s.Kind == layout.KindTextBox {
		cNvSpPr.CreateAttr("txBox", "1")
	}
	nv.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", itoa(cmToEMU(s.Box.X)))
	off.CreateAttr("y", itoa(cmToEMU(s.Box.Y)))
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", itoa(cmToEMU(s.Box.W)))
	ext.CreateAttr("cy", itoa(cmToEMU(s.Box.H)))

	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", presetOf(s.Kind))
	avLst := geom.CreateElement("a:avLst")
	if s.Kind == layout.KindRoundRect {
		gd := avLst.CreateElement("a:gd")
		gd.CreateAttr("name", "adj")
		gd.CreateAttr("fmla", "val "+roundRectRadius)
	}

	if s.Fill != nil {
		solidFill(spPr, *s.Fill)
	} else {
		spPr.CreateElement("a:noFill")
	}
	ln := spPr.CreateElement("a:ln")
	if s.Line != nil {
		ln.CreateAttr("w", itoa(ptToEMU(s.Line.Width)))
		solidFill(ln, s.Line.Color)
	} else {
		ln.CreateElement("a:noFill")
	}

	if s.Text != nil {
		writeTextBody(sp, s.Text)
	}
}

func presetOf(k layout.Kind) string {
	switch k {
	case layout.KindRoundRect:
		return "roundRect"
	case layout.KindRightArrow:
		return "rightArrow"
	}
	return "rect"
}

func writeTextBody(sp *etree.Element, tf *layout.TextFrame) {
	body := sp.CreateElement("p:txBody")

	bodyPr := body.CreateElement("a:bodyPr")
	if tf.Wrap {
		bodyPr.CreateAttr("wrap", "square")
	} else {
		bodyPr.CreateAttr("wrap", "none")
	}
	bodyPr.CreateAttr("rtlCol", "0")
	switch tf.Anchor {
	case layout.AnchorTop:
		bodyPr.CreateAttr("anchor", "t")
	case layout.AnchorMiddle:
		bodyPr.CreateAttr("anchor", "ctr")
	}
	bodyPr.CreateElement("a:noAutofit")
	body.CreateElement("a:lstStyle")

	if len(tf.Paragraphs) == 0 {
		// text body requires at least one paragraph
		body.CreateElement("a:p")
		return
	}
	for i := range tf.Paragraphs {
		writeParagraph(body, &tf.Paragraphs[i])
	}
}

func writeParagraph(body *etree.Element, para *layout.Paragraph) {
	p := body.CreateElement("a:p")

	if para.Align != layout.AlignDefault || para.LineSpacing > 0 || para.SpaceAfter > 0 {
		pPr := p.CreateElement("a:pPr")
		switch para.Align {
		case layout.AlignLeft:
			pPr.CreateAttr("algn", "l")
		case layout.AlignCenter:
			pPr.CreateAttr("algn", "ctr")
		}
		if para.LineSpacing > 0 {
			pPr.CreateElement("a:lnSpc").CreateElement("a:spcPct").CreateAttr("val", percent(para.LineSpacing))
		}
		if para.SpaceAfter > 0 {
			pPr.CreateElement("a:spcAft").CreateElement("a:spcPts").CreateAttr("val", fontSize(para.SpaceAfter))
		}
	}

	for i := range para.Runs {
		writeRun(p, &para.Runs[i])
	}
}

func writeRun(p *etree.Element, run *layout.Run) {
	r := p.CreateElement("a:r")
	rPr := r.CreateElement("a:rPr")
	rPr.CreateAttr("lang", "ja-JP")
	rPr.CreateAttr("altLang", "en-US")
	rPr.CreateAttr("sz", fontSize(run.Size))
	if run.Bold {
		rPr.CreateAttr("b", "1")
	} else {
		rPr.CreateAttr("b", "0")
	}
	rPr.CreateAttr("dirty", "0")
	solidFill(rPr, run.Color)
	if len(run.Font) > 0 {
		rPr.CreateElement("a:latin").CreateAttr("typeface", run.Font)
		rPr.CreateElement("a:ea").CreateAttr("typeface", run.Font)
	}
	r.CreateElement("a:t").SetText(run.Text)
}
