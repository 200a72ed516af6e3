package slide

import (
	"onepaper/utils/debug"
)

// String returns readable tree of the decoded document for debug reports.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	tw := debug.NewTreeWriter()
	tw.Line(0, "Document")
	tw.TextBlock(1, "Theme", d.Theme)
	tw.TextBlock(1, "Department", d.Department)
	if len(d.Analysis) > 0 {
		tw.TextBlock(1, "Analysis", d.Analysis)
	}
	tw.Line(1, "Content shape=%s skipped=%d", d.Content.Shape, d.Content.Skipped)
	for i, item := range d.Content.Items {
		tw.Line(2, "Item[%d] column=%s layout=%s", i, item.Column, item.Layout)
		tw.TextBlock(3, "Label", item.Label)
		tw.TextBlock(3, "Text", item.Text)
	}
	for i, s := range d.Content.Slots {
		tw.Line(2, "Slot[%d] key=%q", i, s.Key)
		tw.TextBlock(3, "Text", s.Text)
	}
	return tw.String()
}
