package slide

import (
	"slices"
	"strings"
)

type LabelRule struct {
	Match string
	Label string
}

// LegacyRules describe placement of slot mapping entries: a slot goes to the
// right column when its key contains any of RightSlots, its label is taken
// from the first rule whose Match is part of the key.
type LegacyRules struct {
	RightSlots   []string
	Labels       []LabelRule
	DefaultLabel string
}

func (r LegacyRules) item(s Slot) ContentItem {
	item := ContentItem{Column: ColumnLeft, Text: s.Text, Layout: LayoutTypeText, Label: r.DefaultLabel}
	if slices.ContainsFunc(r.RightSlots, func(k string) bool { return strings.Contains(s.Key, k) }) {
		item.Column = ColumnRight
	}
	for _, l := range r.Labels {
		if strings.Contains(s.Key, l.Match) {
			item.Label = l.Label
			break
		}
	}
	return item
}

// Columns splits content into left and right item lists preserving document
// order. Dropped is the number of entries which could not be placed.
func (c *Content) Columns(rules LegacyRules) (left, right []ContentItem, dropped int) {
	left, right = []ContentItem{}, []ContentItem{}

	if c.Shape == ShapeSlots {
		for _, s := range c.Slots {
			if item := rules.item(s); item.Column == ColumnRight {
				right = append(right, item)
			} else {
				left = append(left, item)
			}
		}
		return left, right, 0
	}

	dropped = c.Skipped
	for _, item := range c.Items {
		switch item.Column {
		case ColumnLeft:
			left = append(left, item)
		case ColumnRight:
			right = append(right, item)
		default:
			dropped++
		}
	}
	return left, right, dropped
}
