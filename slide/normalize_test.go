package slide

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

var defaultRules = LegacyRules{
	RightSlots: []string{"box5", "box6", "box7", "box8"},
	Labels: []LabelRule{
		{Match: "background", Label: "背景"},
		{Match: "necessity", Label: "課題"},
		{Match: "plan", Label: "施策"},
	},
	DefaultLabel: "Section",
}

func labels(items []ContentItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestColumns_Legacy(t *testing.T) {
	c := Content{Shape: ShapeSlots}
	for i, key := range []string{"box1_background", "box2_necessity", "box3_plan", "box4", "box5", "box6_plan", "box7", "box8"} {
		c.Slots = append(c.Slots, Slot{Key: key, Text: string(rune('a' + i))})
	}

	left, right, dropped := c.Columns(defaultRules)
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
	if got, want := labels(left), []string{"背景", "課題", "施策", "Section"}; !equal(got, want) {
		t.Errorf("left labels = %v, want %v", got, want)
	}
	if got, want := labels(right), []string{"Section", "施策", "Section", "Section"}; !equal(got, want) {
		t.Errorf("right labels = %v, want %v", got, want)
	}
	if left[0].Text != "a" || right[0].Text != "e" {
		t.Errorf("texts out of order: %q %q", left[0].Text, right[0].Text)
	}
	for _, it := range append(left, right...) {
		if it.Layout != LayoutTypeText {
			t.Errorf("legacy item %q has layout %s", it.Label, it.Layout)
		}
	}
}

func TestColumns_Dynamic(t *testing.T) {
	c := Content{
		Shape: ShapeItems,
		Items: []ContentItem{
			{Column: ColumnRight, Label: "r1"},
			{Column: ColumnLeft, Label: "l1"},
			{Column: ColumnUnknown, Label: "u"},
			{Column: ColumnLeft, Label: "l2"},
			{Column: ColumnRight, Label: "r2"},
		},
		Skipped: 2,
	}
	left, right, dropped := c.Columns(defaultRules)
	if got := labels(left); !equal(got, []string{"l1", "l2"}) {
		t.Errorf("left = %v", got)
	}
	if got := labels(right); !equal(got, []string{"r1", "r2"}) {
		t.Errorf("right = %v", got)
	}
	if dropped != 3 {
		t.Errorf("dropped = %d, want 3", dropped)
	}
}

func TestColumns_Empty(t *testing.T) {
	doc, err := Parse([]byte(`{"theme":"x"}`), zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	left, right, dropped := doc.Content.Columns(defaultRules)
	if left == nil || right == nil || len(left)+len(right)+dropped != 0 {
		t.Errorf("Columns() = %v %v %d", left, right, dropped)
	}
}

func TestEnums(t *testing.T) {
	if c, err := ParseColumn("right"); err != nil || c != ColumnRight {
		t.Errorf("ParseColumn(right) = %v, %v", c, err)
	}
	if _, err := ParseColumn("center"); err == nil {
		t.Error("ParseColumn(center) expected error")
	}
	if l, err := ParseLayoutType("flow_horizontal"); err != nil || l != LayoutTypeFlowHorizontal {
		t.Errorf("ParseLayoutType(flow_horizontal) = %v, %v", l, err)
	}
	var lt LayoutType
	if err := lt.UnmarshalText([]byte("text")); err != nil || lt != LayoutTypeText {
		t.Errorf("UnmarshalText(text) = %v, %v", lt, err)
	}
	if s := LayoutType(7).String(); s != "LayoutType(7)" {
		t.Errorf("String() = %q", s)
	}
	if got := ColumnNames(); len(got) != 3 || got[0] != "unknown" {
		t.Errorf("ColumnNames() = %v", got)
	}
}
