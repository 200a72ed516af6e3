package slide

import (
	"errors"
	"fmt"
)

// Column a content item is placed into.
// ENUM(unknown, left, right)
type Column int

// LayoutType selects how content item is drawn.
// ENUM(text, flow_horizontal)
type LayoutType int

// ContentItem is a single labeled section of the page.
type ContentItem struct {
	Column Column
	Label  string
	Text   string
	Layout LayoutType
}

// Slot is an entry of the fixed slot mapping (box1..box8) older documents
// use instead of item list.
type Slot struct {
	Key  string
	Text string
}

// Shape tells which of the two content forms document had.
type Shape int

const (
	ShapeItems Shape = iota
	ShapeSlots
)

func (s Shape) String() string {
	switch s {
	case ShapeItems:
		return "items"
	case ShapeSlots:
		return "slots"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Content holds either Items or Slots depending on Shape.
type Content struct {
	Shape Shape
	Items []ContentItem
	Slots []Slot
	// Skipped counts list entries which were not mappings and could not
	// become items.
	Skipped int
}

// Document is the whole input of a single page.
type Document struct {
	Theme      string
	Department string
	// Analysis is free text accompanying the proposal, it is never drawn.
	Analysis string
	Content  Content
}

// ErrMalformedContent is returned (wrapped in ShapeError) when document
// content is neither a mapping nor a sequence.
var ErrMalformedContent = errors.New("malformed content")

type ShapeError struct {
	Kind string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected mapping or sequence, got %s", ErrMalformedContent, e.Kind)
}

func (e *ShapeError) Unwrap() error {
	return ErrMalformedContent
}
