package slide

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
	yaml "gopkg.in/yaml.v3"
)

// Documents come from language models and are loosely structured, so they
// are first read into a generic tree which keeps mapping order (legacy slot
// placement depends on it) and only then interpreted.

type member struct {
	key string
	val any
}

type object []member

func (o object) get(keys ...string) (any, bool) {
	for _, k := range keys {
		for _, m := range o {
			if m.key == k {
				return m.val, true
			}
		}
	}
	return nil, false
}

// maxDepth limits nesting of the input tree, it also stops YAML alias loops.
const maxDepth = 64

// Parse reads JSON or YAML document from UTF-8 data. JSON is recognized by
// its first significant character, anything else is treated as YAML.
func Parse(data []byte, log *zap.Logger) (*Document, error) {
	root, err := readTree(data)
	if err != nil {
		return nil, err
	}
	return decodeDocument(root, log)
}

var (
	errTrailingData = errors.New("unexpected data after top-level value")
	errTooDeep      = errors.New("document is nested too deep")
)

func readTree(data []byte) (any, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		root, err := readJSON(trimmed)
		if err == nil {
			return root, nil
		}
		// complete JSON value was read, YAML would silently drop the rest
		if errors.Is(err, errTrailingData) || errors.Is(err, errTooDeep) {
			return nil, fmt.Errorf("unable to parse JSON document: %w", err)
		}
		// YAML flow mappings look the same
		if root, yerr := readYAML(data); yerr == nil {
			return root, nil
		}
		return nil, fmt.Errorf("unable to parse JSON document: %w", err)
	}
	root, err := readYAML(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse YAML document: %w", err)
	}
	return root, nil
}

func readJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := readJSONValue(dec, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder, depth int) (any, error) {
	if depth > maxDepth {
		return nil, errTooDeep
	}
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := object{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", kt)
			}
			v, err := readJSONValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			obj = append(obj, member{key: key, val: v})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := readJSONValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", rune(delim))
}

func readYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return fromNode(&root, 0)
}

func fromNode(n *yaml.Node, depth int) (any, error) {
	if depth > maxDepth {
		return nil, errTooDeep
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0], depth+1)
	case yaml.AliasNode:
		return fromNode(n.Alias, depth+1)
	case yaml.MappingNode:
		obj := make(object, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := fromNode(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			obj = append(obj, member{key: n.Content[i].Value, val: v})
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
		// keep scalar exactly as written, "1.0" must not become "1"
		return n.Value, nil
	}
	return nil, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case object:
		return "mapping"
	case []any:
		return "sequence"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	}
	return "scalar"
}

// textOf converts any value to text. Lists become lines, mappings have no
// text representation.
func textOf(v any) string {
	switch t := v.(type) {
	case string:
		return norm.NFC.String(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []any:
		lines := make([]string, 0, len(t))
		for _, e := range t {
			lines = append(lines, textOf(e))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func decodeDocument(root any, log *zap.Logger) (*Document, error) {
	obj, ok := root.(object)
	if !ok {
		return nil, fmt.Errorf("document root must be a mapping, got %s", kindOf(root))
	}

	doc := &Document{}
	if v, ok := obj.get("theme"); ok {
		doc.Theme = textOf(v)
	}
	if v, ok := obj.get("department"); ok {
		doc.Department = textOf(v)
	}
	if v, ok := obj.get("analysis"); ok {
		doc.Analysis = textOf(v)
	}

	content, _ := obj.get("content")
	switch c := content.(type) {
	case nil:
		doc.Content = Content{Shape: ShapeItems, Items: []ContentItem{}}
	case []any:
		doc.Content = decodeItems(c, log)
	case object:
		doc.Content = decodeSlots(c)
	default:
		return nil, &ShapeError{Kind: kindOf(c)}
	}
	return doc, nil
}

func decodeItems(list []any, log *zap.Logger) Content {
	res := Content{Shape: ShapeItems, Items: make([]ContentItem, 0, len(list))}
	for i, e := range list {
		obj, ok := e.(object)
		if !ok {
			log.Warn("Content entry is not a mapping, skipping", zap.Int("index", i), zap.String("kind", kindOf(e)))
			res.Skipped++
			continue
		}
		res.Items = append(res.Items, decodeItem(obj, i, log))
	}
	return res
}

func decodeItem(obj object, index int, log *zap.Logger) ContentItem {
	item := ContentItem{}

	if v, ok := obj.get("column"); ok {
		name := strings.ToLower(strings.TrimSpace(textOf(v)))
		if col, err := ParseColumn(name); err == nil {
			item.Column = col
		} else {
			log.Debug("Unrecognized column", zap.Int("index", index), zap.String("column", name))
		}
	}
	if v, ok := obj.get("label"); ok {
		item.Label = textOf(v)
	}
	if v, ok := obj.get("text"); ok {
		item.Text = textOf(v)
	}
	if v, ok := obj.get("layout_type", "layoutType"); ok {
		name := strings.ToLower(strings.TrimSpace(textOf(v)))
		if lt, err := ParseLayoutType(name); err == nil {
			item.Layout = lt
		} else if len(name) > 0 {
			log.Debug("Unrecognized layout type, using text", zap.Int("index", index), zap.String("layout", name))
		}
	}
	return item
}

func decodeSlots(obj object) Content {
	res := Content{Shape: ShapeSlots, Slots: make([]Slot, 0, len(obj))}
	for _, m := range obj {
		res.Slots = append(res.Slots, Slot{Key: m.key, Text: textOf(m.val)})
	}
	return res
}
