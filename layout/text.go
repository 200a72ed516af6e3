package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"onepaper/config"
)

const bullet = "・"

func isBullet(r rune) bool {
	return r == '・' || r == '-' || r == '●'
}

// stripBullet removes single leading bullet character, if any.
func stripBullet(line string) (string, bool) {
	r, size := utf8.DecodeRuneInString(line)
	if !isBullet(r) {
		return line, false
	}
	return strings.TrimSpace(line[size:]), true
}

// NormalizeBullet trims the line and replaces any supported bullet with the
// full-width one.
func NormalizeBullet(line string) string {
	line = strings.TrimSpace(line)
	if rest, ok := stripBullet(line); ok {
		return bullet + rest
	}
	return line
}

var boldMarkup = regexp.MustCompile(`\*\*(.*?)\*\*`)

type Span struct {
	Text string
	Bold bool
}

// SplitBold breaks line into plain and bold spans. Markers are paired left to
// right with the shortest match, unpaired markers stay in the text. Empty
// plain spans are skipped, a marker pair always yields a bold span even when
// there is nothing between markers.
func SplitBold(line string) []Span {
	var spans []Span
	plain := func(text string) {
		if len(text) > 0 {
			spans = append(spans, Span{Text: text})
		}
	}
	pos := 0
	for _, m := range boldMarkup.FindAllStringSubmatchIndex(line, -1) {
		plain(line[pos:m[0]])
		spans = append(spans, Span{Text: line[m[2]:m[3]], Bold: true})
		pos = m[1]
	}
	plain(line[pos:])
	return spans
}

// Steps extracts flow diagram steps: one per non-blank line, with leading
// bullet removed.
func Steps(text string) []string {
	var steps []string
	for line := range strings.SplitSeq(text, "\n") {
		step, _ := stripBullet(strings.TrimSpace(line))
		if len(step) > 0 {
			steps = append(steps, step)
		}
	}
	return steps
}

// TitleFontSize picks title size tier by number of characters.
func TitleFontSize(title string, hdr *config.HeaderConfig) float64 {
	n := utf8.RuneCountInString(title)
	size := hdr.TitleSizes[0]
	for i, threshold := range hdr.TitleThresholds {
		if n >= threshold && i+1 < len(hdr.TitleSizes) {
			size = hdr.TitleSizes[i+1]
		}
	}
	return size
}

// BodyFontSize returns smaller font for long section texts.
func BodyFontSize(text string, sec *config.SectionConfig) float64 {
	if utf8.RuneCountInString(text) > sec.BodySmallAbove {
		return sec.BodySmallSize
	}
	return sec.BodySize
}

// paragraphs turns section text into paragraphs, one per non-blank line.
func (e *Engine) paragraphs(text string, size float64) []Paragraph {
	sec := &e.cfg.Section
	var out []Paragraph
	for line := range strings.SplitSeq(text, "\n") {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		para := Paragraph{LineSpacing: sec.LineSpacing, SpaceAfter: sec.SpaceAfter}
		for _, span := range SplitBold(NormalizeBullet(line)) {
			run := Run{Text: span.Text, Font: e.cfg.Fonts.Body, Size: size, Color: e.pal.Text}
			if span.Bold {
				run.Bold, run.Font, run.Color = true, e.cfg.Fonts.Bold, e.pal.Main
			}
			para.Runs = append(para.Runs, run)
		}
		out = append(out, para)
	}
	return out
}
