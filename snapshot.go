package richtext

import (
	"fmt"
)

// SnapshotDetail specifies the level of detail in a snapshot.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text with style segments per line.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot represents text captured after wrapping, suitable for JSON export.
type Snapshot struct {
	Width int            `json:"width"`
	Lines []SnapshotLine `json:"lines"`
}

// SnapshotLine represents a single wrapped line.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment represents a styled text segment within a line.
type SnapshotSegment struct {
	Text       string        `json:"text"`
	Fg         string        `json:"fg,omitempty"`
	Bg         string        `json:"bg,omitempty"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  string        `json:"hyperlink,omitempty"`
}

// SnapshotCell represents a single cell with full attributes.
type SnapshotCell struct {
	Char       string        `json:"char"`
	Fg         string        `json:"fg,omitempty"`
	Bg         string        `json:"bg,omitempty"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  string        `json:"hyperlink,omitempty"`
}

// SnapshotAttrs holds text formatting attributes.
type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Dim           bool `json:"dim,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Reverse       bool `json:"reverse,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

// Snapshot wraps the text at the given width and captures the result.
// The detail parameter controls how much information is included.
func (t *Text) Snapshot(width int, detail SnapshotDetail) *Snapshot {
	lines := t.Wrap(width)

	snap := &Snapshot{
		Width: width,
		Lines: make([]SnapshotLine, len(lines)),
	}

	for i, line := range lines {
		snap.Lines[i] = snapshotLine(line, detail)
	}

	return snap
}

// snapshotLine captures a single wrapped line.
func snapshotLine(line *Text, detail SnapshotDetail) SnapshotLine {
	sl := SnapshotLine{
		Text: line.Plain(),
	}

	switch detail {
	case SnapshotDetailText:
		// Just text, already set

	case SnapshotDetailStyled:
		sl.Segments = lineToSegments(line)

	case SnapshotDetailFull:
		sl.Cells = lineToCells(line)
	}

	return sl
}

// lineToSegments converts a line to styled segments (runs of same style).
func lineToSegments(line *Text) []SnapshotSegment {
	var segments []SnapshotSegment

	for _, seg := range line.Segments() {
		if seg.Text == "" {
			continue
		}

		fg, bg, attrs, link := styleToSnapshot(seg.Style)

		// Merge with the previous segment when the rendered style is identical
		if n := len(segments); n > 0 && segmentMatches(&segments[n-1], fg, bg, attrs, link) {
			segments[n-1].Text += seg.Text
			continue
		}

		segments = append(segments, SnapshotSegment{
			Text:       seg.Text,
			Fg:         fg,
			Bg:         bg,
			Attributes: attrs,
			Hyperlink:  link,
		})
	}

	return segments
}

// lineToCells converts a line to full cell data.
func lineToCells(line *Text) []SnapshotCell {
	cells := make([]SnapshotCell, 0, line.Len())

	for _, seg := range line.Segments() {
		fg, bg, attrs, link := styleToSnapshot(seg.Style)

		for _, ch := range seg.Text {
			cells = append(cells, SnapshotCell{
				Char:       string(ch),
				Fg:         fg,
				Bg:         bg,
				Attributes: attrs,
				Hyperlink:  link,
			})
		}
	}

	return cells
}

// segmentMatches checks if segment matches the given style.
func segmentMatches(seg *SnapshotSegment, fg, bg string, attrs SnapshotAttrs, link string) bool {
	if seg.Fg != fg || seg.Bg != bg {
		return false
	}
	if seg.Attributes != attrs {
		return false
	}
	return seg.Hyperlink == link
}

// styleToSnapshot extracts snapshot fields from a style.
func styleToSnapshot(s *Style) (fg string, bg string, attrs SnapshotAttrs, link string) {
	if s == nil {
		return "", "", SnapshotAttrs{}, ""
	}

	fg = colorToHex(s.Foreground(), true)
	bg = colorToHex(s.Background(), false)
	link = s.Link()

	attrs = SnapshotAttrs{
		Bold:          s.Has(FlagBold),
		Dim:           s.Has(FlagDim),
		Italic:        s.Has(FlagItalic),
		Underline:     s.Has(FlagUnderline),
		Blink:         s.Has(FlagBlink),
		Reverse:       s.Has(FlagReverse),
		Strikethrough: s.Has(FlagStrikethrough),
	}

	return fg, bg, attrs, link
}

// colorToHex converts a color to a hex string, or "" for the default color.
func colorToHex(c Color, fg bool) string {
	if c.Kind == ColorKindDefault || c.Kind == ColorKindUnresolved {
		return ""
	}

	rgba := resolveRGBA(c, fg, &DefaultPalette, &DefaultForeground, &DefaultBackground)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
