package richtext

import (
	"io"
	"strings"
)

// Segment is the atomic unit of output: a run of text sharing one style.
// Control segments carry non-printable passthrough content (escape
// sequences) and occupy no cells on screen. Segments are never mutated;
// every "modification" produces a new Segment.
type Segment struct {
	// Text is the segment content. Owned by the segment.
	Text string

	// Style is a shared, immutable style reference; nil means unstyled.
	Style *Style

	// Control marks non-printable passthrough content with zero width.
	Control bool
}

// NewSegment creates a printable segment with the given style.
func NewSegment(text string, style *Style) Segment {
	return Segment{Text: text, Style: style}
}

// NewControlSegment creates a zero-width passthrough segment.
func NewControlSegment(text string) Segment {
	return Segment{Text: text, Control: true}
}

// CellLen returns the segment width in cells: the number of code points,
// or 0 for control segments. One code point counts as one cell; wide
// grapheme measurement is out of scope (documented limitation).
func (s Segment) CellLen() int {
	if s.Control {
		return 0
	}
	return len([]rune(s.Text))
}

// Split partitions the segment at a cell offset, duplicating the style and
// control flag into both halves. An offset at or beyond the segment length
// yields an empty trailing segment.
func (s Segment) Split(offset int) (Segment, Segment) {
	if offset <= 0 {
		return Segment{Style: s.Style, Control: s.Control}, s
	}

	runes := []rune(s.Text)
	if offset >= len(runes) {
		return s, Segment{Style: s.Style, Control: s.Control}
	}

	head := s
	tail := s
	head.Text = string(runes[:offset])
	tail.Text = string(runes[offset:])
	return head, tail
}

// SimplifySegments folds adjacent printable segments that share an identical
// style into single segments, minimizing escape-sequence churn in the final
// output. Control segments and style changes are hard breakpoints.
func SimplifySegments(segments []Segment) []Segment {
	if len(segments) < 2 {
		return segments
	}

	out := make([]Segment, 0, len(segments))
	current := segments[0]
	for _, seg := range segments[1:] {
		if !current.Control && !seg.Control && current.Style.Equal(seg.Style) {
			current.Text += seg.Text
			continue
		}
		out = append(out, current)
		current = seg
	}
	out = append(out, current)

	return out
}

// SplitSegmentLines breaks a segment stream on embedded line breaks,
// returning one segment list per line. A segment whose text straddles a
// break is split so each piece keeps the original style and control flag.
// The line breaks themselves are not included in the output.
func SplitSegmentLines(segments []Segment) [][]Segment {
	lines := make([][]Segment, 0, 8)
	var line []Segment

	for _, seg := range segments {
		for {
			i := strings.IndexByte(seg.Text, '\n')
			if i < 0 {
				break
			}
			head, tail := seg.Split(len([]rune(seg.Text[:i])))
			if head.Text != "" {
				line = append(line, head)
			}
			lines = append(lines, line)
			line = nil
			_, seg = tail.Split(1) // drop the line break
		}
		if seg.Text != "" {
			line = append(line, seg)
		}
	}
	lines = append(lines, line)

	return lines
}

// SegmentsLen returns the total cell length of a segment list.
func SegmentsLen(segments []Segment) int {
	total := 0
	for _, seg := range segments {
		total += seg.CellLen()
	}
	return total
}

// ColorSystem selects the color depth used when encoding segments.
type ColorSystem uint8

const (
	// ColorSystemTrueColor emits 24-bit color sequences as-is.
	ColorSystemTrueColor ColorSystem = iota
	// ColorSystemEightBit downsamples truecolor values to the nearest
	// standard palette entry before encoding.
	ColorSystemEightBit
)

// RenderSegments encodes a segment stream to the writer, wrapping each
// printable segment in its style's escape sequences. Control segments are
// written verbatim.
func RenderSegments(w io.Writer, segments []Segment, system ColorSystem) error {
	for _, seg := range segments {
		text := seg.Text
		if !seg.Control {
			style := seg.Style
			if system == ColorSystemEightBit {
				style = style.downsampled()
			}
			text = style.Render(text)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}
