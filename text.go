package richtext

import (
	"io"
	"sort"
)

// Justify selects horizontal alignment applied when text is wrapped to a
// fixed width.
type Justify string

const (
	// JustifyDefault leaves wrapped lines unpadded.
	JustifyDefault Justify = ""
	// JustifyLeft pads wrapped lines on the right up to the wrap width.
	JustifyLeft Justify = "left"
	// JustifyCenter pads wrapped lines evenly on both sides.
	JustifyCenter Justify = "center"
	// JustifyRight pads wrapped lines on the left.
	JustifyRight Justify = "right"
)

// Overflow selects what happens to a line that exceeds the available width
// when wrapping is disabled.
type Overflow string

const (
	// OverflowIgnore leaves overlong lines untouched.
	OverflowIgnore Overflow = "ignore"
	// OverflowCrop cuts overlong lines at the width boundary.
	OverflowCrop Overflow = "crop"
	// OverflowEllipsis cuts overlong lines and appends an ellipsis.
	OverflowEllipsis Overflow = "ellipsis"
)

// Span is a half-open styled range over a Text's buffer. Spans may overlap
// arbitrarily and need not be well-nested; they are meaningful only relative
// to the buffer of the Text that owns them.
type Span struct {
	// Start is the first covered rune offset (inclusive).
	Start int
	// End is the offset past the last covered rune (exclusive).
	End int
	// Style is the style applied over the range.
	Style *Style
}

// DefaultTabSize is the tab stop interval used when none is configured.
const DefaultTabSize = 8

// Text is a mutable string annotated with styled spans. The buffer is
// append-only in normal use; spans are kept sorted by (start ascending,
// end descending) so flattening is deterministic: wider, earlier-starting
// spans are applied first and later, narrower spans win via Combine.
//
// The segment representation is derived: it is recomputed on every call to
// Segments rather than cached, so a render is always a pure function of the
// current buffer and spans. Concurrent mutation of one Text must be
// serialized by the caller; read-only flattening of an unchanging Text is
// safe from any number of goroutines.
type Text struct {
	buf   []rune
	spans []Span

	style    *Style
	justify  Justify
	overflow Overflow
	noWrap   bool
	tabSize  int
}

// TextOption configures a Text during construction.
type TextOption func(*Text)

// WithStyle sets the base style the spans are folded onto.
func WithStyle(style *Style) TextOption {
	return func(t *Text) {
		t.style = style
	}
}

// WithJustify sets the justification applied to wrapped lines.
func WithJustify(justify Justify) TextOption {
	return func(t *Text) {
		t.justify = justify
	}
}

// WithOverflow sets the policy for lines that exceed the width when
// wrapping is disabled.
func WithOverflow(overflow Overflow) TextOption {
	return func(t *Text) {
		t.overflow = overflow
	}
}

// WithNoWrap disables word wrapping; Wrap only splits on explicit breaks.
func WithNoWrap(noWrap bool) TextOption {
	return func(t *Text) {
		t.noWrap = noWrap
	}
}

// WithTabSize sets the tab stop interval used by ExpandTabs.
// Values <= 0 are replaced with the default (8).
func WithTabSize(size int) TextOption {
	if size <= 0 {
		size = DefaultTabSize
	}
	return func(t *Text) {
		t.tabSize = size
	}
}

// NewText creates a Text from a plain string.
func NewText(plain string, opts ...TextOption) *Text {
	t := &Text{
		buf:     []rune(plain),
		tabSize: DefaultTabSize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Plain returns the unstyled buffer content.
func (t *Text) Plain() string {
	return string(t.buf)
}

// String returns the plain buffer content. Implements fmt.Stringer.
func (t *Text) String() string {
	return t.Plain()
}

// Len returns the buffer length in cells.
func (t *Text) Len() int {
	return len(t.buf)
}

// Style returns the base style.
func (t *Text) Style() *Style {
	return t.style
}

// Spans returns a copy of the span table.
func (t *Text) Spans() []Span {
	out := make([]Span, len(t.spans))
	copy(out, t.spans)
	return out
}

// Copy returns a deep copy of the text, its spans, and its layout hints.
func (t *Text) Copy() *Text {
	out := *t
	out.buf = make([]rune, len(t.buf))
	copy(out.buf, t.buf)
	out.spans = make([]Span, len(t.spans))
	copy(out.spans, t.spans)
	return &out
}

// Append extends the buffer and, when style is non-nil, stylizes the
// appended range. Returns the Text for chaining.
func (t *Text) Append(text string, style *Style) *Text {
	if text == "" {
		return t
	}
	start := len(t.buf)
	t.buf = append(t.buf, []rune(text)...)
	if style != nil {
		t.Stylize(style, start, len(t.buf))
	}
	return t
}

// AppendText appends another Text, carrying its base style and spans over
// as spans relative to the insertion point.
func (t *Text) AppendText(other *Text) *Text {
	offset := len(t.buf)
	t.buf = append(t.buf, other.buf...)
	if other.style != nil {
		t.insertSpan(Span{Start: offset, End: offset + len(other.buf), Style: other.style})
	}
	for _, span := range other.spans {
		t.insertSpan(Span{Start: span.Start + offset, End: span.End + offset, Style: span.Style})
	}
	return t
}

// Stylize applies a style over the half-open range [start, end). Offsets are
// clamped to the buffer bounds; a range that is empty after clamping is
// silently dropped.
func (t *Text) Stylize(style *Style, start, end int) {
	if style == nil {
		return
	}
	if start < 0 {
		start = 0
	}
	if n := len(t.buf); end > n {
		end = n
	}
	if start >= end {
		return
	}
	t.insertSpan(Span{Start: start, End: end, Style: style})
}

// insertSpan inserts a span at its sorted position: start ascending, with
// ties broken by end descending so the widest span at an offset comes first.
func (t *Text) insertSpan(span Span) {
	i := sort.Search(len(t.spans), func(i int) bool {
		s := t.spans[i]
		return s.Start > span.Start || (s.Start == span.Start && s.End < span.End)
	})
	t.spans = append(t.spans, Span{})
	copy(t.spans[i+1:], t.spans[i:])
	t.spans[i] = span
}

// Segments flattens the spans into the minimal ordered segment list: the
// concatenated segment texts reproduce the buffer exactly, and each
// character's style is the base style combined with every covering span in
// sorted span order.
//
// The sweep advances a cursor from boundary to boundary, where a boundary is
// the nearest span start or end past the cursor. O(N*S); span counts are
// small in practice (bounded by markup tag count).
func (t *Text) Segments() []Segment {
	n := len(t.buf)
	if n == 0 {
		return nil
	}

	segments := make([]Segment, 0, len(t.spans)+1)
	cursor := 0
	for cursor < n {
		boundary := n
		style := t.style
		for _, span := range t.spans {
			switch {
			case span.Start <= cursor && cursor < span.End:
				style = style.Combine(span.Style)
				if span.End < boundary {
					boundary = span.End
				}
			case span.Start > cursor:
				if span.Start < boundary {
					boundary = span.Start
				}
			}
		}
		segments = append(segments, Segment{Text: string(t.buf[cursor:boundary]), Style: style})
		cursor = boundary
	}

	return segments
}

// Render encodes the flattened, simplified segments to the writer.
func (t *Text) Render(w io.Writer, system ColorSystem) error {
	return RenderSegments(w, SimplifySegments(t.Segments()), system)
}

// Divide cuts the text at the given offsets and returns the resulting parts.
// Every part receives the spans that overlap its window, clipped to the
// window and rebased to the part's own offsets, so flattening a part yields
// exactly the styles the same characters had in the whole. Offsets outside
// (0, Len) are ignored.
func (t *Text) Divide(offsets []int) []*Text {
	n := len(t.buf)

	cuts := make([]int, 0, len(offsets)+2)
	cuts = append(cuts, 0)
	for _, offset := range offsets {
		if offset > 0 && offset < n {
			cuts = append(cuts, offset)
		}
	}
	cuts = append(cuts, n)
	sort.Ints(cuts)

	parts := make([]*Text, 0, len(cuts)-1)
	for i := 0; i+1 < len(cuts); i++ {
		lo, hi := cuts[i], cuts[i+1]
		if lo == hi {
			continue // duplicate cut
		}

		part := &Text{
			buf:      append([]rune(nil), t.buf[lo:hi]...),
			style:    t.style,
			justify:  t.justify,
			overflow: t.overflow,
			noWrap:   t.noWrap,
			tabSize:  t.tabSize,
		}
		for _, span := range t.spans {
			if span.End <= lo || span.Start >= hi {
				continue
			}
			start := max(span.Start, lo) - lo
			end := min(span.End, hi) - lo
			part.spans = append(part.spans, Span{Start: start, End: end, Style: span.Style})
		}
		sort.SliceStable(part.spans, func(a, b int) bool {
			sa, sb := part.spans[a], part.spans[b]
			return sa.Start < sb.Start || (sa.Start == sb.Start && sa.End > sb.End)
		})
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		parts = append(parts, &Text{
			style:    t.style,
			justify:  t.justify,
			overflow: t.overflow,
			noWrap:   t.noWrap,
			tabSize:  t.tabSize,
		})
	}

	return parts
}

// SplitLines divides the text on explicit line breaks. The breaks themselves
// are removed from the parts. A trailing break yields a final empty line.
func (t *Text) SplitLines() []*Text {
	var offsets []int
	for i, r := range t.buf {
		if r == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	trailingBreak := len(t.buf) > 0 && t.buf[len(t.buf)-1] == '\n'

	parts := t.Divide(offsets)
	for _, part := range parts {
		if n := len(part.buf); n > 0 && part.buf[n-1] == '\n' {
			part.truncateTo(n - 1)
		}
	}
	if trailingBreak {
		parts = append(parts, &Text{
			style:    t.style,
			justify:  t.justify,
			overflow: t.overflow,
			noWrap:   t.noWrap,
			tabSize:  t.tabSize,
		})
	}
	return parts
}

// PadLeft prepends count copies of ch, shifting existing spans right.
func (t *Text) PadLeft(count int, ch rune) {
	if count <= 0 {
		return
	}
	pad := make([]rune, count)
	for i := range pad {
		pad[i] = ch
	}
	t.buf = append(pad, t.buf...)
	for i := range t.spans {
		t.spans[i].Start += count
		t.spans[i].End += count
	}
}

// PadRight appends count copies of ch. Existing spans are unaffected.
func (t *Text) PadRight(count int, ch rune) {
	for i := 0; i < count; i++ {
		t.buf = append(t.buf, ch)
	}
}

// Pad grows the text by count cells on both sides.
func (t *Text) Pad(count int, ch rune) {
	t.PadLeft(count, ch)
	t.PadRight(count, ch)
}

// Rstrip removes trailing spaces, clipping spans to the new bound.
func (t *Text) Rstrip() {
	t.RstripEnd(0)
}

// RstripEnd removes trailing spaces, but never shortens the text below size.
func (t *Text) RstripEnd(size int) {
	n := len(t.buf)
	for n > size && t.buf[n-1] == ' ' {
		n--
	}
	if n < len(t.buf) {
		t.truncateTo(n)
	}
}

// Truncate shortens the text to at most maxWidth cells according to the
// overflow policy. With OverflowEllipsis an empty suffix defaults to "…";
// the suffix counts against maxWidth. Spans outside the new bound are
// clipped or dropped. OverflowIgnore leaves the text untouched.
func (t *Text) Truncate(maxWidth int, suffix string, overflow Overflow) {
	if overflow == OverflowIgnore || overflow == "" {
		return
	}
	if maxWidth < 0 || len(t.buf) <= maxWidth {
		return
	}
	if overflow == OverflowEllipsis && suffix == "" {
		suffix = "…"
	}

	keep := maxWidth - len([]rune(suffix))
	if keep < 0 {
		keep = 0
		suffix = ""
	}
	t.truncateTo(keep)
	t.buf = append(t.buf, []rune(suffix)...)
}

// truncateTo shortens the buffer to n runes, clipping spans to the new
// bound and dropping spans that become empty.
func (t *Text) truncateTo(n int) {
	t.buf = t.buf[:n]
	kept := t.spans[:0]
	for _, span := range t.spans {
		if span.End > n {
			span.End = n
		}
		if span.Start < span.End {
			kept = append(kept, span)
		}
	}
	t.spans = kept
}

// ExpandTabs replaces tab characters with spaces up to the next tab stop,
// preserving span styling across the expansion.
func (t *Text) ExpandTabs() {
	tabSize := t.tabSize
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}

	var offsets []int
	for i, r := range t.buf {
		if r == '\t' {
			offsets = append(offsets, i+1)
		}
	}
	if len(offsets) == 0 {
		return
	}

	out := &Text{style: t.style, justify: t.justify, overflow: t.overflow, noWrap: t.noWrap, tabSize: t.tabSize}
	column := 0
	for _, part := range t.Divide(offsets) {
		hadTab := false
		if n := len(part.buf); n > 0 && part.buf[n-1] == '\t' {
			part.truncateTo(n - 1)
			hadTab = true
		}
		column += len(part.buf)
		for i := len(part.buf) - 1; i >= 0; i-- {
			if part.buf[i] == '\n' {
				// Tab stops restart at each line break.
				column = len(part.buf) - i - 1
				break
			}
		}
		if hadTab {
			spaces := tabSize - column%tabSize
			part.PadRight(spaces, ' ')
			column += spaces
		}
		out.AppendText(part)
	}

	t.buf = out.buf
	t.spans = out.spans
}

// Wrap breaks the text into lines no wider than width cells. Explicit line
// breaks are always honored; overlong logical lines are word-wrapped unless
// no-wrap is set, in which case the overflow policy applies. Wrapped lines
// are padded per the justification hint. Every line carries the spans that
// cover its window, rebased to the line's own offsets.
func (t *Text) Wrap(width int) []*Text {
	var lines []*Text

	for _, line := range t.SplitLines() {
		line.ExpandTabs()

		if width <= 0 || line.Len() <= width {
			lines = append(lines, line)
			continue
		}

		if t.noWrap {
			line.Truncate(width, "", t.overflow)
			lines = append(lines, line)
			continue
		}

		pieces := line.Divide(wrapOffsets(line.buf, width))
		for _, piece := range pieces {
			piece.Rstrip()
			lines = append(lines, piece)
		}
	}

	for _, line := range lines {
		line.justifyTo(width, t.justify)
	}

	return lines
}

// wrapOffsets computes the divide offsets that wrap runes at width cells.
// Each line greedily consumes up to width cells; if the cell past the limit
// is not a space, the break moves back to the nearest space strictly after
// the line start, avoiding mid-word breaks. Runs of spaces at a break are
// consumed so the next line resumes at a word. A line with no usable space
// is hard-broken exactly at width.
func wrapOffsets(runes []rune, width int) []int {
	var offsets []int

	start := 0
	for len(runes)-start > width {
		candidate := start + width
		breakAt := -1
		if runes[candidate] == ' ' {
			breakAt = candidate
		} else {
			for i := candidate - 1; i > start; i-- {
				if runes[i] == ' ' {
					breakAt = i
					break
				}
			}
		}

		offset := candidate // hard break inside an oversized word
		if breakAt >= 0 {
			offset = breakAt
			for offset < len(runes) && runes[offset] == ' ' {
				offset++
			}
		}
		if offset >= len(runes) {
			break // only trailing spaces remain
		}

		offsets = append(offsets, offset)
		start = offset
	}

	return offsets
}

// justifyTo pads the line to width per the justification hint.
func (t *Text) justifyTo(width int, justify Justify) {
	if width <= 0 || justify == JustifyDefault {
		return
	}
	gap := width - len(t.buf)
	if gap <= 0 {
		return
	}

	switch justify {
	case JustifyLeft:
		t.PadRight(gap, ' ')
	case JustifyCenter:
		left := gap / 2
		t.PadLeft(left, ' ')
		t.PadRight(gap-left, ' ')
	case JustifyRight:
		t.PadLeft(gap, ' ')
	}
}
