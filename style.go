package richtext

import (
	"strings"
)

// StyleFlags is a bitmask of boolean text attributes.
type StyleFlags uint8

const (
	FlagBold StyleFlags = 1 << iota
	FlagDim
	FlagItalic
	FlagUnderline
	FlagStrikethrough
	FlagReverse
	FlagBlink
)

// sgrAttributes lists the attribute flags with their SGR codes, in the fixed
// order they are emitted: bold, dim, italic, underline, strikethrough,
// reverse, blink.
var sgrAttributes = []struct {
	flag StyleFlags
	code string
	name string
}{
	{FlagBold, "1", "bold"},
	{FlagDim, "2", "dim"},
	{FlagItalic, "3", "italic"},
	{FlagUnderline, "4", "underline"},
	{FlagStrikethrough, "9", "strikethrough"},
	{FlagReverse, "7", "reverse"},
	{FlagBlink, "5", "blink"},
}

// styleKeywords maps style definition tokens to attribute flags.
var styleKeywords = map[string]StyleFlags{
	"bold":          FlagBold,
	"dim":           FlagDim,
	"italic":        FlagItalic,
	"underline":     FlagUnderline,
	"strikethrough": FlagStrikethrough,
	"reverse":       FlagReverse,
	"blink":         FlagBlink,
}

// Style is an immutable set of display attributes. Every attribute is
// tri-state: unset (inherited), explicitly on, or explicitly off; the
// distinction matters when styles are combined. The absence of any style is
// represented by a nil *Style, which all methods accept.
//
// Styles are values: the With* builders return modified copies and a
// constructed Style is never altered, so a single *Style can be shared by
// any number of Segments and Spans. Style is comparable and can be used as
// a map key.
type Style struct {
	fg, bg Color

	// flags holds attribute values; set marks which of them are explicit.
	flags, set StyleFlags

	link string
}

// NewStyle returns an empty style: every attribute unset.
func NewStyle() *Style {
	return &Style{}
}

// ParseStyle builds a Style from a whitespace-separated definition such as
// "bold red on blue". Recognized boolean keywords set the attribute, a
// keyword prefixed with "not" explicitly disables it, "on" consumes the next
// token as the background color, and "link" consumes the next token as a
// hyperlink target. Any other token is treated as a foreground color.
//
// Parsing is best-effort and never fails; unknown color names are carried
// through unresolved. Empty input yields nil (no style at all).
func ParseStyle(definition string) *Style {
	tokens := strings.Fields(strings.ToLower(definition))
	if len(tokens) == 0 {
		return nil
	}

	s := &Style{}
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		switch token {
		case "on":
			if i+1 < len(tokens) {
				i++
				s.bg = ParseColor(tokens[i])
			}
		case "link":
			if i+1 < len(tokens) {
				i++
				s.link = tokens[i]
			}
		case "not":
			if i+1 < len(tokens) {
				if flag, ok := styleKeywords[tokens[i+1]]; ok {
					i++
					s.flags &^= flag
					s.set |= flag
				}
			}
		default:
			if flag, ok := styleKeywords[token]; ok {
				s.flags |= flag
				s.set |= flag
			} else {
				s.fg = ParseColor(token)
			}
		}
	}

	return s
}

// Combine overlays another style on top of this one and returns the result.
// For every attribute the overlay's explicitly-set value wins; attributes the
// overlay leaves unset are inherited from the base. An explicitly disabled
// attribute in the overlay overrides an inherited true. If either operand is
// nil the other is returned unchanged; combining two nils yields nil.
//
// Colors have no explicit "off" state: a default-kind color means unset, so an
// overlay cannot reset an inherited color back to the terminal default. Only
// the boolean attributes carry the three-way set/unset/disabled distinction.
func (s *Style) Combine(overlay *Style) *Style {
	if s == nil {
		return overlay
	}
	if overlay == nil {
		return s
	}

	out := *s
	if !overlay.fg.IsDefault() {
		out.fg = overlay.fg
	}
	if !overlay.bg.IsDefault() {
		out.bg = overlay.bg
	}
	out.flags = (s.flags &^ overlay.set) | (overlay.flags & overlay.set)
	out.set = s.set | overlay.set
	if overlay.link != "" {
		out.link = overlay.link
	}

	return &out
}

// Render wraps text in the escape sequences that select this style:
// CSI <params> m before and a reset after, plus OSC 8 framing when a
// hyperlink is set. Text is returned unchanged when the style selects
// nothing.
func (s *Style) Render(text string) string {
	if s == nil {
		return text
	}

	params := make([]string, 0, 8)
	params = s.fg.appendSGR(params, false)
	params = s.bg.appendSGR(params, true)
	for _, attr := range sgrAttributes {
		if s.set&attr.flag != 0 && s.flags&attr.flag != 0 {
			params = append(params, attr.code)
		}
	}

	out := text
	if len(params) > 0 {
		out = "\x1b[" + strings.Join(params, ";") + "m" + out + "\x1b[0m"
	}
	if s.link != "" {
		out = "\x1b]8;;" + s.link + "\x1b\\" + out + "\x1b]8;;\x1b\\"
	}

	return out
}

// IsNull returns true if every attribute is unset.
func (s *Style) IsNull() bool {
	if s == nil {
		return true
	}
	return s.fg.IsDefault() && s.bg.IsDefault() && s.set == 0 && s.link == ""
}

// Equal returns true if both styles are structurally identical.
// Two nil styles are equal; nil equals any null style.
func (s *Style) Equal(other *Style) bool {
	if s == nil || other == nil {
		return s.IsNull() && other.IsNull()
	}
	return *s == *other
}

// String returns the style definition, suitable for ParseStyle.
func (s *Style) String() string {
	if s == nil {
		return ""
	}

	tokens := make([]string, 0, 10)
	for _, attr := range sgrAttributes {
		if s.set&attr.flag == 0 {
			continue
		}
		if s.flags&attr.flag != 0 {
			tokens = append(tokens, attr.name)
		} else {
			tokens = append(tokens, "not "+attr.name)
		}
	}
	if !s.fg.IsDefault() {
		tokens = append(tokens, s.fg.String())
	}
	if !s.bg.IsDefault() {
		tokens = append(tokens, "on "+s.bg.String())
	}
	if s.link != "" {
		tokens = append(tokens, "link "+s.link)
	}

	return strings.Join(tokens, " ")
}

// Foreground returns the foreground color (default if unset).
func (s *Style) Foreground() Color {
	if s == nil {
		return ColorDefault
	}
	return s.fg
}

// Background returns the background color (default if unset).
func (s *Style) Background() Color {
	if s == nil {
		return ColorDefault
	}
	return s.bg
}

// Link returns the hyperlink target, or "" if unset.
func (s *Style) Link() string {
	if s == nil {
		return ""
	}
	return s.link
}

// Has returns the effective value of an attribute flag (false when unset).
func (s *Style) Has(flag StyleFlags) bool {
	if s == nil {
		return false
	}
	return s.set&flag != 0 && s.flags&flag != 0
}

// WithForeground returns a copy with the foreground color set.
func (s *Style) WithForeground(c Color) *Style {
	out := s.clone()
	out.fg = c
	return out
}

// WithBackground returns a copy with the background color set.
func (s *Style) WithBackground(c Color) *Style {
	out := s.clone()
	out.bg = c
	return out
}

// WithLink returns a copy with the hyperlink target set.
func (s *Style) WithLink(url string) *Style {
	out := s.clone()
	out.link = url
	return out
}

// WithBold returns a copy with bold explicitly set to v.
func (s *Style) WithBold(v bool) *Style { return s.withFlag(FlagBold, v) }

// WithDim returns a copy with dim explicitly set to v.
func (s *Style) WithDim(v bool) *Style { return s.withFlag(FlagDim, v) }

// WithItalic returns a copy with italic explicitly set to v.
func (s *Style) WithItalic(v bool) *Style { return s.withFlag(FlagItalic, v) }

// WithUnderline returns a copy with underline explicitly set to v.
func (s *Style) WithUnderline(v bool) *Style { return s.withFlag(FlagUnderline, v) }

// WithStrikethrough returns a copy with strikethrough explicitly set to v.
func (s *Style) WithStrikethrough(v bool) *Style { return s.withFlag(FlagStrikethrough, v) }

// WithReverse returns a copy with reverse video explicitly set to v.
func (s *Style) WithReverse(v bool) *Style { return s.withFlag(FlagReverse, v) }

// WithBlink returns a copy with blink explicitly set to v.
func (s *Style) WithBlink(v bool) *Style { return s.withFlag(FlagBlink, v) }

func (s *Style) withFlag(flag StyleFlags, v bool) *Style {
	out := s.clone()
	if v {
		out.flags |= flag
	} else {
		out.flags &^= flag
	}
	out.set |= flag
	return out
}

func (s *Style) clone() *Style {
	if s == nil {
		return &Style{}
	}
	out := *s
	return &out
}

// downsampled returns a copy with truecolor values mapped to the nearest
// standard palette entries. Palette-only styles are returned as-is.
func (s *Style) downsampled() *Style {
	if s == nil {
		return nil
	}
	if s.fg.Kind != ColorKindRGB && s.bg.Kind != ColorKindRGB {
		return s
	}
	out := *s
	out.fg = s.fg.Downsample()
	out.bg = s.bg.Downsample()
	return &out
}
