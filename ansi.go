package richtext

import (
	"image/color"

	"github.com/danielgatis/go-ansicode"
)

// Ensure ANSIDecoder implements ansicode.Handler
var _ ansicode.Handler = (*ANSIDecoder)(nil)

// ANSIDecoder rebuilds a Text from raw bytes containing ANSI escape
// sequences. It feeds the input through an ANSI parser and keeps only what
// matters for inline text: printable characters, line breaks, tabs, SGR
// attribute changes, and OSC 8 hyperlinks. Cursor addressing and all other
// screen-manipulation sequences are ignored. Implements io.Writer.
type ANSIDecoder struct {
	decoder *ansicode.Decoder
	text    *Text

	// style is the current SGR state; nil when everything is default.
	style   *Style
	pending []rune
}

// NewANSIDecoder creates a decoder accumulating into an empty Text.
func NewANSIDecoder() *ANSIDecoder {
	d := &ANSIDecoder{text: NewText("")}
	d.decoder = ansicode.NewDecoder(d)
	return d
}

// Write processes raw bytes, parsing ANSI escape sequences and appending
// styled text. Implements io.Writer.
func (d *ANSIDecoder) Write(data []byte) (int, error) {
	return d.decoder.Write(data)
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (d *ANSIDecoder) WriteString(s string) (int, error) {
	return d.Write([]byte(s))
}

// Text returns the decoded text accumulated so far.
func (d *ANSIDecoder) Text() *Text {
	d.flush()
	return d.text
}

// FromANSI decodes a string containing ANSI escape sequences into a Text
// whose spans reproduce the encoded styles.
func FromANSI(s string) *Text {
	d := NewANSIDecoder()
	d.WriteString(s)
	return d.Text()
}

// flush appends the pending run of characters under the current style.
func (d *ANSIDecoder) flush() {
	if len(d.pending) > 0 {
		d.text.Append(string(d.pending), d.style)
		d.pending = d.pending[:0]
	}
}

// setStyle flushes pending text and switches the current SGR state.
func (d *ANSIDecoder) setStyle(style *Style) {
	d.flush()
	d.style = style
}

// Input appends a printable character under the current style.
func (d *ANSIDecoder) Input(r rune) {
	d.pending = append(d.pending, r)
}

// LineFeed appends an unstyled line break.
func (d *ANSIDecoder) LineFeed() {
	d.flush()
	d.text.Append("\n", nil)
}

// CarriageReturn is ignored; line starts are tracked by LineFeed alone.
func (d *ANSIDecoder) CarriageReturn() {}

// Tab appends n tab characters; expansion is left to the Text layout.
func (d *ANSIDecoder) Tab(n int) {
	for i := 0; i < n; i++ {
		d.pending = append(d.pending, '\t')
	}
}

// SetHyperlink opens or closes an OSC 8 hyperlink on the current style.
func (d *ANSIDecoder) SetHyperlink(hyperlink *ansicode.Hyperlink) {
	if hyperlink == nil || hyperlink.URI == "" {
		if d.style != nil && d.style.Link() != "" {
			d.setStyle(d.style.WithLink(""))
		}
		return
	}
	d.setStyle(d.style.WithLink(hyperlink.URI))
}

// SetTerminalCharAttribute applies one SGR attribute to the current style.
// Set and cancel codes become explicitly-set attribute values, so the
// decoded spans combine exactly like the encoded stream rendered.
func (d *ANSIDecoder) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	switch attr.Attr {
	case ansicode.CharAttributeReset:
		d.setStyle(nil)

	case ansicode.CharAttributeBold:
		d.setStyle(d.style.WithBold(true))

	case ansicode.CharAttributeDim:
		d.setStyle(d.style.WithDim(true))

	case ansicode.CharAttributeItalic:
		d.setStyle(d.style.WithItalic(true))

	case ansicode.CharAttributeUnderline,
		ansicode.CharAttributeDoubleUnderline,
		ansicode.CharAttributeCurlyUnderline,
		ansicode.CharAttributeDottedUnderline,
		ansicode.CharAttributeDashedUnderline:
		d.setStyle(d.style.WithUnderline(true))

	case ansicode.CharAttributeBlinkSlow, ansicode.CharAttributeBlinkFast:
		d.setStyle(d.style.WithBlink(true))

	case ansicode.CharAttributeReverse:
		d.setStyle(d.style.WithReverse(true))

	case ansicode.CharAttributeStrike:
		d.setStyle(d.style.WithStrikethrough(true))

	case ansicode.CharAttributeCancelBold:
		d.setStyle(d.style.WithBold(false))

	case ansicode.CharAttributeCancelBoldDim:
		d.setStyle(d.style.WithBold(false).WithDim(false))

	case ansicode.CharAttributeCancelItalic:
		d.setStyle(d.style.WithItalic(false))

	case ansicode.CharAttributeCancelUnderline:
		d.setStyle(d.style.WithUnderline(false))

	case ansicode.CharAttributeCancelBlink:
		d.setStyle(d.style.WithBlink(false))

	case ansicode.CharAttributeCancelReverse:
		d.setStyle(d.style.WithReverse(false))

	case ansicode.CharAttributeCancelStrike:
		d.setStyle(d.style.WithStrikethrough(false))

	case ansicode.CharAttributeForeground:
		d.setStyle(d.style.WithForeground(attrColor(attr)))

	case ansicode.CharAttributeBackground:
		d.setStyle(d.style.WithBackground(attrColor(attr)))
	}
}

// attrColor resolves the color carried by an SGR attribute.
func attrColor(attr ansicode.TerminalCharAttribute) Color {
	if attr.RGBColor != nil {
		return ColorFromRGB(attr.RGBColor.R, attr.RGBColor.G, attr.RGBColor.B)
	}
	if attr.IndexedColor != nil {
		return ColorFromIndex(uint8(attr.IndexedColor.Index))
	}
	if attr.NamedColor != nil {
		if name := int(*attr.NamedColor); name >= 0 && name < 16 {
			return ColorFromIndex(uint8(name))
		}
	}
	return ColorDefault
}

// ResetState drops the current SGR state; accumulated text is kept.
func (d *ANSIDecoder) ResetState() {
	d.setStyle(nil)
}

// --- Ignored handler callbacks ---
//
// The remaining ansicode.Handler callbacks concern cursor movement, screen
// regions, modes, and device queries. None of them have a meaning for
// inline text reconstruction, so they are all no-ops.

func (d *ANSIDecoder) ApplicationCommandReceived(data []byte)                {}
func (d *ANSIDecoder) Backspace()                                            {}
func (d *ANSIDecoder) Bell()                                                 {}
func (d *ANSIDecoder) CellSizePixels()                                       {}
func (d *ANSIDecoder) ClearLine(mode ansicode.LineClearMode)                 {}
func (d *ANSIDecoder) ClearScreen(mode ansicode.ClearMode)                   {}
func (d *ANSIDecoder) ClearTabs(mode ansicode.TabulationClearMode)           {}
func (d *ANSIDecoder) ClipboardLoad(clipboard byte, terminator string)       {}
func (d *ANSIDecoder) ClipboardStore(clipboard byte, data []byte)            {}
func (d *ANSIDecoder) Decaln()                                               {}
func (d *ANSIDecoder) DeleteChars(n int)                                     {}
func (d *ANSIDecoder) DeleteLines(n int)                                     {}
func (d *ANSIDecoder) DeviceStatus(n int)                                    {}
func (d *ANSIDecoder) EraseChars(n int)                                      {}
func (d *ANSIDecoder) Goto(row, col int)                                     {}
func (d *ANSIDecoder) GotoCol(col int)                                       {}
func (d *ANSIDecoder) GotoLine(row int)                                      {}
func (d *ANSIDecoder) HorizontalTabSet()                                     {}
func (d *ANSIDecoder) IdentifyTerminal(b byte)                               {}
func (d *ANSIDecoder) InsertBlank(n int)                                     {}
func (d *ANSIDecoder) InsertBlankLines(n int)                                {}
func (d *ANSIDecoder) MoveBackward(n int)                                    {}
func (d *ANSIDecoder) MoveBackwardTabs(n int)                                {}
func (d *ANSIDecoder) MoveDown(n int)                                        {}
func (d *ANSIDecoder) MoveDownCr(n int)                                      {}
func (d *ANSIDecoder) MoveForward(n int)                                     {}
func (d *ANSIDecoder) MoveForwardTabs(n int)                                 {}
func (d *ANSIDecoder) MoveUp(n int)                                          {}
func (d *ANSIDecoder) MoveUpCr(n int)                                        {}
func (d *ANSIDecoder) PopKeyboardMode(n int)                                 {}
func (d *ANSIDecoder) PopTitle()                                             {}
func (d *ANSIDecoder) PrivacyMessageReceived(data []byte)                    {}
func (d *ANSIDecoder) PushKeyboardMode(mode ansicode.KeyboardMode)           {}
func (d *ANSIDecoder) PushTitle()                                            {}
func (d *ANSIDecoder) ReportKeyboardMode()                                   {}
func (d *ANSIDecoder) ReportModifyOtherKeys()                                {}
func (d *ANSIDecoder) ResetColor(i int)                                      {}
func (d *ANSIDecoder) RestoreCursorPosition()                                {}
func (d *ANSIDecoder) ReverseIndex()                                         {}
func (d *ANSIDecoder) SaveCursorPosition()                                   {}
func (d *ANSIDecoder) ScrollDown(n int)                                      {}
func (d *ANSIDecoder) ScrollUp(n int)                                        {}
func (d *ANSIDecoder) SetActiveCharset(n int)                                {}
func (d *ANSIDecoder) SetColor(index int, c color.Color)                     {}
func (d *ANSIDecoder) SetCursorStyle(style ansicode.CursorStyle)             {}
func (d *ANSIDecoder) SetDynamicColor(prefix string, index int, term string) {}
func (d *ANSIDecoder) SetKeypadApplicationMode()                             {}
func (d *ANSIDecoder) SetMode(mode ansicode.TerminalMode)                    {}
func (d *ANSIDecoder) SetModifyOtherKeys(modify ansicode.ModifyOtherKeys)    {}
func (d *ANSIDecoder) SetScrollingRegion(top, bottom int)                    {}
func (d *ANSIDecoder) SetTitle(title string)                                 {}
func (d *ANSIDecoder) SetWorkingDirectory(uri string)                        {}
func (d *ANSIDecoder) SixelReceived(params [][]uint16, data []byte)          {}
func (d *ANSIDecoder) StartOfStringReceived(data []byte)                     {}
func (d *ANSIDecoder) Substitute()                                           {}
func (d *ANSIDecoder) TextAreaSizeChars()                                    {}
func (d *ANSIDecoder) TextAreaSizePixels()                                   {}
func (d *ANSIDecoder) UnsetKeypadApplicationMode()                           {}
func (d *ANSIDecoder) UnsetMode(mode ansicode.TerminalMode)                  {}

// ConfigureCharset is ignored; charset translation does not apply here.
func (d *ANSIDecoder) ConfigureCharset(index ansicode.CharsetIndex, charset ansicode.Charset) {}

// SetKeyboardMode is ignored; keyboard protocol state does not apply here.
func (d *ANSIDecoder) SetKeyboardMode(mode ansicode.KeyboardMode, behavior ansicode.KeyboardModeBehavior) {
}
