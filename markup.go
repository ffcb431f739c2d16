package richtext

import (
	"fmt"
	"strings"
)

// UnmatchedCloseTagError is returned when markup contains a closing tag with
// no matching open tag. It aborts the parse; no partial result is produced.
type UnmatchedCloseTagError struct {
	// Tag is the name of the unmatched closing tag.
	Tag string
}

// Error implements the error interface.
func (e *UnmatchedCloseTagError) Error() string {
	return fmt.Sprintf("closing tag [/%s] has no matching open tag", e.Tag)
}

// tagAliases maps short inline tag names to single-attribute style flags.
// Lookup is case-insensitive.
var tagAliases = map[string]StyleFlags{
	"b":             FlagBold,
	"bold":          FlagBold,
	"i":             FlagItalic,
	"italic":        FlagItalic,
	"u":             FlagUnderline,
	"underline":     FlagUnderline,
	"s":             FlagStrikethrough,
	"strike":        FlagStrikethrough,
	"strikethrough": FlagStrikethrough,
	"dim":           FlagDim,
	"reverse":       FlagReverse,
	"blink":         FlagBlink,
}

// tagFrame is a still-open tag during parsing: its name, the style it
// selects, and the output offset where its span will begin.
type tagFrame struct {
	name  string
	style *Style
	start int
}

// isTagNameRune reports whether r may appear in a tag name.
// The grammar is [A-Za-z0-9_\-#.,:=\s]+.
func isTagNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '_', '-', '#', '.', ',', ':', '=', ' ', '\t':
		return true
	}
	return false
}

// scanTag attempts to match a tag starting at runes[i] (which must be '[').
// A tag is '[', an optional '/', a name of tag-name runes, and ']'. The name
// must be non-empty except for the anonymous close "[/]". Returns the name,
// whether it is a closing tag, and the offset past the closing bracket. ok
// is false when the bracket run is not a tag, in which case the bracket is
// literal text.
func scanTag(runes []rune, i int) (name string, closing bool, end int, ok bool) {
	j := i + 1
	if j < len(runes) && runes[j] == '/' {
		closing = true
		j++
	}

	start := j
	for j < len(runes) && isTagNameRune(runes[j]) {
		j++
	}
	if j >= len(runes) || runes[j] != ']' {
		return "", false, 0, false
	}
	if j == start && !closing {
		return "", false, 0, false
	}

	return string(runes[start:j]), closing, j + 1, true
}

// styleForTag resolves a tag name to a style: single-attribute aliases
// first, then the full style definition grammar.
func styleForTag(name string) *Style {
	if flag, ok := tagAliases[strings.ToLower(name)]; ok {
		return (*Style)(nil).withFlag(flag, true)
	}
	return ParseStyle(name)
}

// ParseMarkup scans bracket-tag markup and builds a Text with one span per
// tag pair over the given base style. Closing tags match the innermost
// still-open tag with the same name, which need not be the topmost frame,
// so tags do not have to be well-nested. The anonymous close "[/]" closes
// the most recently opened tag. Tags still open at the end of input are
// implicitly closed there, most recently opened first.
//
// Backslash-escaped brackets ("\[", "\]") become literal brackets, and a
// doubled backslash becomes a single one. A bracket run that does not match
// the tag grammar is literal text. The only failure is a closing tag with
// no matching open tag, reported as *UnmatchedCloseTagError.
func ParseMarkup(markup string, base *Style) (*Text, error) {
	out := NewText("", WithStyle(base))
	runes := []rune(markup)
	var stack []tagFrame
	var plain []rune

	flush := func() {
		if len(plain) > 0 {
			out.Append(string(plain), nil)
			plain = plain[:0]
		}
	}

	for i := 0; i < len(runes); {
		r := runes[i]

		switch r {
		case '\\':
			if i+1 < len(runes) {
				switch runes[i+1] {
				case '[', ']', '\\':
					plain = append(plain, runes[i+1])
					i += 2
					continue
				}
			}
			plain = append(plain, r)
			i++

		case '[':
			name, closing, end, ok := scanTag(runes, i)
			if !ok {
				plain = append(plain, r)
				i++
				continue
			}
			flush()
			name = strings.TrimSpace(name)

			if !closing {
				stack = append(stack, tagFrame{
					name:  name,
					style: styleForTag(name),
					start: out.Len(),
				})
				i = end
				continue
			}

			// "[/]" closes the most recently opened tag
			found := -1
			if name == "" {
				found = len(stack) - 1
			} else {
				for j := len(stack) - 1; j >= 0; j-- {
					if stack[j].name == name {
						found = j
						break
					}
				}
			}
			if found < 0 {
				return nil, &UnmatchedCloseTagError{Tag: name}
			}
			frame := stack[found]
			stack = append(stack[:found], stack[found+1:]...)
			out.Stylize(frame.style, frame.start, out.Len())
			i = end

		default:
			plain = append(plain, r)
			i++
		}
	}

	flush()

	// Implicitly close anything still open, most recent first.
	for j := len(stack) - 1; j >= 0; j-- {
		out.Stylize(stack[j].style, stack[j].start, out.Len())
	}

	return out, nil
}

// StripMarkup removes all tags from markup without applying any styles.
// Escaped brackets are unescaped, exactly as ParseMarkup would emit them.
// Unlike ParseMarkup it never fails: unmatched closing tags are simply
// removed.
func StripMarkup(markup string) string {
	runes := []rune(markup)
	var b strings.Builder
	b.Grow(len(markup))

	for i := 0; i < len(runes); {
		r := runes[i]

		switch r {
		case '\\':
			if i+1 < len(runes) {
				switch runes[i+1] {
				case '[', ']', '\\':
					b.WriteRune(runes[i+1])
					i += 2
					continue
				}
			}
			b.WriteRune(r)
			i++

		case '[':
			if _, _, end, ok := scanTag(runes, i); ok {
				i = end
				continue
			}
			b.WriteRune(r)
			i++

		default:
			b.WriteRune(r)
			i++
		}
	}

	return b.String()
}

// EscapeMarkup escapes text so ParseMarkup reproduces it verbatim: brackets
// gain a preceding backslash and backslashes are doubled. This is the
// canonical inverse of the parser's unescaping, so
// StripMarkup(EscapeMarkup(t)) == t for any input.
func EscapeMarkup(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)

	for _, r := range text {
		switch r {
		case '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}

	return b.String()
}
