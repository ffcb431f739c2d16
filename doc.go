// Package richtext provides styled text composition: parse style definitions,
// mark up text with bracket tags, wrap and justify it, and render the result
// as ANSI escape sequences or a raster image.
//
// This package builds strings for terminals without owning the terminal. It is
// ideal for:
//   - CLI tools that print colored, word-wrapped output
//   - Log and report formatters
//   - Rendering terminal-styled text to PNG for docs and tests
//   - Round-tripping ANSI output captured from other programs
//
// # Quick Start
//
// Parse console markup and render it:
//
//	text, _ := richtext.ParseMarkup("[bold red]Error:[/bold red] disk full", nil)
//	text.Render(os.Stdout, richtext.ColorSystemTrueColor)
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Style]: Immutable terminal style (colors, attributes, hyperlink)
//   - [Segment]: A run of text with a single resolved style
//   - [Text]: Styled text with a span table, supporting wrap and layout
//   - [Color]: A default, palette, or truecolor value
//
// # Styles
//
// Styles are parsed from space-separated definitions. Attribute words set a
// flag, "not <word>" clears it, a bare color token sets the foreground, "on"
// marks the next color as background, and "link <url>" attaches a hyperlink:
//
//	style := richtext.ParseStyle("bold red on #1e1e1e link https://example.com")
//	fmt.Print(style.Render("click me"))
//
// Every attribute is tri-state: set on, set off, or absent. [Style.Combine]
// overlays one style on another; only attributes the overlay explicitly sets
// win, so "not bold" can cancel bold from an outer style while leaving the
// rest intact. A nil *Style means no styling at all and combines as identity.
//
// # Text
//
// Text holds a flat string plus spans, each attaching a style to a half-open
// range. Spans may nest and overlap; [Text.Segments] flattens them into
// non-overlapping runs with combined styles:
//
//	t := richtext.NewText("hello world", richtext.WithStyle(base))
//	t.Stylize(richtext.ParseStyle("underline"), 6, 11)
//	for _, seg := range t.Segments() {
//	    // seg.Text, seg.Style
//	}
//
// Layout operations work in place or return new values: [Text.Append],
// [Text.Pad], [Text.Truncate], [Text.ExpandTabs], [Text.SplitLines],
// [Text.Divide], and [Text.Wrap]:
//
//	for _, line := range t.Wrap(40) {
//	    line.Render(os.Stdout, richtext.ColorSystemTrueColor)
//	    fmt.Println()
//	}
//
// # Console Markup
//
// Markup uses square-bracket tags. An opening tag holds a style definition;
// a closing tag names the style to close, matching the innermost open tag
// with the same text, so tags need not nest:
//
//	richtext.ParseMarkup("[bold]sum: [red]-12.3[/red][/bold]", nil)
//
// Backslash escapes brackets; use [EscapeMarkup] to quote untrusted input and
// [StripMarkup] to recover plain text. A closing tag with no matching open
// tag fails with [UnmatchedCloseTagError].
//
// # Colors
//
// Color tokens are names ("red", "bright_blue"), hex literals ("#ff8800"),
// or palette indices ("196"). Rendering targets either truecolor or 256-color
// terminals; [ColorSystemEightBit] downsamples RGB values to the nearest
// palette entry by perceptual distance:
//
//	text.Render(os.Stdout, richtext.ColorSystemEightBit)
//
// # ANSI Round Trip
//
// [FromANSI] decodes a string containing SGR and OSC 8 sequences back into a
// styled Text, so output captured from another program can be re-wrapped and
// re-rendered:
//
//	text := richtext.FromANSI("\x1b[1;31mbold red\x1b[0m plain")
//
// # Snapshots
//
// Capture wrapped text for serialization:
//
//	snap := text.Snapshot(80, richtext.SnapshotDetailStyled)
//	data, _ := json.Marshal(snap)
//
// # Images
//
// Render styled text to an RGBA image, using a bundled bitmap font or any
// TrueType/OpenType face:
//
//	img := text.RenderImage()
//	png.Encode(f, img)
//
// See [ImageConfig] for font, palette, and dimension options.
package richtext
