package richtext

import (
	"errors"
	"testing"
)

func TestParseMarkupBasic(t *testing.T) {
	text, err := ParseMarkup("hello [bold]world[/bold]!", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text.Plain() != "hello world!" {
		t.Errorf("expected tags removed, got %q", text.Plain())
	}

	spans := text.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != 6 || spans[0].End != 11 {
		t.Errorf("expected span [6,11), got [%d,%d)", spans[0].Start, spans[0].End)
	}
	if !spans[0].Style.Has(FlagBold) {
		t.Error("expected bold span")
	}
}

func TestParseMarkupAlias(t *testing.T) {
	text, err := ParseMarkup("[b]x[/b]", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := text.Spans()
	if len(spans) != 1 || !spans[0].Style.Has(FlagBold) {
		t.Error("expected [b] to resolve to bold")
	}
}

func TestParseMarkupStyleDefinitionTag(t *testing.T) {
	text, err := ParseMarkup("[bold red on blue]x[/bold red on blue]", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := text.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0].Style
	if !s.Has(FlagBold) || s.Foreground() != ParseColor("red") || s.Background() != ParseColor("blue") {
		t.Errorf("unexpected style: %q", s.String())
	}
}

func TestParseMarkupOutOfOrderClose(t *testing.T) {
	// Closing tags match by name, innermost first, so tags need not nest.
	text, err := ParseMarkup("[b]outer[b]inner[/b]after[/b]", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text.Plain() != "outerinnerafter" {
		t.Errorf("unexpected plain text: %q", text.Plain())
	}

	spans := text.Spans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	// Widest span first: the outer [b] covers everything
	if spans[0].Start != 0 || spans[0].End != 15 {
		t.Errorf("expected outer span [0,15), got [%d,%d)", spans[0].Start, spans[0].End)
	}
	if spans[1].Start != 5 || spans[1].End != 10 {
		t.Errorf("expected inner span [5,10), got [%d,%d)", spans[1].Start, spans[1].End)
	}
}

func TestParseMarkupAnonymousClose(t *testing.T) {
	text, err := ParseMarkup("[bold][italic]x[/]y[/]z", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text.Plain() != "xyz" {
		t.Errorf("expected xyz, got %q", text.Plain())
	}

	spans := text.Spans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	// First [/] closes italic over "x", second closes bold over "xy"
	if spans[0].Start != 0 || spans[0].End != 2 || !spans[0].Style.Has(FlagBold) {
		t.Errorf("expected bold span [0,2), got %+v", spans[0])
	}
	if spans[1].Start != 0 || spans[1].End != 1 || !spans[1].Style.Has(FlagItalic) {
		t.Errorf("expected italic span [0,1), got %+v", spans[1])
	}
}

func TestParseMarkupAnonymousCloseUnmatched(t *testing.T) {
	_, err := ParseMarkup("x[/]", nil)

	var unmatched *UnmatchedCloseTagError
	if !errors.As(err, &unmatched) {
		t.Fatalf("expected UnmatchedCloseTagError, got %v", err)
	}
}

func TestParseMarkupImplicitCloseAtEOF(t *testing.T) {
	text, err := ParseMarkup("[bold]never closed", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := text.Spans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != text.Len() {
		t.Errorf("expected span to cover to EOF, got [%d,%d)", spans[0].Start, spans[0].End)
	}
}

func TestParseMarkupUnmatchedClose(t *testing.T) {
	_, err := ParseMarkup("text [/bold]", nil)
	if err == nil {
		t.Fatal("expected error for unmatched closing tag")
	}

	var unmatched *UnmatchedCloseTagError
	if !errors.As(err, &unmatched) {
		t.Fatalf("expected UnmatchedCloseTagError, got %T", err)
	}
	if unmatched.Tag != "bold" {
		t.Errorf("expected tag 'bold', got %q", unmatched.Tag)
	}
}

func TestParseMarkupEscapes(t *testing.T) {
	text, err := ParseMarkup(`\[not a tag\] and \\ backslash`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text.Plain() != `[not a tag] and \ backslash` {
		t.Errorf("unexpected plain text: %q", text.Plain())
	}
	if len(text.Spans()) != 0 {
		t.Errorf("expected no spans, got %d", len(text.Spans()))
	}
}

func TestParseMarkupLiteralBracket(t *testing.T) {
	// Bracket runs that don't match the tag grammar are literal text
	text, err := ParseMarkup("a[!]b[]c", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text.Plain() != "a[!]b[]c" {
		t.Errorf("expected literal brackets kept, got %q", text.Plain())
	}
}

func TestParseMarkupBaseStyle(t *testing.T) {
	base := ParseStyle("dim")
	text, err := ParseMarkup("[bold]x[/bold]", base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	segments := text.Segments()
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if !segments[0].Style.Equal(ParseStyle("dim bold")) {
		t.Errorf("expected tag folded onto base style, got %q", segments[0].Style.String())
	}
}

func TestStripMarkup(t *testing.T) {
	got := StripMarkup("[bold]sum:[/bold] [red]-12.3[/red]")
	if got != "sum: -12.3" {
		t.Errorf("expected plain text, got %q", got)
	}
}

func TestStripMarkupNeverFails(t *testing.T) {
	// Unmatched closes are simply dropped
	got := StripMarkup("a[/bold]b")
	if got != "ab" {
		t.Errorf("expected ab, got %q", got)
	}
}

func TestEscapeMarkupInverse(t *testing.T) {
	for _, input := range []string{
		"plain",
		"[bold] literal",
		`back\slash`,
		`mix \[ of [tags] and \\ escapes ]`,
	} {
		if got := StripMarkup(EscapeMarkup(input)); got != input {
			t.Errorf("%q: strip(escape(t)) = %q", input, got)
		}

		text, err := ParseMarkup(EscapeMarkup(input), nil)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", input, err)
			continue
		}
		if text.Plain() != input {
			t.Errorf("%q: parse(escape(t)).Plain() = %q", input, text.Plain())
		}
	}
}

func TestEscapeMarkup(t *testing.T) {
	if got := EscapeMarkup(`[x]\`); got != `\[x\]\\` {
		t.Errorf("unexpected escape output: %q", got)
	}
}
