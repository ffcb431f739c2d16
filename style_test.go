package richtext

import (
	"testing"
)

func TestParseStyleDefinition(t *testing.T) {
	s := ParseStyle("bold red on blue")

	if !s.Has(FlagBold) {
		t.Error("expected bold")
	}
	if s.Foreground() != ParseColor("red") {
		t.Errorf("expected red foreground, got %v", s.Foreground())
	}
	if s.Background() != ParseColor("blue") {
		t.Errorf("expected blue background, got %v", s.Background())
	}
}

func TestParseStyleEmpty(t *testing.T) {
	if ParseStyle("") != nil {
		t.Error("expected nil style for empty definition")
	}
	if ParseStyle("   ") != nil {
		t.Error("expected nil style for blank definition")
	}
}

func TestParseStyleNot(t *testing.T) {
	s := ParseStyle("not bold")

	if s.Has(FlagBold) {
		t.Error("expected bold off")
	}
	// Explicitly off is not the same as unset
	if s.IsNull() {
		t.Error("expected 'not bold' style to be non-null")
	}
}

func TestParseStyleLink(t *testing.T) {
	s := ParseStyle("underline link https://example.com")

	if !s.Has(FlagUnderline) {
		t.Error("expected underline")
	}
	if s.Link() != "https://example.com" {
		t.Errorf("expected link, got %q", s.Link())
	}
}

func TestCombineNilIdentity(t *testing.T) {
	s := ParseStyle("bold")

	if got := s.Combine(nil); got != s {
		t.Error("expected combine with nil overlay to return base")
	}
	if got := (*Style)(nil).Combine(s); got != s {
		t.Error("expected combine on nil base to return overlay")
	}
	if got := (*Style)(nil).Combine(nil); got != nil {
		t.Error("expected two nils to combine to nil")
	}
}

func TestCombineOverlayWins(t *testing.T) {
	base := ParseStyle("bold red")
	overlay := ParseStyle("not bold on blue")

	out := base.Combine(overlay)

	if out.Has(FlagBold) {
		t.Error("expected overlay's explicit off to win")
	}
	if out.Foreground() != ParseColor("red") {
		t.Errorf("expected base foreground kept, got %v", out.Foreground())
	}
	if out.Background() != ParseColor("blue") {
		t.Errorf("expected overlay background, got %v", out.Background())
	}
}

func TestCombineUnsetInherits(t *testing.T) {
	base := ParseStyle("italic green")
	overlay := ParseStyle("bold")

	out := base.Combine(overlay)

	if !out.Has(FlagItalic) {
		t.Error("expected italic inherited from base")
	}
	if !out.Has(FlagBold) {
		t.Error("expected bold from overlay")
	}
	if out.Foreground() != ParseColor("green") {
		t.Errorf("expected green inherited, got %v", out.Foreground())
	}
}

func TestCombineDoesNotMutateOperands(t *testing.T) {
	base := ParseStyle("bold")
	overlay := ParseStyle("not bold")

	base.Combine(overlay)

	if !base.Has(FlagBold) {
		t.Error("expected base unchanged")
	}
	if overlay.Has(FlagBold) {
		t.Error("expected overlay unchanged")
	}
}

func TestStyleRender(t *testing.T) {
	out := ParseStyle("bold red").Render("hi")

	if out != "\x1b[31;1mhi\x1b[0m" {
		t.Errorf("unexpected render output: %q", out)
	}
}

func TestStyleRenderNull(t *testing.T) {
	if out := (*Style)(nil).Render("hi"); out != "hi" {
		t.Errorf("expected nil style to pass text through, got %q", out)
	}
	if out := NewStyle().Render("hi"); out != "hi" {
		t.Errorf("expected null style to pass text through, got %q", out)
	}
}

func TestStyleRenderExplicitOffEmitsNothing(t *testing.T) {
	if out := ParseStyle("not bold").Render("hi"); out != "hi" {
		t.Errorf("expected no codes for explicitly-off attribute, got %q", out)
	}
}

func TestStyleRenderLink(t *testing.T) {
	out := ParseStyle("link https://example.com").Render("hi")

	want := "\x1b]8;;https://example.com\x1b\\hi\x1b]8;;\x1b\\"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestStyleStringRoundTrip(t *testing.T) {
	for _, def := range []string{
		"bold",
		"not bold",
		"bold italic red on blue",
		"underline #ff8800 link https://example.com",
	} {
		s := ParseStyle(def)
		if got := ParseStyle(s.String()); !got.Equal(s) {
			t.Errorf("%q: round trip changed style: %q", def, s.String())
		}
	}
}

func TestStyleWithBuilders(t *testing.T) {
	s := NewStyle().WithBold(true).WithForeground(ParseColor("red"))

	if !s.Has(FlagBold) {
		t.Error("expected bold")
	}
	if s.Foreground() != ParseColor("red") {
		t.Errorf("expected red, got %v", s.Foreground())
	}

	off := s.WithBold(false)
	if off.Has(FlagBold) {
		t.Error("expected bold off on the copy")
	}
	if !s.Has(FlagBold) {
		t.Error("expected original untouched")
	}
}

func TestStyleEqual(t *testing.T) {
	if !ParseStyle("bold red").Equal(ParseStyle("bold red")) {
		t.Error("expected equal styles")
	}
	if ParseStyle("bold").Equal(ParseStyle("not bold")) {
		t.Error("expected set-on and set-off to differ")
	}
	if !(*Style)(nil).Equal(NewStyle()) {
		t.Error("expected nil to equal the null style")
	}
}

func TestStyleDownsampled(t *testing.T) {
	s := ParseStyle("#ff0000")

	out := s.downsampled()
	if out.Foreground().Kind != ColorKindStandard {
		t.Fatalf("expected palette foreground, got kind %d", out.Foreground().Kind)
	}
	if out.Foreground().Index != 196 {
		t.Errorf("expected index 196, got %d", out.Foreground().Index)
	}

	// Palette-only styles come back as-is
	p := ParseStyle("red")
	if p.downsampled() != p {
		t.Error("expected palette style returned unchanged")
	}
}
