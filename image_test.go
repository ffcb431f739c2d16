package richtext

import (
	"image/color"
	"testing"
)

func TestRenderImageDimensions(t *testing.T) {
	text := NewText("hello")
	img := text.RenderImageWithConfig(&ImageConfig{
		Width:      20,
		CellWidth:  7,
		CellHeight: 13,
	})

	bounds := img.Bounds()
	if bounds.Dx() != 20*7 {
		t.Errorf("expected width %d, got %d", 20*7, bounds.Dx())
	}
	if bounds.Dy() != 13 {
		t.Errorf("expected one line of height 13, got %d", bounds.Dy())
	}
}

func TestRenderImageWrapsLines(t *testing.T) {
	text := NewText("the quick brown fox")
	img := text.RenderImageWithConfig(&ImageConfig{
		Width:      10,
		CellWidth:  7,
		CellHeight: 13,
	})

	if got := img.Bounds().Dy(); got != 2*13 {
		t.Errorf("expected 2 lines of height 13, got %d", got)
	}
}

func TestRenderImageBackgroundFill(t *testing.T) {
	bg := color.RGBA{10, 20, 30, 255}
	text := NewText("")
	img := text.RenderImageWithConfig(&ImageConfig{
		Width:      4,
		CellWidth:  7,
		CellHeight: 13,
		DefaultBG:  &bg,
	})

	if got := img.RGBAAt(0, 0); got != bg {
		t.Errorf("expected background fill %v, got %v", bg, got)
	}
}

func TestRenderImageCellBackground(t *testing.T) {
	text := NewText("x", WithStyle(ParseStyle("on #ff0000")))
	img := text.RenderImageWithConfig(&ImageConfig{
		Width:      4,
		CellWidth:  7,
		CellHeight: 13,
	})

	// A corner of the first cell carries the styled background
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("expected red cell background, got %v", got)
	}
}

func TestRenderImageDefaults(t *testing.T) {
	img := NewText("hi").RenderImage()

	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Error("expected non-empty image from defaults")
	}
}
