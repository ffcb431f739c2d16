package richtext

import (
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontFinder locates font files by name (useful for avoiding font library dependencies).
type FontFinder interface {
	// Find returns the filesystem path to a font file matching the given name.
	Find(name string) (string, error)
}

// ImageConfig controls how text is rasterized to an image.
type ImageConfig struct {
	// Font face to use for rendering. If nil and FontName is empty, uses basicfont.Face7x13.
	Font font.Face

	// FontFinder is used to find fonts by name. Optional.
	FontFinder FontFinder

	// FontName is the font name to find using FontFinder.
	FontName string

	// FontSize is the font size when using FontFinder. Default 14.
	FontSize float64

	// CellWidth and CellHeight override the cell dimensions.
	// If zero, derived from font metrics.
	CellWidth  int
	CellHeight int

	// Width is the wrap width in cells. Default 80.
	Width int

	// Palette is the 256-color palette. If nil, uses DefaultPalette.
	Palette *[256]color.RGBA

	// DefaultFG is the default foreground color. If nil, uses DefaultForeground.
	DefaultFG *color.RGBA

	// DefaultBG is the default background color. If nil, uses DefaultBackground.
	DefaultBG *color.RGBA
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	return face, nil
}

// RenderImage rasterizes the text to an RGBA image using default settings
// (basicfont, 80-cell wrap width, default palette).
func (t *Text) RenderImage() *image.RGBA {
	return t.RenderImageWithConfig(&ImageConfig{})
}

// RenderImageWithConfig rasterizes the text to an RGBA image with custom
// font, colors, and dimensions. The text is wrapped at the configured width
// and drawn one cell per code point, honoring foreground and background
// colors, reverse, dim, underline, and strikethrough.
func (t *Text) RenderImageWithConfig(cfg *ImageConfig) *image.RGBA {
	face := cfg.Font
	if face == nil && cfg.FontFinder != nil && cfg.FontName != "" {
		// Use FontFinder to load font by name
		size := cfg.FontSize
		if size == 0 {
			size = 14
		}
		if path, err := cfg.FontFinder.Find(cfg.FontName); err == nil {
			if loadedFace, err := LoadFont(path, size); err == nil {
				face = loadedFace
			}
		}
	}
	if face == nil {
		face = basicfont.Face7x13
	}

	cellWidth := cfg.CellWidth
	cellHeight := cfg.CellHeight
	if cellWidth == 0 || cellHeight == 0 {
		metrics := face.Metrics()
		if cellWidth == 0 {
			// Measure a character to get width
			adv, _ := face.GlyphAdvance('M')
			cellWidth = adv.Ceil()
			if cellWidth == 0 {
				cellWidth = 7 // fallback for basicfont
			}
		}
		if cellHeight == 0 {
			cellHeight = metrics.Height.Ceil()
		}
	}

	width := cfg.Width
	if width <= 0 {
		width = 80
	}

	palette := cfg.Palette
	if palette == nil {
		palette = &DefaultPalette
	}

	defaultFG := cfg.DefaultFG
	if defaultFG == nil {
		defaultFG = &DefaultForeground
	}

	defaultBG := cfg.DefaultBG
	if defaultBG == nil {
		defaultBG = &DefaultBackground
	}

	lines := t.Wrap(width)

	// Create image
	imgWidth := width * cellWidth
	imgHeight := len(lines) * cellHeight
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	// Fill background
	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			img.Set(x, y, defaultBG)
		}
	}

	metrics := face.Metrics()

	for row, line := range lines {
		col := 0
		y := row * cellHeight
		baseline := y + metrics.Ascent.Ceil()

		for _, seg := range line.Segments() {
			style := seg.Style

			// Get colors using custom palette
			fg := resolveRGBA(style.Foreground(), true, palette, defaultFG, defaultBG)
			bg := resolveRGBA(style.Background(), false, palette, defaultFG, defaultBG)

			// Handle reverse video
			if style.Has(FlagReverse) {
				fg, bg = bg, fg
			}

			// Handle dim
			if style.Has(FlagDim) {
				fg = color.RGBA{
					R: uint8(float64(fg.R) * 0.66),
					G: uint8(float64(fg.G) * 0.66),
					B: uint8(float64(fg.B) * 0.66),
					A: fg.A,
				}
			}

			for _, ch := range seg.Text {
				x := col * cellWidth
				col++
				if x >= imgWidth {
					break
				}

				// Fill cell background
				for py := 0; py < cellHeight; py++ {
					for px := 0; px < cellWidth; px++ {
						img.Set(x+px, y+py, bg)
					}
				}

				// Draw character
				if ch != ' ' {
					d := &font.Drawer{
						Dst:  img,
						Src:  image.NewUniform(fg),
						Face: face,
						Dot:  fixed.P(x, baseline),
					}
					d.DrawString(string(ch))
				}

				// Handle underline
				if style.Has(FlagUnderline) {
					underlineY := baseline + 2
					for px := 0; px < cellWidth; px++ {
						if underlineY < imgHeight {
							img.Set(x+px, underlineY, fg)
						}
					}
				}

				// Handle strikethrough
				if style.Has(FlagStrikethrough) {
					strikeY := y + cellHeight/2
					for px := 0; px < cellWidth; px++ {
						img.Set(x+px, strikeY, fg)
					}
				}
			}
		}
	}

	return img
}
