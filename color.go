package richtext

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorKind discriminates how a Color is stored and encoded.
type ColorKind uint8

const (
	// ColorKindDefault is the terminal's default color; it emits no escape codes.
	ColorKindDefault ColorKind = iota
	// ColorKindStandard is a palette index 0-255 (16 named + 216 cube + 24 grayscale).
	ColorKindStandard
	// ColorKindRGB is a 24-bit truecolor value.
	ColorKindRGB
	// ColorKindUnresolved is a color name that did not resolve; it is carried
	// through unchanged and emits no escape codes.
	ColorKindUnresolved
)

// Color is an immutable color value used for foregrounds and backgrounds.
// The zero value is the terminal default.
type Color struct {
	Kind ColorKind

	// Index is the palette index when Kind is ColorKindStandard.
	Index uint8

	// R, G, B are the channels when Kind is ColorKindRGB.
	R, G, B uint8

	// Name is the original token when Kind is ColorKindUnresolved.
	Name string
}

// ColorDefault is the terminal's default color.
var ColorDefault = Color{Kind: ColorKindDefault}

// ColorFromIndex creates a standard palette color (0-255).
func ColorFromIndex(index uint8) Color {
	return Color{Kind: ColorKindStandard, Index: index}
}

// ColorFromRGB creates a 24-bit truecolor value.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{Kind: ColorKindRGB, R: r, G: g, B: b}
}

// colorNames maps recognized color names to standard palette indices.
var colorNames = map[string]uint8{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,

	"bright_black":   8,
	"bright_red":     9,
	"bright_green":   10,
	"bright_yellow":  11,
	"bright_blue":    12,
	"bright_magenta": 13,
	"bright_cyan":    14,
	"bright_white":   15,

	"grey": 8,
	"gray": 8,
}

// ParseColor converts a color token to a Color. Recognized forms are a color
// name ("red", "bright_blue"), a hex literal ("#ff8800"), and a decimal
// palette index ("196"). Unrecognized names are carried through as
// ColorKindUnresolved rather than rejected; ParseColor never fails.
func ParseColor(token string) Color {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" || token == "default" {
		return ColorDefault
	}

	if index, ok := colorNames[token]; ok {
		return ColorFromIndex(index)
	}

	if strings.HasPrefix(token, "#") {
		hex := token[1:]
		if len(hex) == 6 {
			if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
				return ColorFromRGB(uint8(v>>16), uint8(v>>8), uint8(v))
			}
		}
		return Color{Kind: ColorKindUnresolved, Name: token}
	}

	if n, err := strconv.ParseUint(token, 10, 8); err == nil {
		return ColorFromIndex(uint8(n))
	}

	return Color{Kind: ColorKindUnresolved, Name: token}
}

// IsDefault returns true if this is the default (unset) color.
func (c Color) IsDefault() bool {
	return c.Kind == ColorKindDefault
}

// String returns the token form of the color, suitable for ParseColor.
func (c Color) String() string {
	switch c.Kind {
	case ColorKindStandard:
		for name, index := range colorNames {
			if index == c.Index && name != "grey" && name != "gray" {
				return name
			}
		}
		return strconv.Itoa(int(c.Index))
	case ColorKindRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	case ColorKindUnresolved:
		return c.Name
	default:
		return "default"
	}
}

// appendSGR appends the SGR parameters that select this color.
// Palette indices 0-7 use the base range (30/40), 8-15 the bright range
// (90/100), 16-255 the extended 256-color form, and RGB the truecolor form.
// Default and unresolved colors emit nothing.
func (c Color) appendSGR(params []string, background bool) []string {
	base := 30
	extended := "38"
	if background {
		base = 40
		extended = "48"
	}

	switch c.Kind {
	case ColorKindStandard:
		switch {
		case c.Index < 8:
			params = append(params, strconv.Itoa(base+int(c.Index)))
		case c.Index < 16:
			params = append(params, strconv.Itoa(base+60+int(c.Index)-8))
		default:
			params = append(params, extended, "5", strconv.Itoa(int(c.Index)))
		}
	case ColorKindRGB:
		params = append(params, extended, "2",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)))
	}

	return params
}

// Downsample maps a truecolor value to the nearest standard palette entry
// using perceptual (Lab) distance. Palette and default colors are returned
// unchanged. Useful when the output target only supports 256 colors.
func (c Color) Downsample() Color {
	if c.Kind != ColorKindRGB {
		return c
	}

	target := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}

	best := 0
	bestDistance := -1.0
	for i, entry := range DefaultPalette {
		candidate := colorful.Color{
			R: float64(entry.R) / 255,
			G: float64(entry.G) / 255,
			B: float64(entry.B) / 255,
		}
		d := target.DistanceLab(candidate)
		if bestDistance < 0 || d < bestDistance {
			best = i
			bestDistance = d
		}
	}

	return ColorFromIndex(uint8(best))
}

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15), 216 color cube (16-231), 24 grayscale (232-255).
var DefaultPalette = [256]color.RGBA{
	// Standard colors (0-7)
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White

	// Bright colors (8-15)
	{102, 102, 102, 255}, // Bright Black
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White

	// 216 colors (16-231)
	// Generated programmatically below

	// Grayscale (232-255)
	// Generated programmatically below
}

func init() {
	// Generate 216 color cube (16-231)
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{
					R: uint8(r * 51),
					G: uint8(g * 51),
					B: uint8(b * 51),
					A: 255,
				}
				i++
			}
		}
	}

	// Generate grayscale (232-255)
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{gray, gray, gray, 255}
	}
}

// DefaultForeground is the default text color used when rasterizing (light gray).
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the default background color used when rasterizing (black).
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// resolveRGBA resolves a Color to concrete RGBA using the given palette and
// defaults. Default and unresolved colors fall back to the foreground or
// background default depending on fg.
func resolveRGBA(c Color, fg bool, palette *[256]color.RGBA, defaultFG, defaultBG *color.RGBA) color.RGBA {
	switch c.Kind {
	case ColorKindStandard:
		return palette[c.Index]
	case ColorKindRGB:
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	default:
		if fg {
			return *defaultFG
		}
		return *defaultBG
	}
}
