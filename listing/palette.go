package listing

// Color is a display color as a #rrggbb hex string.
type Color string

// Palette is a fixed set of display colors, indexed by source line.
type Palette []Color

// DefaultPalette holds pastel backgrounds legible under dark text.
var DefaultPalette = Palette{
	"#b3e2cd",
	"#fdcdac",
	"#cbd5e8",
	"#f4cae4",
	"#e6f5c9",
	"#fff2ae",
	"#f1e2cc",
	"#cccccc",
}

// lineStride spreads adjacent lines across the palette so neighboring
// source lines rarely share a color.
const lineStride = 11

// For returns the color for a 1-based source line. The choice depends
// only on the line number, never on which other lines are present.
func (pal Palette) For(line int) Color {
	return pal[(line*lineStride)%len(pal)]
}
