// Package builder provides the drawing surface documents are laid out on.
//
// Coordinates are PDF user space points with the origin in the lower left
// corner of the page, so larger y values are higher on the page.
package builder

import "io"

// A4 page size in points, as used by sales documents.
const (
	PageWidth  = 595.0
	PageHeight = 842.0
)

// FontStyle selects the face of the document font.
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
	FontItalic
)

func (s FontStyle) String() string {
	switch s {
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	default:
		return "regular"
	}
}

// Color is an RGB color with components in [0,1].
type Color struct {
	R, G, B float64
}

// Gray returns the gray level color.
func Gray(level float64) Color { return Color{R: level, G: level, B: level} }

// RGB returns the color with the given components.
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b} }

// Page is one drawable page. Graphics state (colors, line width, font) is
// kept per page and applies to the drawing calls that follow.
type Page interface {
	// Number is the 1-based position of the page in its document.
	Number() int
	// DrawRectangle fills and strokes the rectangle spanned by two corners.
	DrawRectangle(x1, y1, x2, y2 float64)
	DrawLine(x1, y1, x2, y2 float64)
	// DrawText draws UTF-8 text with its baseline starting at (x, y).
	DrawText(text string, x, y float64)
	// DrawImage scales img into the box spanned by two corners.
	DrawImage(img *Image, x1, y1, x2, y2 float64)
	// SetFillColor sets the color used for rectangle fills and text.
	SetFillColor(c Color)
	SetLineColor(c Color)
	SetLineWidth(w float64)
	SetFont(style FontStyle, size float64)
	// StringWidth measures text in the current font.
	StringWidth(text string) float64
}

// Document is a sequence of pages.
type Document interface {
	// NewPage appends an A4 page and returns it.
	NewPage() Page
	// PageCount returns the number of pages created so far.
	PageCount() int
	// Write serializes the document.
	Write(w io.Writer) error
}

// approxWidth estimates the width of text for Helvetica when no font
// metrics are available.
func approxWidth(text string, size float64) float64 {
	if size <= 0 {
		size = 10
	}
	n := 0
	for range text {
		n++
	}
	return float64(n) * size * 0.5
}
