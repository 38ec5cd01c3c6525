package layout

// Page geometry shared by the sales document layouts.
const (
	// PageTop is the cursor position on a fresh page.
	PageTop = 815.0
	// LineHeight is the default distance between text lines.
	LineHeight = 15.0
	// BottomMargin is the lowest position content may start at before the
	// flow continues on a new page.
	BottomMargin = 15.0
	// MarginLeft and MarginRight bound the drawable width of a page.
	MarginLeft  = 25.0
	MarginRight = 570.0
)

// Cursor is the vertical write position on a page. Larger values are higher
// on the page. A Cursor is a value: operations return a new Cursor.
type Cursor struct {
	y float64
}

// NewCursor returns a cursor at y.
func NewCursor(y float64) Cursor { return Cursor{y: y} }

// Top returns a cursor at the top of a fresh page.
func Top() Cursor { return Cursor{y: PageTop} }

// Y returns the position.
func (c Cursor) Y() float64 { return c.y }

// Reserve moves the cursor down by h. Negative heights are ignored so the
// cursor never moves up.
func (c Cursor) Reserve(h float64) Cursor {
	if h <= 0 {
		return c
	}
	return Cursor{y: c.y - h}
}

// Fork returns an independent cursor at the same position, for laying out
// one of several parallel columns.
func (c Cursor) Fork() Cursor { return c }

// Reconcile returns the lowest of the given cursors.
func Reconcile(first Cursor, rest ...Cursor) Cursor {
	low := first
	for _, c := range rest {
		if c.y < low.y {
			low = c
		}
	}
	return low
}
