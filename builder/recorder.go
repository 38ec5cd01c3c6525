package builder

import (
	"encoding/json"
	"io"
)

// Op kinds captured by the Recorder.
const (
	OpRectangle = "rect"
	OpLine      = "line"
	OpText      = "text"
	OpImage     = "image"
)

// Op is one recorded drawing call with the graphics state it was drawn in.
type Op struct {
	Kind  string  `json:"op"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2,omitempty"`
	Y2    float64 `json:"y2,omitempty"`
	Text  string  `json:"text,omitempty"`
	Image string  `json:"image,omitempty"`
	Fill  Color   `json:"fill"`
	Line  Color   `json:"line"`
	Width float64 `json:"line_width,omitempty"`
	Font  string  `json:"font,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// Recorder is a Document that keeps every drawing call in memory. It backs
// layout traces (Write emits JSON) and layout assertions in tests.
type Recorder struct {
	pages []*RecordedPage
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) NewPage() Page {
	p := &RecordedPage{num: len(r.pages) + 1, lineWidth: 1, size: 10}
	r.pages = append(r.pages, p)
	return p
}

func (r *Recorder) PageCount() int { return len(r.pages) }

// Pages returns the recorded pages in order.
func (r *Recorder) Pages() []*RecordedPage { return r.pages }

// Page returns the page with the 1-based number n, or nil.
func (r *Recorder) Page(n int) *RecordedPage {
	if n < 1 || n > len(r.pages) {
		return nil
	}
	return r.pages[n-1]
}

type recordedDoc struct {
	Pages []recordedPageJSON `json:"pages"`
}

type recordedPageJSON struct {
	Number int  `json:"number"`
	Ops    []Op `json:"ops"`
}

// Write emits the recorded operations as indented JSON.
func (r *Recorder) Write(w io.Writer) error {
	doc := recordedDoc{Pages: make([]recordedPageJSON, 0, len(r.pages))}
	for _, p := range r.pages {
		doc.Pages = append(doc.Pages, recordedPageJSON{Number: p.num, Ops: p.Ops})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// RecordedPage is a Page of a Recorder.
type RecordedPage struct {
	Ops []Op

	num       int
	fill      Color
	line      Color
	lineWidth float64
	style     FontStyle
	size      float64
}

func (p *RecordedPage) Number() int { return p.num }

func (p *RecordedPage) record(op Op) {
	op.Fill = p.fill
	op.Line = p.line
	op.Width = p.lineWidth
	op.Font = p.style.String()
	op.Size = p.size
	p.Ops = append(p.Ops, op)
}

func (p *RecordedPage) DrawRectangle(x1, y1, x2, y2 float64) {
	p.record(Op{Kind: OpRectangle, X1: x1, Y1: y1, X2: x2, Y2: y2})
}

func (p *RecordedPage) DrawLine(x1, y1, x2, y2 float64) {
	p.record(Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2})
}

func (p *RecordedPage) DrawText(text string, x, y float64) {
	p.record(Op{Kind: OpText, X1: x, Y1: y, Text: text})
}

func (p *RecordedPage) DrawImage(img *Image, x1, y1, x2, y2 float64) {
	name := ""
	if img != nil {
		name = img.Name
	}
	p.record(Op{Kind: OpImage, X1: x1, Y1: y1, X2: x2, Y2: y2, Image: name})
}

func (p *RecordedPage) SetFillColor(c Color)   { p.fill = c }
func (p *RecordedPage) SetLineColor(c Color)   { p.line = c }
func (p *RecordedPage) SetLineWidth(w float64) { p.lineWidth = w }

func (p *RecordedPage) SetFont(style FontStyle, size float64) {
	p.style = style
	p.size = size
}

func (p *RecordedPage) StringWidth(text string) float64 { return approxWidth(text, p.size) }

// Texts returns the drawn strings in drawing order.
func (p *RecordedPage) Texts() []string {
	var out []string
	for _, op := range p.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Find returns the first text op whose text equals s.
func (p *RecordedPage) Find(s string) (Op, bool) {
	for _, op := range p.Ops {
		if op.Kind == OpText && op.Text == s {
			return op, true
		}
	}
	return Op{}, false
}

// OpsOfKind returns the ops of one kind in drawing order.
func (p *RecordedPage) OpsOfKind(kind string) []Op {
	var out []Op
	for _, op := range p.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
