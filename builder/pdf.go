package builder

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
)

const pdfFontFamily = "Helvetica"

// PDFOption configures a PDFDocument.
type PDFOption func(*PDFDocument)

// WithTitle sets the document title metadata.
func WithTitle(title string) PDFOption {
	return func(d *PDFDocument) { d.title = title }
}

// WithCreationDate pins the creation date, for reproducible output.
func WithCreationDate(t time.Time) PDFOption {
	return func(d *PDFDocument) { d.created = t }
}

// WithCompression toggles stream compression.
func WithCompression(on bool) PDFOption {
	return func(d *PDFDocument) { d.compress = on }
}

// PDFDocument is a Document rendered to PDF with the core Helvetica fonts.
// Text is transcoded from UTF-8 to cp1252.
type PDFDocument struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	pages    []*pdfPage
	active   *pdfPage
	title    string
	created  time.Time
	compress bool
}

// NewPDF creates an empty A4 PDF document.
func NewPDF(opts ...PDFOption) *PDFDocument {
	d := &PDFDocument{compress: true}
	for _, opt := range opts {
		opt(d)
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(d.compress)
	pdf.SetCreator("invoicekit", true)
	if d.title != "" {
		pdf.SetTitle(d.title, true)
	}
	if !d.created.IsZero() {
		pdf.SetCreationDate(d.created)
		pdf.SetModificationDate(d.created)
	}
	d.pdf = pdf
	d.tr = pdf.UnicodeTranslatorFromDescriptor("")
	return d
}

func (d *PDFDocument) NewPage() Page {
	if n := len(d.pages); n > 0 {
		// AddPage appends after the current page only.
		d.pdf.SetPage(n)
	}
	d.pdf.AddPage()
	p := &pdfPage{
		doc:       d,
		num:       len(d.pages) + 1,
		lineColor: Color{},
		lineWidth: 1,
		style:     FontRegular,
		size:      10,
	}
	d.pages = append(d.pages, p)
	d.active = nil
	p.activate()
	return p
}

func (d *PDFDocument) PageCount() int { return len(d.pages) }

func (d *PDFDocument) Write(w io.Writer) error {
	if len(d.pages) == 0 {
		return fmt.Errorf("pdf: document has no pages")
	}
	d.pdf.SetPage(len(d.pages))
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return d.pdf.Output(w)
}

// Bytes renders the document into memory.
func (d *PDFDocument) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type pdfPage struct {
	doc       *PDFDocument
	num       int
	fill      Color
	lineColor Color
	lineWidth float64
	style     FontStyle
	size      float64
}

func (p *pdfPage) Number() int { return p.num }

// activate makes p the page fpdf draws on and restores its graphics state.
func (p *pdfPage) activate() *fpdf.Fpdf {
	pdf := p.doc.pdf
	if p.doc.active == p {
		return pdf
	}
	pdf.SetPage(p.num)
	r, g, b := rgb255(p.fill)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(r, g, b)
	r, g, b = rgb255(p.lineColor)
	pdf.SetDrawColor(r, g, b)
	pdf.SetLineWidth(p.lineWidth)
	pdf.SetFont(pdfFontFamily, fontStyleString(p.style), p.size)
	p.doc.active = p
	return pdf
}

// flip converts a bottom-up y coordinate to fpdf's top-down space.
func flip(y float64) float64 { return PageHeight - y }

func (p *pdfPage) DrawRectangle(x1, y1, x2, y2 float64) {
	pdf := p.activate()
	left, top := math.Min(x1, x2), math.Max(y1, y2)
	pdf.Rect(left, flip(top), math.Abs(x2-x1), math.Abs(y2-y1), "FD")
}

func (p *pdfPage) DrawLine(x1, y1, x2, y2 float64) {
	p.activate().Line(x1, flip(y1), x2, flip(y2))
}

func (p *pdfPage) DrawText(text string, x, y float64) {
	if text == "" {
		return
	}
	p.activate().Text(x, flip(y), p.doc.tr(text))
}

func (p *pdfPage) DrawImage(img *Image, x1, y1, x2, y2 float64) {
	if img == nil || len(img.Data) == 0 {
		return
	}
	pdf := p.activate()
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	if pdf.GetImageInfo(img.Name) == nil {
		pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
	}
	left, top := math.Min(x1, x2), math.Max(y1, y2)
	pdf.ImageOptions(img.Name, left, flip(top), math.Abs(x2-x1), math.Abs(y2-y1), false, opts, 0, "")
}

func (p *pdfPage) SetFillColor(c Color) {
	p.fill = c
	pdf := p.activate()
	r, g, b := rgb255(c)
	pdf.SetFillColor(r, g, b)
	pdf.SetTextColor(r, g, b)
}

func (p *pdfPage) SetLineColor(c Color) {
	p.lineColor = c
	r, g, b := rgb255(c)
	p.activate().SetDrawColor(r, g, b)
}

func (p *pdfPage) SetLineWidth(w float64) {
	p.lineWidth = w
	p.activate().SetLineWidth(w)
}

func (p *pdfPage) SetFont(style FontStyle, size float64) {
	p.style = style
	p.size = size
	p.activate().SetFont(pdfFontFamily, fontStyleString(style), size)
}

func (p *pdfPage) StringWidth(text string) float64 {
	return p.activate().GetStringWidth(p.doc.tr(text))
}

func fontStyleString(s FontStyle) string {
	switch s {
	case FontBold:
		return "B"
	case FontItalic:
		return "I"
	default:
		return ""
	}
}

func rgb255(c Color) (int, int, int) {
	conv := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	return conv(c.R), conv(c.G), conv(c.B)
}
