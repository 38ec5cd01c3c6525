package layout

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wudi/invoicekit/builder"
)

func TestCursor(t *testing.T) {
	c := Top()
	if c.Y() != PageTop {
		t.Fatalf("fresh cursor at %v, want %v", c.Y(), PageTop)
	}
	c2 := c.Reserve(LineHeight)
	if c2.Y() != PageTop-LineHeight || c.Y() != PageTop {
		t.Fatalf("Reserve must return a moved copy: c=%v c2=%v", c.Y(), c2.Y())
	}
	if c3 := c2.Reserve(-40); c3.Y() != c2.Y() {
		t.Fatalf("negative reserve moved the cursor up to %v", c3.Y())
	}
	fork := c2.Fork().Reserve(100)
	if c2.Y() != PageTop-LineHeight {
		t.Fatalf("fork shares state with its origin")
	}
	if got := Reconcile(c2, fork, c); got.Y() != fork.Y() {
		t.Fatalf("Reconcile = %v, want %v", got.Y(), fork.Y())
	}
	if got := Reconcile(c); got != c {
		t.Fatalf("Reconcile of one cursor must return it")
	}
}

func TestEngineConfiguration(t *testing.T) {
	doc := builder.NewRecorder()

	t.Run("Default Configuration", func(t *testing.T) {
		e := NewEngine(doc)
		if e.pageTop != PageTop {
			t.Errorf("Expected page top %v, got %v", PageTop, e.pageTop)
		}
		if e.bottomMargin != BottomMargin {
			t.Errorf("Expected bottom margin %v, got %v", BottomMargin, e.bottomMargin)
		}
		if e.Document() != doc {
			t.Errorf("Engine lost its document")
		}
	})

	t.Run("Custom Configuration", func(t *testing.T) {
		var started []int
		e := NewEngine(doc,
			WithPageTop(800),
			WithBottomMargin(30),
			WithPageListener(func(p builder.Page) { started = append(started, p.Number()) }),
			WithTableHeader(func(p builder.Page, c Cursor) Cursor {
				p.DrawText("HEADER", 35, c.Y())
				return c.Reserve(35)
			}),
		)
		pos := e.NewPage(PageSettings{TableHeader: true})
		if pos.Cursor.Y() != 765 {
			t.Errorf("Expected cursor below header at 765, got %v", pos.Cursor.Y())
		}
		plain := e.NewPage(PageSettings{})
		if plain.Cursor.Y() != 800 {
			t.Errorf("Expected cursor at 800, got %v", plain.Cursor.Y())
		}
		if diff := cmp.Diff([]int{pos.Page.Number(), plain.Page.Number()}, started); diff != "" {
			t.Errorf("page listener mismatch (-want +got):\n%s", diff)
		}
	})
}

func headerEngine(doc *builder.Recorder) *Engine {
	return NewEngine(doc, WithTableHeader(func(p builder.Page, c Cursor) Cursor {
		p.DrawText("HEADER", 35, c.Y())
		return c.Reserve(35)
	}))
}

func TestLineBlockShift(t *testing.T) {
	block := LineBlock{
		Spacing: 20,
		Rows: []Row{
			{{Text: []string{"a", "b"}}, {Text: []string{"x"}, Spacing: 10}},
			{{Text: []string{"c"}, Spacing: 5}, {Text: []string{"d", "e", "f"}, Spacing: 5}},
		},
	}
	if got := block.Shift(); got != 55 {
		t.Fatalf("Shift = %v, want 55", got)
	}
	if got := (LineBlock{Rows: []Row{{{Text: []string{"a"}}}}}).Shift(); got != 10 {
		t.Fatalf("default spacing shift = %v, want 10", got)
	}
}

func TestDrawLineBlocks_SamePage(t *testing.T) {
	doc := builder.NewRecorder()
	e := headerEngine(doc)
	pos := Position{Page: doc.NewPage(), Cursor: NewCursor(500)}
	block := LineBlock{Spacing: 20, Rows: []Row{{
		{Text: []string{"Widget", "blue"}, Feed: 35},
		{Text: []string{"Qty"}, Feed: 435, Align: AlignRight},
		{Text: []string{"Total"}, Feed: 475, Width: 90, Align: AlignRight, Font: builder.FontBold},
		{Text: []string{"Mid"}, Feed: 100, Width: 100, Align: AlignCenter},
	}}}

	got, continued := e.DrawLineBlocks(pos, []LineBlock{block}, PageSettings{TableHeader: true})
	if continued {
		t.Fatalf("block fitting on the page must not continue")
	}
	if got.Page != pos.Page || got.Cursor.Y() != 460 {
		t.Fatalf("unexpected position: page %d cursor %v", got.Page.Number(), got.Cursor.Y())
	}
	page := doc.Page(1)
	want := map[string][2]float64{
		"Widget": {35, 500},
		"blue":   {35, 480},
		"Qty":    {420, 500},   // 435 - 3*10*0.5
		"Total":  {535, 500},   // 475 + 90 - 5*10*0.5 - 5
		"Mid":    {142.5, 500}, // 100 + 50 - 15/2
	}
	for text, xy := range want {
		op, ok := page.Find(text)
		if !ok {
			t.Fatalf("text %q not drawn", text)
		}
		if op.X1 != xy[0] || op.Y1 != xy[1] {
			t.Errorf("%q at (%v,%v), want (%v,%v)", text, op.X1, op.Y1, xy[0], xy[1])
		}
	}
	if op, _ := page.Find("Total"); op.Font != "bold" {
		t.Errorf("Total drawn in %s, want bold", op.Font)
	}
}

func TestDrawLineBlocks_BlockMovesToNewPage(t *testing.T) {
	doc := builder.NewRecorder()
	e := headerEngine(doc)
	pos := Position{Page: doc.NewPage(), Cursor: NewCursor(40)}
	block := LineBlock{Spacing: 10, Rows: []Row{{{Text: []string{"one", "two", "three"}, Feed: 35}}}}

	got, continued := e.DrawLineBlocks(pos, []LineBlock{block}, PageSettings{TableHeader: true})
	if !continued {
		t.Fatalf("expected continuation onto a new page")
	}
	if doc.PageCount() != 2 || got.Page.Number() != 2 {
		t.Fatalf("expected drawing on page 2, got %d pages, active %d", doc.PageCount(), got.Page.Number())
	}
	if texts := doc.Page(1).Texts(); len(texts) != 0 {
		t.Fatalf("nothing may be drawn on the full page, got %v", texts)
	}
	if diff := cmp.Diff([]string{"HEADER", "one", "two", "three"}, doc.Page(2).Texts()); diff != "" {
		t.Fatalf("page 2 texts (-want +got):\n%s", diff)
	}
	if want := PageTop - 35 - 30; got.Cursor.Y() != want {
		t.Fatalf("cursor = %v, want %v", got.Cursor.Y(), want)
	}
}

func TestDrawLineBlocks_NextBlockContinues(t *testing.T) {
	doc := builder.NewRecorder()
	e := headerEngine(doc)
	// Both rows fit exactly; the next block crosses the margin.
	pos := Position{Page: doc.NewPage(), Cursor: NewCursor(60)}
	block := LineBlock{Spacing: 20, Rows: []Row{
		{{Text: []string{"first"}, Feed: 35}},
		{{Text: []string{"second"}, Feed: 35}},
	}}
	got, continued := e.DrawLineBlocks(pos, []LineBlock{block}, PageSettings{})
	if continued {
		t.Fatalf("rows ending at the margin must stay on the page")
	}
	if got.Cursor.Y() != 20 {
		t.Fatalf("cursor = %v, want 20", got.Cursor.Y())
	}

	next, continued := e.DrawLineBlocks(got, []LineBlock{{Spacing: 10, Rows: []Row{{{Text: []string{"x"}, Feed: 35}}}}}, PageSettings{})
	if !continued || next.Page.Number() != 2 {
		t.Fatalf("line below the margin must continue on page 2")
	}
	if op, ok := doc.Page(2).Find("x"); !ok || op.Y1 != PageTop {
		t.Fatalf("continued text at %+v", op)
	}
}

func TestDrawRow(t *testing.T) {
	doc := builder.NewRecorder()
	page := doc.NewPage()
	h := DrawRow(page, 700, Row{
		{Text: []string{"Products"}, Feed: 35},
		{Text: []string{"Qty"}, Feed: 435, Align: AlignRight},
		{Text: []string{"a", "b"}, Feed: 100, FontSize: 8},
	}, 5)
	if h != 10 {
		t.Fatalf("row height = %v, want 10", h)
	}
	if op, _ := doc.Page(1).Find("Qty"); op.X1 != 420 || op.Y1 != 700 {
		t.Fatalf("Qty at (%v,%v)", op.X1, op.Y1)
	}
	if op, _ := doc.Page(1).Find("b"); op.Y1 != 695 || op.Size != 8 {
		t.Fatalf("second line at %v size %v", op.Y1, op.Size)
	}
	if doc.PageCount() != 1 {
		t.Fatalf("DrawRow must not start pages")
	}
}

func TestDrawLineBlocks_TallRowBreaksMidRow(t *testing.T) {
	doc := builder.NewRecorder()
	e := headerEngine(doc)
	pos := Position{Page: doc.NewPage(), Cursor: NewCursor(500)}
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("line%02d", i)
	}
	block := LineBlock{Spacing: 20, Rows: []Row{{
		{Text: []string{"2"}, Feed: 435, Align: AlignRight},
		{Text: lines, Feed: 35},
	}}}

	got, continued := e.DrawLineBlocks(pos, []LineBlock{block}, PageSettings{TableHeader: true})
	if !continued {
		t.Fatalf("expected continuation")
	}
	if doc.PageCount() != 3 || got.Page.Number() != 3 {
		t.Fatalf("expected 3 pages ending on page 3, got %d pages, active %d", doc.PageCount(), got.Page.Number())
	}
	// The block is taller than a page, so it starts on page 2 below the
	// header at 780 and breaks after line37 (drawn at 40).
	if op, ok := doc.Page(2).Find("2"); !ok || op.Y1 != 780 {
		t.Fatalf("qty at %+v", op)
	}
	if op, ok := doc.Page(2).Find("line37"); !ok || op.Y1 != 40 {
		t.Fatalf("line37 at %+v", op)
	}
	if _, ok := doc.Page(2).Find("line38"); ok {
		t.Fatalf("line38 must not be drawn on page 2")
	}
	page3 := doc.Page(3)
	if op, ok := page3.Find("line38"); !ok || op.Y1 != 780 {
		t.Fatalf("line38 at %+v", op)
	}
	if op, ok := page3.Find("line49"); !ok || op.Y1 != 560 {
		t.Fatalf("line49 at %+v", op)
	}
	for i, p := range doc.Pages() {
		for _, op := range p.Ops {
			if op.Kind == builder.OpText && op.Y1 < BottomMargin {
				t.Errorf("page %d: %q drawn at %v below the margin", i+1, op.Text, op.Y1)
			}
		}
	}
	if got.Cursor.Y() != 540 {
		t.Fatalf("cursor = %v, want 540", got.Cursor.Y())
	}
}
