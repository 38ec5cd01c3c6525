package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/wudi/invoicekit/builder"
	"github.com/wudi/invoicekit/catalog"
	"github.com/wudi/invoicekit/layout"
	"github.com/wudi/invoicekit/model"
	"github.com/wudi/invoicekit/observability"
)

// ErrNoThumbnails is the skip reason when no thumbnail resolver is set.
var ErrNoThumbnails = errors.New("invoice: no thumbnail resolver configured")

// Thumbnail box relative to the cursor after an item row.
const (
	thumbX1    = 35.0
	thumbX2    = 95.0
	thumbBelow = 35.0
	thumbAbove = 15.0
)

// ImageResult reports whether a thumbnail was drawn. Reason is set when it
// was skipped.
type ImageResult struct {
	ItemID string
	Placed bool
	Reason error
}

// Skipped reports whether the image was left out.
func (r ImageResult) Skipped() bool { return !r.Placed }

// ItemTableRenderer draws the rows of the top-level items of a document,
// each followed by its product thumbnail.
type ItemTableRenderer struct {
	renderer   BaseDocumentRenderer
	thumbnails ThumbnailResolver
	loadImage  func(string) (*builder.Image, error)
	logger     observability.Logger
	metrics    *observability.Metrics
}

// Render draws the rows from pos. Child items are skipped. The returned
// position is on the page the last row ended on.
func (t *ItemTableRenderer) Render(ctx context.Context, e *layout.Engine, pos layout.Position, order *model.Order, items []model.LineItem) (layout.Position, []ImageResult) {
	var results []ImageResult
	for _, item := range items {
		if item.IsChild() {
			continue
		}
		next, continued := t.renderer.DrawItem(e, pos, order, item)
		if continued {
			t.logger.Debug("item row continued on a new page",
				observability.String("item", item.ID),
				observability.Int("page", next.Page.Number()),
			)
		}
		pos = next
		res := t.PlaceThumbnail(ctx, pos, item)
		results = append(results, res)
	}
	return pos, results
}

// PlaceThumbnail draws the thumbnail of item in the box
// x∈[35,95], y∈[cursor-35, cursor+15] on the position's page.
func (t *ItemTableRenderer) PlaceThumbnail(ctx context.Context, pos layout.Position, item model.LineItem) ImageResult {
	res := ImageResult{ItemID: item.ID}
	if t.thumbnails == nil {
		res.Reason = ErrNoThumbnails
		return t.observe(res, "disabled")
	}
	path, err := t.thumbnails.Resolve(ctx, item.ProductID)
	if err != nil {
		res.Reason = fmt.Errorf("resolve thumbnail of product %s: %w", item.ProductID, err)
		if errors.Is(err, catalog.ErrNotFound) {
			return t.observe(res, "not_found")
		}
		return t.observe(res, "resolve_error")
	}
	img, err := t.loadImage(path)
	if err != nil {
		res.Reason = fmt.Errorf("load thumbnail %s: %w", path, err)
		return t.observe(res, "load_error")
	}
	y := pos.Cursor.Y()
	pos.Page.DrawImage(img, thumbX1, y-thumbBelow, thumbX2, y+thumbAbove)
	res.Placed = true
	return t.observe(res, "placed")
}

func (t *ItemTableRenderer) observe(res ImageResult, result string) ImageResult {
	t.metrics.IncThumbnail(result)
	if !res.Placed {
		t.logger.Debug("thumbnail skipped",
			observability.String("item", res.ItemID),
			observability.String("result", result),
			observability.Error("reason", res.Reason),
		)
	}
	return res
}
