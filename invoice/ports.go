package invoice

import (
	"context"
	"time"

	"github.com/wudi/invoicekit/locale"
	"github.com/wudi/invoicekit/model"
)

// AddressTarget is the address template used for printed documents.
const AddressTarget = "pdf"

// AddressFormatter renders an address into display lines for a target.
type AddressFormatter interface {
	Format(addr *model.Address, target string) []string
}

// PaymentInfoProvider renders a payment record into markup whose rows are
// separated by PaymentRowSeparator.
type PaymentInfoProvider interface {
	Render(p model.Payment) string
}

// DateFormatter formats a timestamp in the context of a store.
type DateFormatter interface {
	FormatDate(t time.Time, storeID string, style locale.DateStyle) string
}

// PriceFormatter formats an amount in a currency the way a store prints it.
type PriceFormatter interface {
	FormatPrice(amount float64, currencyCode, storeID string) string
}

// ThumbnailResolver returns the image file of a product's thumbnail.
// Products without one yield an error wrapping catalog.ErrNotFound.
type ThumbnailResolver interface {
	Resolve(ctx context.Context, productID string) (string, error)
}

// StoreScope switches the process to the rendering context of a store.
// Every successful Enter is paired with one Exit.
type StoreScope interface {
	Enter(ctx context.Context, storeID string) error
	Exit()
}

// Settings exposes per-store document configuration.
type Settings interface {
	// PutOrderID reports whether documents of kind print the order id in
	// their metadata box.
	PutOrderID(storeID string, kind model.DocumentKind) bool
}

// StoreProfile is the store identity printed at the top of documents.
type StoreProfile struct {
	Name string
	// Logo is the path of the logo image, empty for none.
	Logo string
	// Address lines are printed right-aligned; they may contain <br/>.
	Address []string
}

// StoreDirectory looks up store profiles.
type StoreDirectory interface {
	Profile(storeID string) (StoreProfile, bool)
}
