package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSource is returned for a document source that is neither
	// an order nor a shipment.
	ErrUnsupportedSource = errors.New("model: unsupported document source")
	// ErrMissingOrder is returned when a source does not reference an order.
	ErrMissingOrder = errors.New("model: document source has no order")
)

// DocumentSource is the object a document header is built from. It is
// implemented by OrderSource and ShipmentSource only.
type DocumentSource interface {
	documentSource()
}

// OrderSource builds the header directly from an order.
type OrderSource struct {
	Order *Order
}

// ShipmentSource builds the header from a shipment and its tracks.
type ShipmentSource struct {
	Shipment *Shipment
}

func (OrderSource) documentSource()    {}
func (ShipmentSource) documentSource() {}

// Resolved is a DocumentSource reduced to what the header needs.
type Resolved struct {
	Order    *Order
	Shipment *Shipment
	Tracks   []Track
}

// Resolve unpacks src. It fails for nil sources, unknown variants and
// sources without an order.
func Resolve(src DocumentSource) (Resolved, error) {
	switch s := src.(type) {
	case OrderSource:
		if s.Order == nil {
			return Resolved{}, ErrMissingOrder
		}
		return Resolved{Order: s.Order}, nil
	case *OrderSource:
		if s == nil {
			return Resolved{}, ErrUnsupportedSource
		}
		return Resolve(*s)
	case ShipmentSource:
		if s.Shipment == nil || s.Shipment.Order == nil {
			return Resolved{}, ErrMissingOrder
		}
		return Resolved{Order: s.Shipment.Order, Shipment: s.Shipment, Tracks: s.Shipment.Tracks}, nil
	case *ShipmentSource:
		if s == nil {
			return Resolved{}, ErrUnsupportedSource
		}
		return Resolve(*s)
	case nil:
		return Resolved{}, ErrUnsupportedSource
	default:
		return Resolved{}, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
}
