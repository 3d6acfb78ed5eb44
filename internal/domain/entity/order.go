package entity

import (
	"encoding/json"
	"time"

	"github.com/marea-picante/pos-terminal/internal/domain/enum"
)

// Order is the backend-owned order shape. The terminal builds it from a
// draft at submission time and reads it back for listings and tickets; only
// drafts are stored locally.
type Order struct {
	ID           uint             `json:"id"`
	Tables       []int            `json:"tables"`
	Items        []OrderLineItem  `json:"items"`
	TotalCents   int64            `json:"-"`
	Status       enum.OrderStatus `json:"status"`
	IsDelivery   bool             `json:"is_delivery"`
	CustomerName string           `json:"customer_name,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(o),
		Total: float64(o.TotalCents) / 100,
	})
}

// OrderLineItem is one billed line on an order. Synthetic lines (tapers and
// the delivery charge) share the shape and are flagged with IsSurcharge.
type OrderLineItem struct {
	ProductID      uint              `json:"product_id"`
	Name           string            `json:"name"`
	UnitPriceCents int64             `json:"-"`
	Quantity       int               `json:"quantity"`
	SubtotalCents  int64             `json:"-"`
	PriceVariant   enum.PriceVariant `json:"price_variant"`
	Comment        string            `json:"comment,omitempty"`
	IsSurcharge    bool              `json:"is_surcharge,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (li OrderLineItem) MarshalJSON() ([]byte, error) {
	type Alias OrderLineItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Subtotal  float64 `json:"subtotal"`
	}{
		Alias:     Alias(li),
		UnitPrice: float64(li.UnitPriceCents) / 100,
		Subtotal:  float64(li.SubtotalCents) / 100,
	})
}
