package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// SkuRow is one row of a variant table: the SKU's display specs plus price
// and stock. Specs is the raw jsonb blob of non-filterable display values
// keyed by column key; it is passed through untouched.
type SkuRow struct {
	ID         uuid.UUID       `json:"id"`
	PartNumber string          `json:"part_number"`
	Specs      json.RawMessage `json:"specs"`
	SellUnit   string          `json:"sell_unit"`
	SellQty    int             `json:"sell_qty"`
	InStock    bool            `json:"in_stock"`
	Price1Ea   float64         `json:"price_1ea"`
	PriceTiers []PriceTier     `json:"price_tiers,omitempty"`
}

// PriceTier is one quantity break. QtyMax is nil for the open-ended top
// tier. Only active USD tiers are ever loaded.
type PriceTier struct {
	QtyMin int     `json:"qty_min"`
	QtyMax *int    `json:"qty_max,omitempty"`
	Price  float64 `json:"price"`
}

// SkuPriceInfo is the thin pass-through the cart/order collaborators use to
// validate an addition at a given quantity.
type SkuPriceInfo struct {
	SkuID      uuid.UUID `json:"sku_id"`
	PartNumber string    `json:"part_number"`
	UnitPrice  float64   `json:"unit_price"`
	SellUnit   string    `json:"sell_unit"`
}
