package models

import "github.com/google/uuid"

// ProductGroupSummary is the listing projection for category browse and
// search results.
type ProductGroupSummary struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Subtitle         *string   `json:"subtitle,omitempty" db:"subtitle"`
	Slug             string    `json:"slug" db:"slug"`
	OverviewImageURL *string   `json:"overview_image_url,omitempty" db:"overview_image_url"`
	SkuCount         int       `json:"sku_count" db:"sku_count"`
	MinPriceUSD      float64   `json:"min_price_usd" db:"min_price_usd"`
	AnyInStock       bool      `json:"any_in_stock" db:"any_in_stock"`
}

// ProductGroupDetail carries the full descriptive payload for a group page.
type ProductGroupDetail struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Subtitle         *string   `json:"subtitle,omitempty"`
	Slug             string    `json:"slug"`
	Description      *string   `json:"description,omitempty"`
	EngineeringNote  *string   `json:"engineering_note,omitempty"`
	OverviewImageURL *string   `json:"overview_image_url,omitempty"`
	DiagramImageURL  *string   `json:"diagram_image_url,omitempty"`
	SkuCount         int       `json:"sku_count"`
	MinPriceUSD      float64   `json:"min_price_usd"`
	AnyInStock       bool      `json:"any_in_stock"`
	CategoryID       int       `json:"category_id"`
	CategoryName     string    `json:"category_name"`
	CategoryPath     string    `json:"category_path"`
}

// LeafGroupTable is one product group's rendered variant table at leaf-level
// browse: the matching SKU rows joined with the group's column layout.
type LeafGroupTable struct {
	GroupID          uuid.UUID      `json:"group_id"`
	GroupName        string         `json:"group_name"`
	GroupSlug        string         `json:"group_slug"`
	OverviewImageURL *string        `json:"overview_image_url,omitempty"`
	MinPriceUSD      float64        `json:"min_price_usd"`
	Columns          []ColumnConfig `json:"columns"`
	Rows             []SkuRow       `json:"rows"`
}

// GroupSkuIDs pairs a product group with its matching SKU ids, preserving
// the store's group ordering.
type GroupSkuIDs struct {
	GroupID uuid.UUID
	SkuIDs  []uuid.UUID
}
