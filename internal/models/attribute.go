package models

// Attribute data types. Enum attributes carry an option reference in the
// facet index; numeric attributes carry a value.
const (
	DataTypeEnum    = "enum"
	DataTypeNumeric = "numeric"
)

// AttributeDefinition is scoped to the leaf category it was defined for.
// Browsing above the leaf aggregates definitions from descendant leaves.
type AttributeDefinition struct {
	ID              int     `json:"id" db:"id"`
	CategoryID      int     `json:"category_id" db:"category_id"`
	Key             string  `json:"key" db:"key"`
	Label           string  `json:"label" db:"label"`
	DataType        string  `json:"data_type" db:"data_type"`
	UnitLabel       *string `json:"unit_label,omitempty" db:"unit_label"`
	IsFilterable    bool    `json:"is_filterable" db:"is_filterable"`
	FilterWidget    string  `json:"filter_widget" db:"filter_widget"`
	FilterSortOrder int     `json:"filter_sort_order" db:"filter_sort_order"`
}

// AttributeOption exists only for enum-typed attributes.
type AttributeOption struct {
	ID           int     `json:"id" db:"id"`
	AttributeID  int     `json:"attribute_id" db:"attribute_id"`
	Value        string  `json:"value" db:"value"`
	DisplayValue string  `json:"display_value" db:"display_value"`
	SortOrder    int     `json:"sort_order" db:"sort_order"`
	ImageURL     *string `json:"image_url,omitempty" db:"image_url"`
}

// ColumnConfig drives the variant table layout for one product group.
// Header and width fall back to the attribute-level defaults when the group
// carries no override.
type ColumnConfig struct {
	SortOrder       int     `json:"sort_order"`
	Role            string  `json:"role"`
	Header          string  `json:"header"`
	WidthPx         int     `json:"width_px"`
	Key             string  `json:"key"`
	UnitLabel       *string `json:"unit_label,omitempty"`
	DataType        string  `json:"data_type"`
	FilterWidget    string  `json:"filter_widget"`
	FilterSortOrder int     `json:"filter_sort_order"`
	IsFilterable    bool    `json:"is_filterable"`
}

// FacetGroup is one filterable attribute with its surviving options and
// per-option match counts. Groups and options with zero matching SKUs are
// suppressed before they ever reach this struct.
type FacetGroup struct {
	AttributeID  int           `json:"attribute_id"`
	Key          string        `json:"key"`
	Label        string        `json:"label"`
	FilterWidget string        `json:"filter_widget"`
	UnitLabel    *string       `json:"unit_label,omitempty"`
	Options      []FacetOption `json:"options"`
}

// FacetOption is one countable value within a facet group. OptionID is nil
// for numeric attributes, where the facet counts the attribute as a whole.
type FacetOption struct {
	OptionID     *int    `json:"option_id,omitempty"`
	Value        string  `json:"value"`
	DisplayValue string  `json:"display_value"`
	ImageURL     *string `json:"image_url,omitempty"`
	SkuCount     int     `json:"sku_count"`
}
