package models

// Category is a node in the catalog tree. Paths are ltree-style materialized
// paths ("fasteners.screws.wood_screws"); depth equals the number of path
// segments minus one. Only leaf nodes own product groups and attribute
// definitions directly.
type Category struct {
	ID         int    `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Slug       string `json:"slug" db:"slug"`
	Path       string `json:"path" db:"path"`
	ParentID   *int   `json:"parent_id,omitempty" db:"parent_id"`
	Depth      int    `json:"depth" db:"depth"`
	SortOrder  int    `json:"sort_order" db:"sort_order"`
	IsLeaf     bool   `json:"is_leaf" db:"is_leaf"`
	GroupCount int    `json:"group_count" db:"group_count"`
}

// Breadcrumb is the minimal projection used for the ancestor trail.
type Breadcrumb struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// FilteredChild is a direct child category annotated with the number of
// distinct SKUs in its leaf-descendant subtree that match the active filter
// set. Children with zero matches are never materialized.
type FilteredChild struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Path      string `json:"path"`
	IsLeaf    bool   `json:"is_leaf"`
	Depth     int    `json:"depth"`
	SortOrder int    `json:"sort_order"`
	SkuCount  int64  `json:"sku_count"`
}

// CategorySection groups a top-level category with its second-level headers
// and their children, for the full navigation tree.
type CategorySection struct {
	TopLevel Category        `json:"top_level"`
	Groups   []CategoryGroup `json:"groups"`
}

type CategoryGroup struct {
	Header Category   `json:"header"`
	Items  []Category `json:"items"`
}
