package repositories

import (
	"context"
	"strings"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BrowseRepository is the faceted navigation engine: filter-aware child
// counts, facet option counts and SKU resolution, all evaluated against the
// denormalized sku_facet_index.
type BrowseRepository interface {
	FilteredChildren(ctx context.Context, parentID int, filters models.FilterSet) ([]models.FilteredChild, error)
	MidLevelFacets(ctx context.Context, categoryPath string, filters models.FilterSet) ([]models.FacetGroup, error)
	LeafFacets(ctx context.Context, categoryID int, filters models.FilterSet) ([]models.FacetGroup, error)
	MatchingSkuIDsByGroup(ctx context.Context, categoryID int, filters models.FilterSet) ([]models.GroupSkuIDs, error)
}

type browseRepo struct {
	db Database
}

func NewBrowseRepo(db Database) BrowseRepository {
	return &browseRepo{db: db}
}

// FilteredChildren counts, per direct child of parentID, the distinct SKUs
// in the child's leaf-descendant subtree that satisfy the active filters.
// Children with zero matches are dropped by the HAVING clause rather than
// returned with a zero badge.
func (r *browseRepo) FilteredChildren(ctx context.Context, parentID int, filters models.FilterSet) ([]models.FilteredChild, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ch.id, ch.name, ch.slug, ch.path::text, ch.is_leaf, ch.depth, ch.sort_order,
		       COUNT(DISTINCT sfi.sku_id) AS sku_count
		FROM categories ch
		JOIN categories leaf ON leaf.path <@ ch.path AND leaf.is_leaf AND leaf.is_active
		JOIN sku_facet_index sfi ON sfi.category_id = leaf.id
		WHERE ch.parent_id = $1 AND ch.is_active`)
	args := []interface{}{parentID}
	args = appendFilterConditions(&sb, args, "sfi.sku_id", filters)
	sb.WriteString(`
		GROUP BY ch.id, ch.name, ch.slug, ch.path, ch.is_leaf, ch.depth, ch.sort_order
		HAVING COUNT(DISTINCT sfi.sku_id) > 0
		ORDER BY ch.sort_order`)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []models.FilteredChild
	for rows.Next() {
		var c models.FilteredChild
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Path, &c.IsLeaf,
			&c.Depth, &c.SortOrder, &c.SkuCount); err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, rows.Err()
}

const facetSelect = `
		SELECT ad.id, ad.key, ad.label, ad.filter_widget, ad.unit_label,
		       ao.id, ao.value, ao.display_value, ao.image_url,
		       COUNT(DISTINCT sfi.sku_id) AS sku_count`

const facetGroupBy = `
		GROUP BY ad.id, ad.key, ad.label, ad.filter_widget, ad.unit_label, ad.filter_sort_order,
		         ao.id, ao.value, ao.display_value, ao.image_url, ao.sort_order
		HAVING COUNT(DISTINCT sfi.sku_id) > 0
		ORDER BY ad.filter_sort_order, ao.sort_order`

// MidLevelFacets aggregates facet counts across every leaf descendant of
// categoryPath. Counts reflect the full active filter set, the counted
// attribute's own constraint included (plain AND composition).
func (r *browseRepo) MidLevelFacets(ctx context.Context, categoryPath string, filters models.FilterSet) ([]models.FacetGroup, error) {
	var sb strings.Builder
	sb.WriteString(facetSelect)
	sb.WriteString(`
		FROM categories leaf
		JOIN sku_facet_index sfi ON sfi.category_id = leaf.id
		JOIN attribute_definitions ad ON ad.id = sfi.attribute_id AND ad.is_filterable
		LEFT JOIN attribute_options ao ON ao.id = sfi.option_id
		WHERE leaf.path <@ $1::ltree AND leaf.is_leaf AND leaf.is_active`)
	args := []interface{}{categoryPath}
	args = appendFilterConditions(&sb, args, "sfi.sku_id", filters)
	sb.WriteString(facetGroupBy)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFacetRows(rows)
}

// LeafFacets is the single-category variant: no subtree expansion, the
// denormalized category_id on the index row is the whole scope check.
func (r *browseRepo) LeafFacets(ctx context.Context, categoryID int, filters models.FilterSet) ([]models.FacetGroup, error) {
	var sb strings.Builder
	sb.WriteString(facetSelect)
	sb.WriteString(`
		FROM sku_facet_index sfi
		JOIN attribute_definitions ad ON ad.id = sfi.attribute_id AND ad.is_filterable
		LEFT JOIN attribute_options ao ON ao.id = sfi.option_id
		WHERE sfi.category_id = $1`)
	args := []interface{}{categoryID}
	args = appendFilterConditions(&sb, args, "sfi.sku_id", filters)
	sb.WriteString(facetGroupBy)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFacetRows(rows)
}

// MatchingSkuIDsByGroup resolves the filter set over a whole leaf category
// and buckets the surviving SKU ids by product group, for leaf-level table
// assembly.
func (r *browseRepo) MatchingSkuIDsByGroup(ctx context.Context, categoryID int, filters models.FilterSet) ([]models.GroupSkuIDs, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT DISTINCT sfi.product_group_id, sfi.sku_id
		FROM sku_facet_index sfi
		WHERE sfi.category_id = $1`)
	args := []interface{}{categoryID}
	args = appendFilterConditions(&sb, args, "sfi.sku_id", filters)
	sb.WriteString(`
		ORDER BY sfi.product_group_id, sfi.sku_id`)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.GroupSkuIDs
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var groupID, skuID uuid.UUID
		if err := rows.Scan(&groupID, &skuID); err != nil {
			return nil, err
		}
		i, ok := index[groupID]
		if !ok {
			i = len(result)
			index[groupID] = i
			result = append(result, models.GroupSkuIDs{GroupID: groupID})
		}
		result[i].SkuIDs = append(result[i].SkuIDs, skuID)
	}
	return result, rows.Err()
}

// scanFacetRows folds the flat (attribute, option, count) rows into ordered
// facet groups. Row order is the display order; first row of an attribute
// opens its group. Numeric attributes arrive with NULL option columns and
// fold into a single optionless entry carrying the attribute-wide count.
func scanFacetRows(rows pgx.Rows) ([]models.FacetGroup, error) {
	var groups []models.FacetGroup
	index := make(map[int]int)
	for rows.Next() {
		var (
			attrID       int
			key, label   string
			widget       string
			unitLabel    *string
			optionID     *int
			value        *string
			displayValue *string
			imageURL     *string
			skuCount     int
		)
		if err := rows.Scan(&attrID, &key, &label, &widget, &unitLabel,
			&optionID, &value, &displayValue, &imageURL, &skuCount); err != nil {
			return nil, err
		}

		i, ok := index[attrID]
		if !ok {
			i = len(groups)
			index[attrID] = i
			groups = append(groups, models.FacetGroup{
				AttributeID:  attrID,
				Key:          key,
				Label:        label,
				FilterWidget: widget,
				UnitLabel:    unitLabel,
			})
		}

		opt := models.FacetOption{OptionID: optionID, ImageURL: imageURL, SkuCount: skuCount}
		if value != nil {
			opt.Value = *value
		}
		if displayValue != nil {
			opt.DisplayValue = *displayValue
		}
		groups[i].Options = append(groups[i].Options, opt)
	}
	return groups, rows.Err()
}
