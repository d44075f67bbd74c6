package repositories

import (
	"context"
	"strings"

	"storefront/internal/models"

	"github.com/google/uuid"
)

type AttributeRepository interface {
	ColumnConfig(ctx context.Context, groupID uuid.UUID) ([]models.ColumnConfig, error)
	GroupFacetCounts(ctx context.Context, groupID uuid.UUID, filters models.FilterSet) ([]models.FacetGroup, error)
	FilterableAttributes(ctx context.Context, categoryID int) ([]models.AttributeDefinition, error)
}

type attributeRepo struct {
	db Database
}

func NewAttributeRepo(db Database) AttributeRepository {
	return &attributeRepo{db: db}
}

// ColumnConfig resolves the variant table layout for a group. Header text
// and column width fall back from the per-group override to the attribute
// defaults via COALESCE.
func (r *attributeRepo) ColumnConfig(ctx context.Context, groupID uuid.UUID) ([]models.ColumnConfig, error) {
	query := `
		SELECT pgc.sort_order, pgc.role,
		       COALESCE(pgc.column_header, ad.label) AS header,
		       COALESCE(pgc.column_width_px, ad.table_column_width) AS width,
		       ad.key, ad.unit_label, ad.data_type, ad.filter_widget,
		       ad.filter_sort_order, ad.is_filterable
		FROM product_group_columns pgc
		JOIN attribute_definitions ad ON ad.id = pgc.attribute_id
		WHERE pgc.product_group_id = $1
		ORDER BY pgc.sort_order
	`
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []models.ColumnConfig
	for rows.Next() {
		var c models.ColumnConfig
		if err := rows.Scan(&c.SortOrder, &c.Role, &c.Header, &c.WidthPx, &c.Key,
			&c.UnitLabel, &c.DataType, &c.FilterWidget, &c.FilterSortOrder,
			&c.IsFilterable); err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

// GroupFacetCounts computes leaf-table facet counts scoped to one product
// group, with the same AND-composition and zero-count suppression as the
// category-level facets.
func (r *attributeRepo) GroupFacetCounts(ctx context.Context, groupID uuid.UUID, filters models.FilterSet) ([]models.FacetGroup, error) {
	var sb strings.Builder
	sb.WriteString(facetSelect)
	sb.WriteString(`
		FROM sku_facet_index sfi
		JOIN attribute_definitions ad ON ad.id = sfi.attribute_id AND ad.is_filterable
		LEFT JOIN attribute_options ao ON ao.id = sfi.option_id
		WHERE sfi.product_group_id = $1`)
	args := []interface{}{groupID}
	args = appendFilterConditions(&sb, args, "sfi.sku_id", filters)
	sb.WriteString(facetGroupBy)

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFacetRows(rows)
}

func (r *attributeRepo) FilterableAttributes(ctx context.Context, categoryID int) ([]models.AttributeDefinition, error) {
	query := `
		SELECT id, category_id, key, label, data_type, unit_label,
		       is_filterable, filter_widget, filter_sort_order
		FROM attribute_definitions
		WHERE category_id = $1 AND is_filterable
		ORDER BY filter_sort_order
	`
	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attrs []models.AttributeDefinition
	for rows.Next() {
		var a models.AttributeDefinition
		if err := rows.Scan(&a.ID, &a.CategoryID, &a.Key, &a.Label, &a.DataType,
			&a.UnitLabel, &a.IsFilterable, &a.FilterWidget, &a.FilterSortOrder); err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}
