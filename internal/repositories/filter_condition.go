package repositories

import (
	"fmt"
	"strings"

	"storefront/internal/models"
)

// appendFilterConditions renders the active filter set as one EXISTS
// predicate per constrained attribute against the sku_facet_index, AND-ed
// onto whatever WHERE clause sb already holds. outerSkuID is the column the
// subqueries correlate on (e.g. "s.id" or "sfi.sku_id").
//
// Option ids within an attribute become option_id = ANY(...), which is the
// OR half of the composition model; each attribute contributes its own
// EXISTS, which is the AND half. Attributes are emitted in ascending id
// order so that semantically equal filter sets always generate identical
// SQL. Each predicate is an existence probe, never a materializing join, so
// cost tracks the index rows of that attribute alone.
//
// An attribute id that does not exist in the scoped index simply has no
// satisfying row: the EXISTS fails for every SKU and the overall result is
// empty, which is the intended signal for a caller-side filter mistake.
func appendFilterConditions(sb *strings.Builder, args []interface{}, outerSkuID string, filters models.FilterSet) []interface{} {
	for _, attrID := range filters.EnumAttributeIDs() {
		args = append(args, attrID, filters.Enum[attrID])
		fmt.Fprintf(sb,
			" AND EXISTS (SELECT 1 FROM sku_facet_index sfi_inner WHERE sfi_inner.sku_id = %s AND sfi_inner.attribute_id = $%d AND sfi_inner.option_id = ANY($%d))",
			outerSkuID, len(args)-1, len(args))
	}
	for _, attrID := range filters.RangeAttributeIDs() {
		r := filters.Range[attrID]
		args = append(args, attrID, r.Min, r.Max)
		fmt.Fprintf(sb,
			" AND EXISTS (SELECT 1 FROM sku_facet_index sfi_inner WHERE sfi_inner.sku_id = %s AND sfi_inner.attribute_id = $%d AND sfi_inner.numeric_value BETWEEN $%d AND $%d)",
			outerSkuID, len(args)-2, len(args)-1, len(args))
	}
	return args
}
