package models

import (
	"sort"
	"strconv"
	"strings"
)

// RangeMaxSentinel substitutes for an omitted range_max parameter. It sits
// far above any real attribute value in the catalog.
const RangeMaxSentinel = 999999

// NumericRange is an inclusive [Min, Max] constraint on a numeric attribute.
type NumericRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterSet is the active filter state of a browse request. Option ids
// within one attribute compose with OR; distinct attributes compose with
// AND. Empty maps mean no filtering. An attribute entry with an empty
// option slice carries no constraint and is skipped during evaluation.
type FilterSet struct {
	Enum  map[int][]int        `json:"enum,omitempty"`
	Range map[int]NumericRange `json:"range,omitempty"`
}

// IsEmpty reports whether the set carries no effective constraint.
func (f FilterSet) IsEmpty() bool {
	for _, opts := range f.Enum {
		if len(opts) > 0 {
			return false
		}
	}
	return len(f.Range) == 0
}

// EnumAttributeIDs returns the constrained enum attribute ids in ascending
// order, skipping entries with no options. Deterministic ordering keeps
// generated SQL and cache keys stable across map iteration orders.
func (f FilterSet) EnumAttributeIDs() []int {
	ids := make([]int, 0, len(f.Enum))
	for id, opts := range f.Enum {
		if len(opts) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// RangeAttributeIDs returns the constrained range attribute ids ascending.
func (f FilterSet) RangeAttributeIDs() []int {
	ids := make([]int, 0, len(f.Range))
	for id := range f.Range {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// CanonicalKey encodes the filter set into a stable string: semantically
// identical sets always encode identically regardless of map insertion
// order, so they share a cache entry.
func (f FilterSet) CanonicalKey() string {
	var b strings.Builder
	for _, attrID := range f.EnumAttributeIDs() {
		opts := append([]int(nil), f.Enum[attrID]...)
		sort.Ints(opts)
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteByte('e')
		b.WriteString(strconv.Itoa(attrID))
		b.WriteByte(':')
		for i, o := range opts {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(o))
		}
	}
	for _, attrID := range f.RangeAttributeIDs() {
		r := f.Range[attrID]
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteByte('r')
		b.WriteString(strconv.Itoa(attrID))
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(r.Min, 'f', -1, 64))
		b.WriteByte('-')
		b.WriteString(strconv.FormatFloat(r.Max, 'f', -1, 64))
	}
	if b.Len() == 0 {
		return "all"
	}
	return b.String()
}
