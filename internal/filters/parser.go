// Package filters parses the browse filter wire format into a FilterSet.
//
// Enumerated filters arrive as enum_<attributeId>=<optionId>[,<optionId>...]
// and numeric ranges as range_min_<attributeId>=<value> with an optional
// range_max_<attributeId>=<value> (sentinel-capped when omitted). Malformed
// ids or numbers are dropped silently; a bad filter never fails a request.
package filters

import (
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/models"
)

const (
	enumPrefix     = "enum_"
	rangeMinPrefix = "range_min_"
	rangeMaxPrefix = "range_max_"
)

// Parse extracts the filter set from query parameters. Ranges are keyed off
// range_min_: a range_max_ without its min is ignored, matching the
// browse UI which always submits the pair min-first.
func Parse(params url.Values) models.FilterSet {
	fs := models.FilterSet{
		Enum:  make(map[int][]int),
		Range: make(map[int]models.NumericRange),
	}

	for key, values := range params {
		if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
			continue
		}
		value := values[0]

		switch {
		case strings.HasPrefix(key, enumPrefix):
			parseEnum(strings.TrimPrefix(key, enumPrefix), value, fs.Enum)
		case strings.HasPrefix(key, rangeMinPrefix):
			parseRange(strings.TrimPrefix(key, rangeMinPrefix), value, params, fs.Range)
		}
	}
	return fs
}

func parseEnum(attrIDStr, value string, out map[int][]int) {
	attrID, err := strconv.Atoi(attrIDStr)
	if err != nil {
		return
	}
	var optionIDs []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		optID, err := strconv.Atoi(part)
		if err != nil {
			return
		}
		optionIDs = append(optionIDs, optID)
	}
	if len(optionIDs) > 0 {
		out[attrID] = optionIDs
	}
}

func parseRange(attrIDStr, minVal string, params url.Values, out map[int]models.NumericRange) {
	attrID, err := strconv.Atoi(attrIDStr)
	if err != nil {
		return
	}
	min, err := strconv.ParseFloat(minVal, 64)
	if err != nil {
		return
	}
	max := float64(models.RangeMaxSentinel)
	if maxVals, ok := params[rangeMaxPrefix+attrIDStr]; ok {
		// A max that is present but blank or unparseable drops the whole
		// pair; only an absent max falls back to the sentinel.
		if len(maxVals) == 0 {
			return
		}
		parsed, err := strconv.ParseFloat(maxVals[0], 64)
		if err != nil {
			return
		}
		max = parsed
	}
	out[attrID] = models.NumericRange{Min: min, Max: max}
}
