// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package notion

// Filter is a Notion database query filter expression.
type Filter map[string]interface{}

// TitleEquals matches rows whose title property equals value.
func TitleEquals(property, value string) Filter {
	return Filter{
		"property": property,
		"title":    map[string]interface{}{"equals": value},
	}
}

// TextEquals matches rows whose rich_text property equals value.
func TextEquals(property, value string) Filter {
	return Filter{
		"property":  property,
		"rich_text": map[string]interface{}{"equals": value},
	}
}

// NumberEquals matches rows whose number property equals value.
func NumberEquals(property string, value float64) Filter {
	return Filter{
		"property": property,
		"number":   map[string]interface{}{"equals": value},
	}
}

// DateEquals matches rows whose date property starts on date
// (YYYY-MM-DD or RFC3339).
func DateEquals(property, date string) Filter {
	return Filter{
		"property": property,
		"date":     map[string]interface{}{"equals": date},
	}
}

// DateBefore matches rows whose date property is strictly before date.
func DateBefore(property, date string) Filter {
	return Filter{
		"property": property,
		"date":     map[string]interface{}{"before": date},
	}
}

// DateOnOrAfter matches rows whose date property is on or after date.
func DateOnOrAfter(property, date string) Filter {
	return Filter{
		"property": property,
		"date":     map[string]interface{}{"on_or_after": date},
	}
}

// And combines filters into a conjunction. A single filter is returned
// unwrapped; an empty argument list yields a nil (match-all) filter.
func And(filters ...Filter) Filter {
	switch len(filters) {
	case 0:
		return nil
	case 1:
		return filters[0]
	default:
		clauses := make([]interface{}, len(filters))
		for i, f := range filters {
			clauses[i] = f
		}
		return Filter{"and": clauses}
	}
}
