// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package notion

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PropertyType enumerates the Notion property types the formatter
// supports.
type PropertyType string

// Supported property types.
const (
	PropertyTitle       PropertyType = "title"
	PropertyRichText    PropertyType = "rich_text"
	PropertySelect      PropertyType = "select"
	PropertyMultiSelect PropertyType = "multi_select"
	PropertyNumber      PropertyType = "number"
	PropertyCheckbox    PropertyType = "checkbox"
	PropertyDate        PropertyType = "date"
	PropertyURL         PropertyType = "url"
	PropertyEmail       PropertyType = "email"
	PropertyPhoneNumber PropertyType = "phone_number"
	PropertyStatus      PropertyType = "status"
	PropertyFiles       PropertyType = "files"
)

// Properties is a row's column-name to formatted-value mapping, ready
// for the Notion pages API.
type Properties map[string]interface{}

// FormatProperty maps a raw value to the Notion API shape for the given
// property type. Unsupported types and uncoercible values are a hard
// error at format time, not at submission time.
func FormatProperty(propType PropertyType, value interface{}) (map[string]interface{}, error) {
	switch propType {
	case PropertyTitle:
		return map[string]interface{}{
			"title": []interface{}{textContent(value)},
		}, nil

	case PropertyRichText:
		return map[string]interface{}{
			"rich_text": []interface{}{textContent(value)},
		}, nil

	case PropertySelect:
		return map[string]interface{}{
			"select": map[string]interface{}{"name": toString(value)},
		}, nil

	case PropertyMultiSelect:
		names := make([]interface{}, 0)
		for _, v := range toSlice(value) {
			names = append(names, map[string]interface{}{"name": toString(v)})
		}
		return map[string]interface{}{"multi_select": names}, nil

	case PropertyNumber:
		n, err := toFloat(value)
		if err != nil {
			return nil, &FormatError{PropertyType: propType, Value: value, Reason: err.Error()}
		}
		return map[string]interface{}{"number": n}, nil

	case PropertyCheckbox:
		b, ok := value.(bool)
		if !ok {
			return nil, &FormatError{PropertyType: propType, Value: value, Reason: fmt.Sprintf("expected bool, got %T", value)}
		}
		return map[string]interface{}{"checkbox": b}, nil

	case PropertyDate:
		return map[string]interface{}{
			"date": map[string]interface{}{"start": toDateString(value)},
		}, nil

	case PropertyURL:
		return map[string]interface{}{"url": toString(value)}, nil

	case PropertyEmail:
		return map[string]interface{}{"email": toString(value)}, nil

	case PropertyPhoneNumber:
		return map[string]interface{}{"phone_number": toString(value)}, nil

	case PropertyStatus:
		return map[string]interface{}{
			"status": map[string]interface{}{"name": toString(value)},
		}, nil

	case PropertyFiles:
		files := make([]interface{}, 0)
		for _, v := range toSlice(value) {
			fileURL := toString(v)
			files = append(files, map[string]interface{}{
				"type":     "external",
				"name":     fileNameFromURL(fileURL),
				"external": map[string]interface{}{"url": fileURL},
			})
		}
		return map[string]interface{}{"files": files}, nil

	default:
		return nil, &FormatError{PropertyType: propType, Value: value, Reason: "unsupported property type"}
	}
}

// MustFormat is a convenience for building fixed property sets where the
// type is known to be supported; it panics on formatting errors. Use
// FormatProperty for caller-supplied types.
func MustFormat(propType PropertyType, value interface{}) map[string]interface{} {
	formatted, err := FormatProperty(propType, value)
	if err != nil {
		panic(err)
	}
	return formatted
}

// textContent builds the rich-text fragment shared by title and
// rich_text properties.
func textContent(value interface{}) map[string]interface{} {
	return map[string]interface{}{
		"text": map[string]interface{}{"content": toString(value)},
	}
}

// toString coerces scalar values to their string form.
func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toSlice accepts a single value or a slice and returns a slice.
func toSlice(value interface{}) []interface{} {
	switch v := value.(type) {
	case []interface{}:
		return v
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return []interface{}{value}
	}
}

// toFloat coerces numeric values (and numeric strings) to float64.
func toFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as number", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}

// toDateString renders time.Time as RFC3339 and passes strings through.
func toDateString(value interface{}) string {
	if t, ok := value.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return toString(value)
}

// fileNameFromURL uses the last path segment of a URL as the file name.
func fileNameFromURL(fileURL string) string {
	trimmed := strings.TrimRight(fileURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
