// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package notion

import (
	"errors"
	"testing"
	"time"
)

func TestFormatProperty_Title(t *testing.T) {
	got, err := FormatProperty(PropertyTitle, "Show A")
	if err != nil {
		t.Fatal(err)
	}

	title, ok := got["title"].([]interface{})
	if !ok || len(title) != 1 {
		t.Fatalf("unexpected shape: %#v", got)
	}
	text := title[0].(map[string]interface{})["text"].(map[string]interface{})
	if text["content"] != "Show A" {
		t.Errorf("content = %v, want Show A", text["content"])
	}
}

func TestFormatProperty_RichText(t *testing.T) {
	got, err := FormatProperty(PropertyRichText, "Show A - S2E5: Pilot")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got["rich_text"]; !ok {
		t.Errorf("missing rich_text key: %#v", got)
	}
}

func TestFormatProperty_Number(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  float64
	}{
		{"int", 100, 100},
		{"int64", int64(5000), 5000},
		{"float", 1.5, 1.5},
		{"numeric string", "20", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatProperty(PropertyNumber, tt.value)
			if err != nil {
				t.Fatal(err)
			}
			if got["number"] != tt.want {
				t.Errorf("number = %v, want %v", got["number"], tt.want)
			}
		})
	}
}

func TestFormatProperty_NumberRejectsNonNumeric(t *testing.T) {
	_, err := FormatProperty(PropertyNumber, "not a number")
	if err == nil {
		t.Fatal("expected format error for non-numeric value")
	}

	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Errorf("expected *FormatError, got %T", err)
	}
}

func TestFormatProperty_Checkbox(t *testing.T) {
	got, err := FormatProperty(PropertyCheckbox, true)
	if err != nil {
		t.Fatal(err)
	}
	if got["checkbox"] != true {
		t.Errorf("checkbox = %v, want true", got["checkbox"])
	}

	if _, err := FormatProperty(PropertyCheckbox, "yes"); err == nil {
		t.Error("checkbox should reject non-bool values")
	}
}

func TestFormatProperty_Date(t *testing.T) {
	got, err := FormatProperty(PropertyDate, "2024-12-03")
	if err != nil {
		t.Fatal(err)
	}
	date := got["date"].(map[string]interface{})
	if date["start"] != "2024-12-03" {
		t.Errorf("start = %v, want 2024-12-03", date["start"])
	}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got, err = FormatProperty(PropertyDate, now)
	if err != nil {
		t.Fatal(err)
	}
	if got["date"].(map[string]interface{})["start"] != "2025-06-01T12:00:00Z" {
		t.Errorf("time.Time should render as RFC3339: %#v", got)
	}
}

func TestFormatProperty_MultiSelect(t *testing.T) {
	got, err := FormatProperty(PropertyMultiSelect, []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got["multi_select"].([]interface{})) != 2 {
		t.Errorf("unexpected multi_select: %#v", got)
	}

	// A scalar value becomes a single-element list.
	got, err = FormatProperty(PropertyMultiSelect, "solo")
	if err != nil {
		t.Fatal(err)
	}
	if len(got["multi_select"].([]interface{})) != 1 {
		t.Errorf("scalar should wrap to one element: %#v", got)
	}
}

func TestFormatProperty_Files(t *testing.T) {
	got, err := FormatProperty(PropertyFiles, "https://example.com/art/poster.jpg")
	if err != nil {
		t.Fatal(err)
	}

	files := got["files"].([]interface{})
	file := files[0].(map[string]interface{})
	if file["type"] != "external" {
		t.Errorf("type = %v, want external", file["type"])
	}
	if file["name"] != "poster.jpg" {
		t.Errorf("name = %v, want poster.jpg", file["name"])
	}
}

func TestFormatProperty_SelectAndStatus(t *testing.T) {
	got, err := FormatProperty(PropertySelect, "Airing")
	if err != nil {
		t.Fatal(err)
	}
	if got["select"].(map[string]interface{})["name"] != "Airing" {
		t.Errorf("unexpected select: %#v", got)
	}

	got, err = FormatProperty(PropertyStatus, "Done")
	if err != nil {
		t.Fatal(err)
	}
	if got["status"].(map[string]interface{})["name"] != "Done" {
		t.Errorf("unexpected status: %#v", got)
	}
}

func TestFormatProperty_UnsupportedTypeFailsImmediately(t *testing.T) {
	_, err := FormatProperty(PropertyType("rollup"), "x")
	if err == nil {
		t.Fatal("unsupported property type must be a hard error at format time")
	}

	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *FormatError, got %T", err)
	}
	if ferr.PropertyType != "rollup" {
		t.Errorf("PropertyType = %q, want rollup", ferr.PropertyType)
	}
}
