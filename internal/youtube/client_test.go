// Showboard - Sonarr to Notion Dashboard Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showboard

package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/showboard/internal/config"
)

func newTestClient(serverURL string) *Client {
	c := NewClient(&config.YouTubeConfig{APIKey: "test-key"})
	c.baseURL = serverURL
	return c
}

func TestGetChannelStats(t *testing.T) {
	var gotKey, gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotID = r.URL.Query().Get("id")
		w.Write([]byte(`{
			"items": [{
				"id": "UCabcdefghijklmnopqrstuv",
				"snippet": {"title": "Test Channel", "publishedAt": "2015-03-01T00:00:00Z"},
				"statistics": {"subscriberCount": "100", "videoCount": "20", "viewCount": "5000"}
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	stats, found, err := client.GetChannelStats(context.Background(), "UCabcdefghijklmnopqrstuv")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("expected channel to be found")
	}

	if gotKey != "test-key" {
		t.Errorf("key = %q", gotKey)
	}
	if gotID != "UCabcdefghijklmnopqrstuv" {
		t.Errorf("id = %q", gotID)
	}
	if stats.Subscribers != 100 || stats.Videos != 20 || stats.Views != 5000 {
		t.Errorf("counters = %d/%d/%d, want 100/20/5000", stats.Subscribers, stats.Videos, stats.Views)
	}
	if stats.Title != "Test Channel" {
		t.Errorf("title = %q", stats.Title)
	}
	if stats.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
}

func TestGetChannelStats_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	stats, found, err := client.GetChannelStats(context.Background(), "UCmissingmissingmissingm")
	if err != nil {
		t.Fatalf("missing channel is not an error: %v", err)
	}
	if found || stats != nil {
		t.Errorf("found = %v stats = %v, want absent", found, stats)
	}
}

func TestGetChannelStats_HiddenCounters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"items": [{
				"id": "UCabcdefghijklmnopqrstuv",
				"snippet": {"title": "Hidden"},
				"statistics": {"videoCount": "3", "viewCount": "9"}
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	stats, found, err := client.GetChannelStats(context.Background(), "UCabcdefghijklmnopqrstuv")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if stats.Subscribers != 0 {
		t.Errorf("hidden subscriber count should parse as 0, got %d", stats.Subscribers)
	}
}

func TestGetChannelStats_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, _, err := client.GetChannelStats(context.Background(), "UCabcdefghijklmnopqrstuv"); err == nil {
		t.Fatal("expected error on HTTP 403")
	}
}

func TestResolveChannelID_CanonicalIDPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("canonical id must not trigger a network call")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.ResolveChannelID(context.Background(), "UCabcdefghijklmnopqrstuv")
	if err != nil {
		t.Fatal(err)
	}
	if id != "UCabcdefghijklmnopqrstuv" {
		t.Errorf("id = %q", id)
	}
}

func TestResolveChannelID_ChannelURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("channel URL with canonical id must not trigger a network call")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.ResolveChannelID(context.Background(), "https://www.youtube.com/channel/UCabcdefghijklmnopqrstuv")
	if err != nil {
		t.Fatal(err)
	}
	if id != "UCabcdefghijklmnopqrstuv" {
		t.Errorf("id = %q", id)
	}
}

func TestResolveChannelID_UsernameLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("forUsername") != "somecreator" {
			t.Errorf("forUsername = %q", r.URL.Query().Get("forUsername"))
		}
		w.Write([]byte(`{"items": [{"id": "UCabcdefghijklmnopqrstuv"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.ResolveChannelID(context.Background(), "somecreator")
	if err != nil {
		t.Fatal(err)
	}
	if id != "UCabcdefghijklmnopqrstuv" {
		t.Errorf("id = %q", id)
	}
}

func TestResolveChannelID_HandleFallsBackToSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/channels":
			w.Write([]byte(`{"items": []}`))
		case "/search":
			if r.URL.Query().Get("q") != "somehandle" {
				t.Errorf("q = %q, handle prefix should be stripped", r.URL.Query().Get("q"))
			}
			w.Write([]byte(`{"items": [{"id": {"channelId": "UCabcdefghijklmnopqrstuv"}}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	id, err := client.ResolveChannelID(context.Background(), "@somehandle")
	if err != nil {
		t.Fatal(err)
	}
	if id != "UCabcdefghijklmnopqrstuv" {
		t.Errorf("id = %q", id)
	}
}

func TestResolveChannelID_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.ResolveChannelID(context.Background(), "definitely-not-a-channel"); err == nil {
		t.Fatal("expected error when nothing resolves")
	}
}

func TestExtractFromURL(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"https://www.youtube.com/channel/UCabcdefghijklmnopqrstuv", "UCabcdefghijklmnopqrstuv"},
		{"https://www.youtube.com/user/somecreator", "somecreator"},
		{"https://www.youtube.com/c/SomeChannel", "SomeChannel"},
		{"https://www.youtube.com/@somehandle", "@somehandle"},
		{"www.youtube.com/channel/UCabcdefghijklmnopqrstuv", "UCabcdefghijklmnopqrstuv"},
	}

	for _, tt := range tests {
		got, err := extractFromURL(tt.ref)
		if err != nil {
			t.Errorf("%s: %v", tt.ref, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestGetVideoStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"items": [{
				"id": "vid-1",
				"snippet": {"title": "A Video", "publishedAt": "2024-01-01T00:00:00Z"},
				"statistics": {"viewCount": "123", "likeCount": "45", "commentCount": "6"}
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	stats, found, err := client.GetVideoStats(context.Background(), "vid-1")
	if err != nil || !found {
		t.Fatalf("found=%v err=%v", found, err)
	}
	if stats.Views != 123 || stats.Likes != 45 || stats.Comments != 6 {
		t.Errorf("counters = %d/%d/%d", stats.Views, stats.Likes, stats.Comments)
	}
}
