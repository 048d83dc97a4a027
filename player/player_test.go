package player

import (
	"strings"
	"testing"
	"time"
)

func TestParseTrackJSON(t *testing.T) {
	data := []byte(`{
		"url": "https://cdn.example.com/audio.webm?expire=123",
		"title": "Never Gonna Give You Up",
		"uploader": "Rick Astley",
		"duration": 212.5,
		"webpage_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	}`)

	track, err := parseTrackJSON(data)
	if err != nil {
		t.Fatalf("parseTrackJSON: %v", err)
	}
	if track.Title != "Never Gonna Give You Up" {
		t.Errorf("Title = %q", track.Title)
	}
	if track.Author != "Rick Astley" {
		t.Errorf("Author = %q", track.Author)
	}
	if track.PageURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("PageURL = %q", track.PageURL)
	}
	if track.Duration != 212500*time.Millisecond {
		t.Errorf("Duration = %v", track.Duration)
	}
	if !strings.HasPrefix(track.streamURL, "https://cdn.example.com/") {
		t.Errorf("streamURL = %q", track.streamURL)
	}
}

func TestParseTrackJSONMissingURL(t *testing.T) {
	if _, err := parseTrackJSON([]byte(`{"title": "no stream"}`)); err == nil {
		t.Fatal("expected an error for missing stream url")
	}
}

func TestParseTrackJSONInvalid(t *testing.T) {
	if _, err := parseTrackJSON([]byte(`not json`)); err == nil {
		t.Fatal("expected an error for invalid json")
	}
}
