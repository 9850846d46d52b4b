package api

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kazu0914/limitless-todo-extractor/internal/core"
)

func TestDownloadAudioRejectsOverlongSpan(t *testing.T) {
	transport := NewScriptedTransport(nil)
	api := NewLimitlessAPI(transport)

	// One millisecond over the two hour cap.
	_, err := api.DownloadAudio(0, core.MaxAudioSpanMs+1, filepath.Join(t.TempDir(), "a.ogg"), "")

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("Expected *ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(valErr.Reason, "2 hour") {
		t.Errorf("Reason = %q, want mention of the 2 hour limit", valErr.Reason)
	}
	// The request must be refused before any network activity.
	if transport.RequestsMade() != 0 {
		t.Errorf("Expected no requests, got %d", transport.RequestsMade())
	}
}

func TestDownloadAudioAcceptsSpanAtCap(t *testing.T) {
	audio := []byte("OggS\x00fake-audio-bytes")
	transport := NewScriptedTransport(map[string][][]byte{
		"download-audio": {audio},
	})
	api := NewLimitlessAPI(transport)

	path := filepath.Join(t.TempDir(), "span.ogg")
	written, err := api.DownloadAudio(0, core.MaxAudioSpanMs, path, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if written != path {
		t.Errorf("Returned path = %q, want %q", written, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read audio file: %v", err)
	}
	if string(data) != string(audio) {
		t.Error("Audio file does not match the response bytes")
	}

	params := transport.RequestLog[0].Params
	if params["startMs"] != "0" || params["endMs"] != "7200000" {
		t.Errorf("Span params = %v, want startMs=0 endMs=7200000", params)
	}
	if params["audioSource"] != "pendant" {
		t.Errorf("audioSource param = %q, want the pendant default", params["audioSource"])
	}
}

func TestDownloadAudioExplicitSource(t *testing.T) {
	transport := NewScriptedTransport(map[string][][]byte{
		"download-audio": {[]byte("bytes")},
	})
	api := NewLimitlessAPI(transport)

	if _, err := api.DownloadAudio(1000, 2000, filepath.Join(t.TempDir(), "a.ogg"), "app"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := transport.RequestLog[0].Params["audioSource"]; got != "app" {
		t.Errorf("audioSource param = %q, want app", got)
	}
}

func TestDownloadAudioFromLifelog(t *testing.T) {
	audio := []byte("lifelog-audio")
	transport := NewScriptedTransport(map[string][][]byte{
		"lifelogs/log-1": {[]byte(`{"data":{"lifelog":{
			"id":"log-1","title":"Standup",
			"startTime":"2025-01-15T09:00:00Z","endTime":"2025-01-15T09:30:00Z"
		}}}`)},
		"download-audio": {audio},
	})
	api := NewLimitlessAPI(transport)

	path := filepath.Join(t.TempDir(), "log-1.ogg")
	written, err := api.DownloadAudioFromLifelog("log-1", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if written != path {
		t.Errorf("Returned path = %q, want %q", written, path)
	}

	if transport.RequestsMade() != 2 {
		t.Fatalf("Expected 2 requests (get + download), got %d", transport.RequestsMade())
	}

	params := transport.RequestLog[1].Params
	if params["startMs"] != "1736931600000" {
		t.Errorf("startMs = %q, want 1736931600000", params["startMs"])
	}
	if params["endMs"] != "1736933400000" {
		t.Errorf("endMs = %q, want 1736933400000", params["endMs"])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read audio file: %v", err)
	}
	if string(data) != string(audio) {
		t.Error("Audio file does not match the response bytes")
	}
}

func TestDownloadAudioFromLifelogDefaultFilename(t *testing.T) {
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })

	transport := NewScriptedTransport(map[string][][]byte{
		"lifelogs/log-2": {[]byte(`{"data":{"lifelog":{
			"id":"log-2","startTime":"2025-01-15T10:00:00Z","endTime":"2025-01-15T10:05:00Z"
		}}}`)},
		"download-audio": {[]byte("bytes")},
	})
	api := NewLimitlessAPI(transport)

	written, err := api.DownloadAudioFromLifelog("log-2", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if written != "audio_log-2.ogg" {
		t.Errorf("Default path = %q, want audio_log-2.ogg", written)
	}
	if _, err := os.Stat("audio_log-2.ogg"); err != nil {
		t.Errorf("Expected audio file at the default path: %v", err)
	}
}

func TestDownloadAudioFromLifelogMissingTimestamps(t *testing.T) {
	transport := NewScriptedTransport(map[string][][]byte{
		"lifelogs/log-3": {[]byte(`{"data":{"lifelog":{"id":"log-3","title":"No times"}}}`)},
	})
	api := NewLimitlessAPI(transport)

	_, err := api.DownloadAudioFromLifelog("log-3", filepath.Join(t.TempDir(), "a.ogg"))
	if err == nil {
		t.Fatal("Expected an error for a lifelog without timestamps")
	}
	// Only the lookup request happens; no download is attempted.
	if transport.RequestsMade() != 1 {
		t.Errorf("Expected 1 request, got %d", transport.RequestsMade())
	}
}

func TestDownloadAudioFromLifelogMalformedTimestamp(t *testing.T) {
	transport := NewScriptedTransport(map[string][][]byte{
		"lifelogs/log-4": {[]byte(`{"data":{"lifelog":{
			"id":"log-4","startTime":"yesterday-ish","endTime":"2025-01-15T10:05:00Z"
		}}}`)},
	})
	api := NewLimitlessAPI(transport)

	_, err := api.DownloadAudioFromLifelog("log-4", filepath.Join(t.TempDir(), "a.ogg"))
	if err == nil {
		t.Fatal("Expected an error for a malformed timestamp")
	}
	if !strings.Contains(err.Error(), "log-4") {
		t.Errorf("Error %q should name the lifelog", err)
	}
	if transport.RequestsMade() != 1 {
		t.Errorf("Expected 1 request, got %d", transport.RequestsMade())
	}
}
