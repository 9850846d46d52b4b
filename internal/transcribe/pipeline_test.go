package transcribe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/whisper"
)

const lifelogFixture = `{"data":{"lifelog":{
	"id":"log-1","title":"Standup",
	"startTime":"2025-01-15T09:00:00Z","endTime":"2025-01-15T09:30:00Z"
}}}`

// newTestPipeline builds a pipeline over a scripted Limitless transport and
// an httptest transcription server.
func newTestPipeline(t *testing.T, whisperURL string, fixtures map[string][][]byte) (*Pipeline, *api.ScriptedTransport) {
	t.Helper()
	transport := api.NewScriptedTransport(fixtures)
	limitless := api.NewLimitlessAPI(transport)

	transcriber, err := whisper.NewClient("test-key", whisper.WithBaseURL(whisperURL))
	if err != nil {
		t.Fatalf("whisper.NewClient: %v", err)
	}
	return New(limitless, transcriber, true), transport
}

func TestRunWritesTranscriptionFiles(t *testing.T) {
	var gotLanguage, gotFormat, gotUpload string
	raw := `{"text":"明日の会議の準備をする","language":"japanese","duration":8.1,` +
		`"segments":[{"id":0,"start":0.0,"end":8.1,"text":"明日の会議の準備をする"}]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(32 << 20)
		gotLanguage = r.FormValue("language")
		gotFormat = r.FormValue("response_format")
		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			content := make([]byte, header.Size)
			file.Read(content)
			gotUpload = string(content)
		}
		w.Write([]byte(raw))
	}))
	defer server.Close()

	pipeline, _ := newTestPipeline(t, server.URL, map[string][][]byte{
		"lifelogs/log-1": {[]byte(lifelogFixture)},
		"download-audio": {[]byte("ogg-bytes")},
	})

	outputDir := t.TempDir()
	result, err := pipeline.Run(RunOptions{LifelogID: "log-1", OutputDir: outputDir})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotLanguage != "ja" {
		t.Errorf("language field = %q, want the ja default", gotLanguage)
	}
	if gotFormat != whisper.FormatVerboseJSON {
		t.Errorf("response_format field = %q, want verbose_json", gotFormat)
	}
	if gotUpload != "ogg-bytes" {
		t.Errorf("Uploaded audio = %q, want the downloaded bytes", gotUpload)
	}

	if result.TextFile != filepath.Join(outputDir, "transcription_log-1.txt") {
		t.Errorf("TextFile = %q, want transcription_log-1.txt in the output dir", result.TextFile)
	}
	text, err := os.ReadFile(result.TextFile)
	if err != nil {
		t.Fatalf("Failed to read text file: %v", err)
	}
	if string(text) != "明日の会議の準備をする" {
		t.Errorf("Text file = %q, want the transcribed text", text)
	}

	jsonData, err := os.ReadFile(result.JSONFile)
	if err != nil {
		t.Fatalf("Failed to read JSON file: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(jsonData, &parsed); err != nil {
		t.Fatalf("JSON file is not valid JSON: %v", err)
	}
	if parsed["language"] != "japanese" {
		t.Errorf("JSON language = %v, want japanese", parsed["language"])
	}
	if !strings.Contains(string(jsonData), "\n  ") {
		t.Error("Expected indented JSON output")
	}

	// The intermediate audio file is removed by default.
	audioPath := filepath.Join(outputDir, "audio_log-1.ogg")
	if _, err := os.Stat(audioPath); !os.IsNotExist(err) {
		t.Errorf("Expected audio file to be removed, stat err = %v", err)
	}
	if result.AudioFile != "" {
		t.Errorf("AudioFile = %q, want empty when audio is discarded", result.AudioFile)
	}
}

func TestRunKeepsAudioWhenAsked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"hello"}`))
	}))
	defer server.Close()

	pipeline, _ := newTestPipeline(t, server.URL, map[string][][]byte{
		"lifelogs/log-1": {[]byte(lifelogFixture)},
		"download-audio": {[]byte("ogg-bytes")},
	})

	outputDir := t.TempDir()
	result, err := pipeline.Run(RunOptions{LifelogID: "log-1", OutputDir: outputDir, KeepAudio: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantAudio := filepath.Join(outputDir, "audio_log-1.ogg")
	if result.AudioFile != wantAudio {
		t.Errorf("AudioFile = %q, want %q", result.AudioFile, wantAudio)
	}
	data, err := os.ReadFile(wantAudio)
	if err != nil {
		t.Fatalf("Expected kept audio file: %v", err)
	}
	if string(data) != "ogg-bytes" {
		t.Error("Kept audio does not match the downloaded bytes")
	}
}

func TestRunRequiresLifelogID(t *testing.T) {
	pipeline, transport := newTestPipeline(t, "http://unused.invalid", nil)

	_, err := pipeline.Run(RunOptions{})
	if err == nil {
		t.Fatal("Expected an error for a missing lifelog ID")
	}
	if transport.RequestsMade() != 0 {
		t.Errorf("Expected no requests, got %d", transport.RequestsMade())
	}
}

func TestRunPropagatesDownloadFailure(t *testing.T) {
	whisperCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		whisperCalls++
	}))
	defer server.Close()

	transport := api.TransportFunc(func(method, endpoint string, params map[string]string) ([]byte, error) {
		return nil, &api.APIError{URL: endpoint, StatusCode: 404, Body: "no such lifelog"}
	})
	limitless := api.NewLimitlessAPI(transport)
	transcriber, err := whisper.NewClient("test-key", whisper.WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("whisper.NewClient: %v", err)
	}
	pipeline := New(limitless, transcriber, true)

	_, err = pipeline.Run(RunOptions{LifelogID: "log-404", OutputDir: t.TempDir()})
	if err == nil {
		t.Fatal("Expected the download failure to propagate")
	}
	if !strings.Contains(err.Error(), "no such lifelog") {
		t.Errorf("Error = %q, want the API failure detail", err)
	}
	if whisperCalls != 0 {
		t.Errorf("Expected no transcription attempts, got %d", whisperCalls)
	}
}

func TestRunCreatesOutputDir(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"hello"}`))
	}))
	defer server.Close()

	pipeline, _ := newTestPipeline(t, server.URL, map[string][][]byte{
		"lifelogs/log-1": {[]byte(lifelogFixture)},
		"download-audio": {[]byte("ogg-bytes")},
	})

	outputDir := filepath.Join(t.TempDir(), "out", "nested")
	result, err := pipeline.Run(RunOptions{LifelogID: "log-1", OutputDir: outputDir})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := os.Stat(result.TextFile); err != nil {
		t.Errorf("Expected text file in the created directory: %v", err)
	}
}
