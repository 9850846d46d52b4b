// Package transcribe turns a lifelog into text files on disk: it downloads
// the recording, runs it through a transcription backend and writes the
// results next to each other.
package transcribe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kazu0914/limitless-todo-extractor/internal/api"
	"github.com/kazu0914/limitless-todo-extractor/internal/core"
	"github.com/kazu0914/limitless-todo-extractor/internal/whisper"
)

// Pipeline wires the Limitless API to a transcription client.
type Pipeline struct {
	api         *api.LimitlessAPI
	transcriber *whisper.Client
	quiet       bool
}

// New creates a transcription pipeline.
func New(limitless *api.LimitlessAPI, transcriber *whisper.Client, quiet bool) *Pipeline {
	return &Pipeline{
		api:         limitless,
		transcriber: transcriber,
		quiet:       quiet,
	}
}

// RunOptions control one pipeline run.
type RunOptions struct {
	// LifelogID identifies the recording to transcribe. Required.
	LifelogID string

	// OutputDir receives the audio and transcription files. Defaults to
	// the current directory and is created when missing.
	OutputDir string

	// KeepAudio leaves the downloaded Ogg file on disk instead of
	// removing it after transcription.
	KeepAudio bool

	// Language hints the transcription language. Defaults to "ja".
	Language string
}

// Result reports what a pipeline run produced.
type Result struct {
	LifelogID     string
	Transcription *whisper.Transcription
	TextFile      string
	JSONFile      string
	// AudioFile is set only when the audio was kept.
	AudioFile string
}

// Run downloads the lifelog's audio, transcribes it and writes
// transcription_<id>.txt plus transcription_<id>.json into the output
// directory. The intermediate audio file is removed unless KeepAudio is
// set. Files already written are left in place when a later step fails.
func (p *Pipeline) Run(opts RunOptions) (*Result, error) {
	if opts.LifelogID == "" {
		return nil, fmt.Errorf("lifelog ID is required")
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	language := opts.Language
	if language == "" {
		language = core.DefaultLanguage
	}

	audioPath := filepath.Join(outputDir, fmt.Sprintf("audio_%s.ogg", opts.LifelogID))
	core.ProgressPrint(fmt.Sprintf("Downloading audio for lifelog %s...", opts.LifelogID), p.quiet)
	if _, err := p.api.DownloadAudioFromLifelog(opts.LifelogID, audioPath); err != nil {
		return nil, err
	}

	core.ProgressPrint("Transcribing audio (this can take a while)...", p.quiet)
	transcription, err := p.transcriber.Transcribe(audioPath, whisper.TranscribeOptions{
		Language:       language,
		ResponseFormat: whisper.FormatVerboseJSON,
	})
	if err != nil {
		return nil, err
	}

	textFile := filepath.Join(outputDir, fmt.Sprintf("transcription_%s.txt", opts.LifelogID))
	if err := os.WriteFile(textFile, []byte(transcription.Text), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write transcription text: %w", err)
	}

	jsonFile := filepath.Join(outputDir, fmt.Sprintf("transcription_%s.json", opts.LifelogID))
	if err := writeTranscriptionJSON(jsonFile, transcription); err != nil {
		return nil, err
	}

	result := &Result{
		LifelogID:     opts.LifelogID,
		Transcription: transcription,
		TextFile:      textFile,
		JSONFile:      jsonFile,
	}

	if opts.KeepAudio {
		result.AudioFile = audioPath
	} else {
		if err := os.Remove(audioPath); err != nil {
			core.ProgressPrint(fmt.Sprintf("Warning: failed to remove %s: %v", audioPath, err), p.quiet)
		}
	}

	return result, nil
}

// writeTranscriptionJSON persists the full transcription response. The raw
// server body is re-indented when available so nothing is lost; otherwise
// the parsed struct is marshalled.
func writeTranscriptionJSON(path string, transcription *whisper.Transcription) error {
	var data []byte
	if len(transcription.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, transcription.Raw, "", "  "); err != nil {
			return fmt.Errorf("failed to format transcription JSON: %w", err)
		}
		buf.WriteByte('\n')
		data = buf.Bytes()
	} else {
		marshalled, err := json.MarshalIndent(transcription, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format transcription JSON: %w", err)
		}
		data = append(marshalled, '\n')
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write transcription JSON: %w", err)
	}
	return nil
}
