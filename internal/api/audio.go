package api

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/kazu0914/limitless-todo-extractor/internal/core"
)

// DownloadAudio fetches the Ogg recording covering [startMs, endMs] (epoch
// milliseconds) and writes it to savePath. The API refuses spans over two
// hours, so those fail with a *ValidationError before any request is made.
// savePath defaults to "audio.ogg" and audioSource to "pendant". Returns
// the path written.
func (api *LimitlessAPI) DownloadAudio(startMs, endMs int64, savePath, audioSource string) (string, error) {
	if span := endMs - startMs; span > core.MaxAudioSpanMs {
		hours := float64(span) / (60 * 60 * 1000)
		return "", &ValidationError{
			Reason: fmt.Sprintf("requested audio span of %.1f hours exceeds the 2 hour maximum", hours),
		}
	}

	if savePath == "" {
		savePath = core.DefaultAudioFilename
	}
	if audioSource == "" {
		audioSource = core.DefaultAudioSource
	}

	params := map[string]string{
		"startMs":     strconv.FormatInt(startMs, 10),
		"endMs":       strconv.FormatInt(endMs, 10),
		"audioSource": audioSource,
	}

	body, err := api.transport.Request(http.MethodGet, "download-audio", params)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(savePath, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to save audio: %w", err)
	}
	return savePath, nil
}

// DownloadAudioFromLifelog downloads the audio for a lifelog by resolving
// its start and end timestamps and delegating to DownloadAudio. savePath
// defaults to "audio_<id>.ogg". Returns the path written.
func (api *LimitlessAPI) DownloadAudioFromLifelog(lifelogID, savePath string) (string, error) {
	lifelog, err := api.GetLifelog(lifelogID)
	if err != nil {
		return "", err
	}

	if lifelog.StartTime == "" || lifelog.EndTime == "" {
		return "", fmt.Errorf("lifelog %s has no start/end timestamps; cannot derive an audio span", lifelogID)
	}

	start, err := core.ParseISOTime(lifelog.StartTime)
	if err != nil {
		return "", fmt.Errorf("lifelog %s: %w", lifelogID, err)
	}
	end, err := core.ParseISOTime(lifelog.EndTime)
	if err != nil {
		return "", fmt.Errorf("lifelog %s: %w", lifelogID, err)
	}

	if savePath == "" {
		savePath = fmt.Sprintf("audio_%s.ogg", lifelogID)
	}

	return api.DownloadAudio(start.UnixMilli(), end.UnixMilli(), savePath, "")
}
